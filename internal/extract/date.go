package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// months maps the Portuguese month names used in the memo dateline to their
// calendar numbers.
var months = map[string]int{
	"janeiro":   1,
	"fevereiro": 2,
	"março":     3,
	"abril":     4,
	"maio":      5,
	"junho":     6,
	"julho":     7,
	"agosto":    8,
	"setembro":  9,
	"outubro":   10,
	"novembro":  11,
	"dezembro":  12,
}

var memoDateRe = regexp.MustCompile(`^(\d{1,2})º? de (\p{L}+) de (\d{4})$`)

// ParseMemoDate converts a memo date like "15 de março de 2024" to ISO
// "2024-03-15". Input that does not match the expected shape yields an
// unavailable Field; it never fails.
func ParseMemoDate(s string) models.Field {
	m := memoDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return models.Field{}
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return models.Field{}
	}
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return models.Field{}
	}
	return models.FieldOf(fmt.Sprintf("%s-%02d-%02d", m[3], month, day))
}
