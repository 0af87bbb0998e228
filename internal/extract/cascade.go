package extract

import (
	"regexp"
	"strings"
)

// strategy is a single pattern attempt. group selects which capture group
// holds the value when the pattern matches.
type strategy struct {
	name    string
	pattern *regexp.Regexp
	group   int
}

// cascade is a priority-ordered list of strategies evaluated left to right,
// first match wins. Each extractor's fallback chain is written as one of
// these so the precedence stays explicit and auditable.
type cascade []strategy

func (c cascade) apply(text string) (string, bool) {
	for _, s := range c {
		m := s.pattern.FindStringSubmatch(text)
		if m == nil || s.group >= len(m) {
			continue
		}
		if v := strings.TrimSpace(m[s.group]); v != "" {
			return v, true
		}
	}
	return "", false
}
