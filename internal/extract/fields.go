package extract

import (
	"fmt"
	"regexp"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// Default template literals. The memos come from a small number of office
// templates with fixed connective phrasing, so every extractor anchors on a
// narrow literal phrase rather than a general key-value parser: precision
// over generality, and a non-match yields an unavailable field instead of a
// guess.
const (
	DefaultCityAnchor    = "Fortaleza"
	DefaultRequestAnchor = "Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço"
)

// defaultKnownModels are model names the offices use interchangeably as
// registration codes. When one of them lands in CADASTRO with no explicit
// model, it is copied into MODELO as well.
var defaultKnownModels = []string{"DUSTER", "TRAILBLAZER", "SPIN", "S10"}

// Config carries the template literals the extractors anchor on. Zero
// values fall back to the phrasing of the originating office; other units'
// memoranda can supply their own.
type Config struct {
	CityAnchor    string
	RequestAnchor string
	KnownModels   []string
}

func (c Config) withDefaults() Config {
	if c.CityAnchor == "" {
		c.CityAnchor = DefaultCityAnchor
	}
	if c.RequestAnchor == "" {
		c.RequestAnchor = DefaultRequestAnchor
	}
	if len(c.KnownModels) == 0 {
		c.KnownModels = defaultKnownModels
	}
	return c
}

// Extractor holds the compiled cascades for one memo template.
type Extractor struct {
	cfg      Config
	date     cascade
	orderNum cascade
	workshop cascade
	defect   cascade
	amount   cascade
	vehicle  *vehicleResolver
}

// New compiles an Extractor for the given template configuration.
func New(cfg Config) *Extractor {
	cfg = cfg.withDefaults()
	return &Extractor{
		cfg: cfg,
		date: cascade{{
			// Dateline: "<city>, 15 de março de 2024". No fallback; a memo
			// without a dateline simply has no date.
			name:    "dateline",
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(cfg.CityAnchor) + `,?\s*(\d{1,2}º? de \p{L}+ de \d{4})`),
			group:   1,
		}},
		orderNum: cascade{{
			name:    "ordem de serviço",
			pattern: regexp.MustCompile(`(?i)ordem de serviço\s*(?:n[º°]?\.?\s*)?(\d+)`),
			group:   1,
		}},
		workshop: cascade{{
			// Terminated by whichever boundary phrase occurs first; the lazy
			// capture guarantees the earliest boundary wins.
			name:    "na oficina",
			pattern: regexp.MustCompile(`(?i)na oficina\s+(.+?)(?:; referente ao serviço|; no valor de R\$|\. Todo o serviço)`),
			group:   1,
		}},
		defect: cascade{{
			name:    "referente ao serviço",
			pattern: regexp.MustCompile(`(?i)referente ao serviço (?:de )?(.+?)(?:; no valor de R\$|\. Todo o serviço)`),
			group:   1,
		}},
		amount: cascade{{
			// Captured verbatim, separators included. Parsing the currency
			// is a downstream concern.
			name:    "valor de R$",
			pattern: regexp.MustCompile(`(?i)valor de R\$\s*([0-9]+(?:[.,][0-9]+)*)`),
			group:   1,
		}},
		vehicle: newVehicleResolver(cfg),
	}
}

// Date extracts the office memo date in its human form.
func (e *Extractor) Date(text string) models.Field {
	v, _ := e.date.apply(text)
	return models.FieldOf(v)
}

// OrderNumber extracts the service-order number digits.
func (e *Extractor) OrderNumber(text string) models.Field {
	v, _ := e.orderNum.apply(text)
	return models.FieldOf(v)
}

// Workshop extracts the workshop name.
func (e *Extractor) Workshop(text string) models.Field {
	v, _ := e.workshop.apply(text)
	return models.FieldOf(v)
}

// Defect extracts the defect / service description.
func (e *Extractor) Defect(text string) models.Field {
	v, _ := e.defect.apply(text)
	return models.FieldOf(v)
}

// Amount extracts the monetary value as written.
func (e *Extractor) Amount(text string) models.Field {
	v, _ := e.amount.apply(text)
	return models.FieldOf(v)
}

// Vehicle resolves the (CADASTRO, MODELO, PLACA) triple.
func (e *Extractor) Vehicle(text string) (cadastro, modelo, placa models.Field) {
	return e.vehicle.resolve(text)
}

// Extract runs every extractor over raw document text and assembles the
// record. Completo is left false; the classifier derives it after the
// registry cross-reference.
func (e *Extractor) Extract(rawText, fileName string) models.Record {
	text := Normalize(rawText)
	rec := models.Record{
		Defeito: e.Defect(text),
		Oficina: e.Workshop(text),
		NumOS:   e.OrderNumber(text),
		DataOF:  e.Date(text),
		ValorOS: e.Amount(text),
		Arquivo: fileName,
	}
	rec.Cadastro, rec.Modelo, rec.Placa = e.Vehicle(text)
	return rec
}

// KnownModel reports whether name is on the template's interchangeable
// model/registration list.
func (e *Extractor) KnownModel(name string) bool {
	for _, m := range e.cfg.KnownModels {
		if name == m {
			return true
		}
	}
	return false
}

func (e *Extractor) String() string {
	return fmt.Sprintf("extract.Extractor{city=%q}", e.cfg.CityAnchor)
}
