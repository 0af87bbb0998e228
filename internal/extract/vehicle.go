package extract

import (
	"regexp"
	"strings"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// registrationPrefixes are the known fleet registration code families.
var registrationPrefixes = []string{"CAV", "TA", "COD", "PMF"}

// adminVehicleLiteral is kept verbatim as CADASTRO when the memo describes
// an unregistered administrative vehicle instead of a fleet code.
const adminVehicleLiteral = "VEÍCULO ADMINISTRATIVO"

// vehicleResolver extracts the (CADASTRO, MODELO, PLACA) triple. The memos
// describe the vehicle in at least four surface forms, so resolution is a
// strictly decreasing-confidence cascade: isolate the vehicle clause, parse
// the composite description, then retry individual fields against the full
// text. No step overwrites a field an earlier step already resolved;
// reordering the steps changes outcomes on ambiguous documents.
type vehicleResolver struct {
	clause      cascade
	composite   *regexp.Regexp
	plateLoose  *regexp.Regexp
	cadDirect   *regexp.Regexp
	knownModels []string
}

func newVehicleResolver(cfg Config) *vehicleResolver {
	anchor := regexp.QuoteMeta(cfg.RequestAnchor)
	return &vehicleResolver{
		clause: cascade{
			{
				// The request sentence names the order; the vehicle clause is
				// what follows the first period, up to "na oficina".
				name:    "request sentence",
				pattern: regexp.MustCompile(`(?i)` + anchor + `[^.]*\.\s*(.+?)\s+na oficina`),
				group:   1,
			},
			{
				// Secondary anchor: "realizado" plus an optional vehicle-type
				// qualifier, again terminated at "na oficina". The qualifier
				// stays lowercase so it never swallows the uppercase
				// "VEÍCULO ADMINISTRATIVO" literal.
				name:    "realizado",
				pattern: regexp.MustCompile(`(?i:realizado)\s+(?:(?:no|na|do|da)\s+)?(?:(?:ve[íi]culo|viatura|caminh[ãa]o|m[áa]quina)\s+)?(.+?)\s+(?i:na oficina)`),
				group:   1,
			},
		},
		// The registration candidate needs at least two code characters so
		// the capitalized first letter of ordinary prose never qualifies.
		composite:   regexp.MustCompile(`(VE[ÍI]CULO ADMINISTRATIVO|[A-ZÀ-Ü0-9][A-ZÀ-Ü0-9-]+)(?:\s*\(([A-ZÀ-Ü0-9][A-ZÀ-Ü0-9 -]*)\))?(?:\s*,?\s*de\s+placas?\s+([A-Z0-9]{5,8})(?:[^A-Z0-9]|$))?`),
		plateLoose:  regexp.MustCompile(`(?i)placas?\s+([A-Z0-9]{5,8})(?:[^A-Z0-9]|$)`),
		cadDirect:   regexp.MustCompile(`\b(CAV\d+|PMF-\d+|TA\d+|COD\d+|DUSTER)\b`),
		knownModels: cfg.KnownModels,
	}
}

func (r *vehicleResolver) resolve(text string) (cadastro, modelo, placa models.Field) {
	// Step 1: isolate the vehicle-description clause; fall back to the full
	// normalized text when neither anchor matches (lowest-confidence mode).
	clause, ok := r.clause.apply(text)
	if !ok {
		clause = text
	}

	// Step 2: composite capture — registration candidate, optional
	// parenthesized model, optional "de placas <plate>" suffix.
	if m := r.composite.FindStringSubmatch(clause); m != nil {
		first := strings.TrimSpace(m[1])
		second := strings.TrimSpace(m[2])

		// Step 3: disambiguate the first group, rules evaluated in order.
		switch {
		case isAdminVehicle(first):
			cadastro = models.FieldOf(first)
			modelo = models.FieldOf(second)
		case hasRegistrationPrefix(first) || first == "DUSTER":
			cadastro = models.FieldOf(first)
			modelo = models.FieldOf(second)
		case second != "":
			cadastro = models.FieldOf(first)
			modelo = models.FieldOf(second)
		default:
			cadastro = models.FieldOf(first)
		}
		placa = models.FieldOf(strings.TrimSpace(m[3]))
	}

	// Step 4: model backfill for cadastros that are really model names.
	modelo = r.backfillModel(cadastro, modelo)

	// Step 5: loose plate retry against the full text.
	if !placa.Available() {
		if m := r.plateLoose.FindStringSubmatch(text); m != nil {
			placa = models.FieldOf(m[1])
		}
	}

	// Step 6: direct registration-family retry against the full text.
	if !cadastro.Available() {
		if m := r.cadDirect.FindStringSubmatch(text); m != nil {
			cadastro = models.FieldOf(m[1])
		}
	}

	// Step 7: the cadastro may have only just been discovered.
	modelo = r.backfillModel(cadastro, modelo)
	return cadastro, modelo, placa
}

// backfillModel copies CADASTRO into MODELO when the cadastro is one of the
// model names the offices use interchangeably as registration codes.
func (r *vehicleResolver) backfillModel(cadastro, modelo models.Field) models.Field {
	if modelo.Available() {
		return modelo
	}
	if v, ok := cadastro.Value(); ok {
		for _, known := range r.knownModels {
			if v == known {
				return models.FieldOf(v)
			}
		}
	}
	return modelo
}

func isAdminVehicle(s string) bool {
	return s == adminVehicleLiteral || s == "VEICULO ADMINISTRATIVO"
}

func hasRegistrationPrefix(s string) bool {
	for _, p := range registrationPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
