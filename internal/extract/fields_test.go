package extract

import (
	"testing"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// memoText is a representative complete memorandum, as the upstream text
// extraction delivers it: line breaks and uneven spacing included.
const memoText = `OF. Nº 123/2024 – GLOG

Fortaleza, 15 de março de 2024.

Ao Senhor Gerente de Logística,

Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 4512.
Serviço realizado na viatura CAV12 (TRAILBLAZER) de placas SBQ0D65 na oficina
Auto Center Silva; referente ao serviço de troca do alternador e correia;
no valor de R$ 1.250,00. Todo o serviço foi acompanhado pela gerência.

Atenciosamente,`

func TestDate(t *testing.T) {
	e := New(Config{})
	got := e.Date(Normalize(memoText))
	if v, _ := got.Value(); v != "15 de março de 2024" {
		t.Fatalf("Date = %q, want %q", got.String(), "15 de março de 2024")
	}
	if e.Date("sem dateline nenhuma").Available() {
		t.Fatal("expected unavailable date for text without a dateline")
	}
}

func TestDateCustomCityAnchor(t *testing.T) {
	e := New(Config{CityAnchor: "Caucaia"})
	text := "Caucaia, 2 de junho de 2024. Solicito..."
	if v, _ := e.Date(text).Value(); v != "2 de junho de 2024" {
		t.Fatalf("Date = %q", e.Date(text).String())
	}
	// The default city no longer anchors anything.
	if e.Date("Fortaleza, 2 de junho de 2024.").Available() {
		t.Fatal("default anchor should not match with a custom city configured")
	}
}

func TestOrderNumber(t *testing.T) {
	e := New(Config{})
	cases := []struct {
		in   string
		want string
	}{
		{"pagamento da ordem de serviço Nº 4512.", "4512"},
		{"pagamento da ordem de serviço N° 77", "77"},
		{"pagamento da ordem de serviço N 308", "308"},
		{"pagamento da ordem de serviço 1203", "1203"},
		{"pagamento da Ordem de Serviço Nº 9", "9"},
	}
	for _, tc := range cases {
		if v, _ := e.OrderNumber(tc.in).Value(); v != tc.want {
			t.Fatalf("OrderNumber(%q) = %q, want %q", tc.in, e.OrderNumber(tc.in).String(), tc.want)
		}
	}
	if e.OrderNumber("ordem de pagamento 123").Available() {
		t.Fatal("expected unavailable order number without the anchor phrase")
	}
}

func TestWorkshop(t *testing.T) {
	e := New(Config{})
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"terminated by referente",
			"na oficina Auto Center Silva; referente ao serviço de troca",
			"Auto Center Silva",
		},
		{
			"terminated by valor",
			"na oficina Mecânica do Zé; no valor de R$ 300,00",
			"Mecânica do Zé",
		},
		{
			"terminated by todo o serviço",
			"na oficina Retífica Norte LTDA. Todo o serviço foi",
			"Retífica Norte LTDA",
		},
		{
			// All three boundaries present: the earliest one wins.
			"earliest boundary wins",
			"na oficina Oficina A; referente ao serviço x; no valor de R$ 1,00. Todo o serviço",
			"Oficina A",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if v, _ := e.Workshop(tc.in).Value(); v != tc.want {
				t.Fatalf("Workshop = %q, want %q", e.Workshop(tc.in).String(), tc.want)
			}
		})
	}
	if e.Workshop("nenhuma oficina mencionada aqui; no valor de R$ 1,00").Available() {
		t.Fatal("expected unavailable workshop without the anchor phrase")
	}
}

func TestDefect(t *testing.T) {
	e := New(Config{})
	cases := []struct {
		in   string
		want string
	}{
		{
			"referente ao serviço de troca do alternador e correia; no valor de R$ 1.250,00",
			"troca do alternador e correia",
		},
		{
			"referente ao serviço reparo da suspensão dianteira. Todo o serviço foi",
			"reparo da suspensão dianteira",
		},
	}
	for _, tc := range cases {
		if v, _ := e.Defect(tc.in).Value(); v != tc.want {
			t.Fatalf("Defect(%q) = %q, want %q", tc.in, e.Defect(tc.in).String(), tc.want)
		}
	}
}

func TestAmount(t *testing.T) {
	e := New(Config{})
	cases := []struct {
		in   string
		want string
	}{
		{"no valor de R$ 1.250,00. Todo o serviço", "1.250,00"},
		{"no valor de R$ 350. Todo o serviço", "350"},
		{"no valor de R$ 12.345.678,90.", "12.345.678,90"},
		{"no valor de R$ 89,9", "89,9"},
	}
	for _, tc := range cases {
		if v, _ := e.Amount(tc.in).Value(); v != tc.want {
			t.Fatalf("Amount(%q) = %q, want %q", tc.in, e.Amount(tc.in).String(), tc.want)
		}
	}
	if e.Amount("serviço sem valor mencionado").Available() {
		t.Fatal("expected unavailable amount without the anchor phrase")
	}
}

func TestExtractAssemblesRecord(t *testing.T) {
	e := New(Config{})
	rec := e.Extract(memoText, "oficio_123.txt")

	want := map[string]string{
		"CADASTRO": "CAV12",
		"MODELO":   "TRAILBLAZER",
		"PLACA":    "SBQ0D65",
		"DEFEITO":  "troca do alternador e correia",
		"OFICINA":  "Auto Center Silva",
		"NUM_OS":   "4512",
		"DATA_OF":  "15 de março de 2024",
		"VALOR_OS": "1.250,00",
	}
	got := rec.AsMap()
	for key, wantV := range want {
		if got[key] != wantV {
			t.Errorf("%s = %v, want %q", key, got[key], wantV)
		}
	}
	if rec.Arquivo != "oficio_123.txt" {
		t.Errorf("Arquivo = %q", rec.Arquivo)
	}
	if rec.Completo {
		t.Error("Completo must not be set by extraction")
	}
}

// Every classifier-relevant key is always defined: a real value or exactly
// the sentinel, never missing.
func TestExtractRecordKeysAlwaysDefined(t *testing.T) {
	e := New(Config{})
	keys := []string{"CADASTRO", "MODELO", "PLACA", "DEFEITO", "OFICINA", "NUM_OS", "DATA_OF", "VALOR_OS"}
	for _, text := range []string{"", "texto sem anchors", memoText} {
		m := e.Extract(text, "x.txt").AsMap()
		for _, k := range keys {
			v, present := m[k]
			if !present {
				t.Fatalf("key %s missing for input %q", k, text)
			}
			s, isString := v.(string)
			if !isString || s == "" {
				t.Fatalf("key %s = %#v, want non-empty string or sentinel", k, v)
			}
		}
	}
}

func TestFieldSentinelRoundtrip(t *testing.T) {
	if models.FieldOf(models.Sentinel).Available() {
		t.Fatal("wrapping the sentinel must yield an unavailable field")
	}
	if got := (models.Field{}).String(); got != models.Sentinel {
		t.Fatalf("zero field renders %q, want %q", got, models.Sentinel)
	}
}
