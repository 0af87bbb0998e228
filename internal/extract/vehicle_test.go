package extract

import "testing"

func resolveTriple(t *testing.T, text string) (string, string, string) {
	t.Helper()
	e := New(Config{})
	cadastro, modelo, placa := e.Vehicle(Normalize(text))
	return cadastro.String(), modelo.String(), placa.String()
}

func TestVehicleFullDescription(t *testing.T) {
	cad, mod, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 10. "+
			"Serviço realizado na viatura CAV12 (TRAILBLAZER) de placas SBQ0D65 na oficina Auto Center Silva.")
	if cad != "CAV12" || mod != "TRAILBLAZER" || placa != "SBQ0D65" {
		t.Fatalf("got (%q, %q, %q)", cad, mod, placa)
	}
}

func TestVehicleKnownModelBackfill(t *testing.T) {
	// No parenthesized model and no plate: DUSTER doubles as registration
	// code and model.
	cad, mod, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 11. "+
			"Serviço realizado na viatura DUSTER na oficina Mecânica Boa Vista.")
	if cad != "DUSTER" || mod != "DUSTER" || placa != "S/A" {
		t.Fatalf("got (%q, %q, %q)", cad, mod, placa)
	}
}

func TestVehicleAdministrative(t *testing.T) {
	cad, mod, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 12. "+
			"Serviço realizado no VEÍCULO ADMINISTRATIVO (VW GOL) na oficina Retífica Norte.")
	if cad != "VEÍCULO ADMINISTRATIVO" || mod != "VW GOL" || placa != "S/A" {
		t.Fatalf("got (%q, %q, %q)", cad, mod, placa)
	}
}

func TestVehicleSecondaryAnchor(t *testing.T) {
	// No request sentence at all; the "realizado" anchor still isolates
	// the clause.
	cad, mod, placa := resolveTriple(t,
		"Pagamento referente ao conserto realizado no veículo PMF-301 (SPIN) na oficina do bairro.")
	if cad != "PMF-301" || mod != "SPIN" || placa != "S/A" {
		t.Fatalf("got (%q, %q, %q)", cad, mod, placa)
	}
}

func TestVehicleLoosePlateRetry(t *testing.T) {
	// The clause carries no "de placas" suffix, but the plate shows up
	// elsewhere in the letter.
	cad, _, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 13. "+
			"Serviço realizado na viatura TA77 na oficina Central. O veículo de placa HYZ1A23 aguarda retirada.")
	if cad != "TA77" {
		t.Fatalf("cadastro = %q", cad)
	}
	if placa != "HYZ1A23" {
		t.Fatalf("placa = %q, want HYZ1A23", placa)
	}
}

func TestVehicleDirectCadastroRetry(t *testing.T) {
	// Neither isolation anchor matches; the registration family itself is
	// found in the full text.
	cad, mod, placa := resolveTriple(t,
		"Segue em anexo a nota fiscal da manutenção corretiva da viatura COD88 para arquivamento.")
	if cad != "COD88" {
		t.Fatalf("cadastro = %q, want COD88", cad)
	}
	if mod != "S/A" || placa != "S/A" {
		t.Fatalf("got modelo=%q placa=%q, want sentinels", mod, placa)
	}
}

func TestVehicleNoOverwriteByLaterSteps(t *testing.T) {
	// The clause resolves everything; the stray "placa" mention later in
	// the letter must not replace the high-confidence capture.
	_, _, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 14. "+
			"Serviço realizado na viatura CAV3 (S10) de placas ABC1D23 na oficina Central. "+
			"A antiga placa ZZZ9Z99 foi devolvida ao DETRAN.")
	if placa != "ABC1D23" {
		t.Fatalf("placa = %q, want the clause capture ABC1D23", placa)
	}
}

func TestVehicleNothingFound(t *testing.T) {
	cad, mod, placa := resolveTriple(t, "memorando administrativo sem qualquer menção a veículos")
	if cad != "S/A" || mod != "S/A" || placa != "S/A" {
		t.Fatalf("got (%q, %q, %q), want all sentinels", cad, mod, placa)
	}
}

func TestVehicleDirectRetryAfterEmptyClause(t *testing.T) {
	// The isolated clause is plain prose with no code token, so the
	// composite finds nothing; the direct registration-family retry picks
	// the cadastro out of the rest of the letter.
	cad, mod, placa := resolveTriple(t,
		"Solicito de V. Sª. que seja efetuado o pagamento da ordem de serviço Nº 15. "+
			"Serviço de funilaria realizado conforme orçamento na oficina Central. "+
			"Identificação da viatura no cadastro: CAV9.")
	if cad != "CAV9" {
		t.Fatalf("cadastro = %q, want CAV9", cad)
	}
	if mod != "S/A" || placa != "S/A" {
		t.Fatalf("got modelo=%q placa=%q, want sentinels", mod, placa)
	}
}

func TestVehicleModelBackfillAfterLateDiscovery(t *testing.T) {
	// DUSTER only surfaces in lowest-confidence full-text mode; the model
	// back-fill still applies because it runs again after the retries.
	cad, mod, _ := resolveTriple(t,
		"Encaminho para pagamento a nota da revisão referente a DUSTER, conforme despacho.")
	if cad != "DUSTER" || mod != "DUSTER" {
		t.Fatalf("got cadastro=%q modelo=%q, want DUSTER twice", cad, mod)
	}
}
