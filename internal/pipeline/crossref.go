package pipeline

import (
	"context"
	"log/slog"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// CrossReference looks the vehicle up in the fleet registry by the first
// available identifier, in priority order CADASTRO > MODELO > PLACA, and
// back-fills only the identifier fields still unavailable. Extraction
// confidence outranks the registry: a field the extractor resolved is never
// overwritten. Registry failures are treated as "not found" — they can at
// most leave a field unavailable, which the classifier handles.
func CrossReference(ctx context.Context, registry FleetRegistry, rec *models.Record, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := []struct {
		field RegistryField
		value models.Field
	}{
		{FieldCadastro, rec.Cadastro},
		{FieldModelo, rec.Modelo},
		{FieldPlaca, rec.Placa},
	}

	for _, c := range candidates {
		v, ok := c.value.Value()
		if !ok {
			continue
		}
		vehicle, err := registry.Lookup(ctx, c.field, v)
		if err != nil {
			logger.Warn("Fleet registry lookup failed; treating as not found.", "field", string(c.field), "value", v, "error", err)
			return
		}
		if vehicle == nil {
			return
		}
		if !rec.Cadastro.Available() {
			rec.Cadastro = models.FieldOf(vehicle.Cadastro)
		}
		if !rec.Modelo.Available() {
			rec.Modelo = models.FieldOf(vehicle.Modelo)
		}
		if !rec.Placa.Available() {
			rec.Placa = models.FieldOf(vehicle.Placa)
		}
		return
	}
}
