package pipeline

import (
	"time"

	"github.com/Lllllllleong/fleetdocumentflow/internal/extract"
	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// MapRecord projects a complete record onto the persisted schema. The memo
// date is converted to ISO form; if its shape is unexpected the sentinel is
// stored, matching how every other unavailable value is rendered.
func MapRecord(rec models.Record, createdAt time.Time) models.ServiceOrder {
	return models.ServiceOrder{
		CadastroViatura:    rec.Cadastro.String(),
		DataCriacao:        createdAt,
		DataOS:             extract.ParseMemoDate(rec.DataOF.String()).String(),
		ModeloViatura:      rec.Modelo.String(),
		NumeroOS:           rec.NumOS.String(),
		Observacao:         rec.Defeito.String(),
		OficinaResponsavel: rec.Oficina.String(),
		PlacaViatura:       rec.Placa.String(),
		ValorOS:            rec.ValorOS.String(),
		ArquivoOriginal:    rec.Arquivo,
	}
}
