package pipeline

import "github.com/Lllllllleong/fleetdocumentflow/internal/models"

// Complete reports whether the record qualifies as a usable service-order
// document: all eight extracted fields available, no partial credit. This
// binary gate routes persist-vs-log and must run after cross-referencing.
func Complete(r models.Record) bool {
	return r.Cadastro.Available() &&
		r.Modelo.Available() &&
		r.Placa.Available() &&
		r.NumOS.Available() &&
		r.DataOF.Available() &&
		r.ValorOS.Available() &&
		r.Oficina.Available() &&
		r.Defeito.Available()
}
