package models

import "time"

// ServiceOrder is the persisted projection of a complete Record. The
// Firestore field names are part of the external contract consumed by the
// dashboard and must not change.
type ServiceOrder struct {
	CadastroViatura    string    `firestore:"cadastroViatura"`
	DataCriacao        time.Time `firestore:"dataCriacao"`
	DataOS             string    `firestore:"dataOS"` // ISO YYYY-MM-DD
	ModeloViatura      string    `firestore:"modeloViatura"`
	NumeroOS           string    `firestore:"numeroOS"`
	Observacao         string    `firestore:"observacao"`
	OficinaResponsavel string    `firestore:"oficinaResponsavel"`
	PlacaViatura       string    `firestore:"placaViatura"`
	ValorOS            string    `firestore:"valorOS"`
	ArquivoOriginal    string    `firestore:"arquivoOriginal"`
}

// RegistryVehicle is a read-only row from the fleet registry, keyed by any
// of its three identifier fields. The registry is owned by the dashboard,
// never written by this pipeline.
type RegistryVehicle struct {
	Cadastro string `firestore:"cadastro,omitempty"`
	Modelo   string `firestore:"modelo,omitempty"`
	Placa    string `firestore:"placa,omitempty"`
}

// ErrorEntry records one rejected document or failed persistence attempt.
// Entries are accumulated during a run and written once at the end.
type ErrorEntry struct {
	File    string         `firestore:"file"`
	Reason  string         `firestore:"reason"`
	Details map[string]any `firestore:"details,omitempty"`
}

// RunSummary is the per-run audit document persisted next to the error log.
type RunSummary struct {
	RunID      string    `firestore:"runId"`
	InputRoot  string    `firestore:"inputRoot"`
	Found      int       `firestore:"found"`
	Processed  int       `firestore:"processed"`
	Persisted  int       `firestore:"persisted"`
	Errored    int       `firestore:"errored"`
	StartedAt  time.Time `firestore:"startedAt"`
	FinishedAt time.Time `firestore:"finishedAt"`
}
