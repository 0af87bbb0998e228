package models

// Record is the pipeline's central value object: the eight fields extracted
// from one memo plus the source file name. Completo is derived by the
// completeness classifier after cross-referencing; extractors never set it.
type Record struct {
	Cadastro Field // vehicle registration code
	Modelo   Field // vehicle model
	Placa    Field // license plate
	Defeito  Field // defect / service description
	Oficina  Field // workshop name
	NumOS    Field // service-order number
	DataOF   Field // office memo date, human format
	ValorOS  Field // monetary amount, verbatim
	Arquivo  string
	Completo bool
}

// AsMap renders the record in its boundary form, every key present and
// unavailable fields carrying the sentinel. This is the payload attached to
// error entries so a reviewer sees exactly what was extracted.
func (r Record) AsMap() map[string]any {
	return map[string]any{
		"CADASTRO": r.Cadastro.String(),
		"MODELO":   r.Modelo.String(),
		"PLACA":    r.Placa.String(),
		"DEFEITO":  r.Defeito.String(),
		"OFICINA":  r.Oficina.String(),
		"NUM_OS":   r.NumOS.String(),
		"DATA_OF":  r.DataOF.String(),
		"VALOR_OS": r.ValorOS.String(),
		"ARQUIVO":  r.Arquivo,
		"COMPLETO": r.Completo,
	}
}
