package entity

// RowError descreve um erro de validação em uma linha da planilha
// importada. Row é 1-based sobre as linhas de dados (cabeçalho fora).
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult resume uma importação de clientes.
// Duplicatas não são erros: são linhas puladas.
type ImportResult struct {
	Success    bool       `json:"success"`
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Errors     []RowError `json:"errors"`
}

// Finalize fecha o resumo: sucesso se e somente se não houve erro.
func (r *ImportResult) Finalize() {
	r.Success = len(r.Errors) == 0
	if r.Errors == nil {
		r.Errors = []RowError{}
	}
}
