package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// Colunas reconhecidas na planilha de importação, na ordem do template.
var importColumns = []string{
	"companyName",
	"contactName",
	"email",
	"phone",
	"website",
	"sector",
	"size",
	"leadSource",
	"status",
	"acquisitionCost",
	"tags",
	"notes",
}

type ImportClientsUseCase struct {
	Repo ClientRepository
}

func NewImportClientsUseCase(repo ClientRepository) *ImportClientsUseCase {
	return &ImportClientsUseCase{Repo: repo}
}

// Execute processa a planilha inteira e devolve o resultado consolidado.
// Emails já cadastrados contam como duplicata, não como erro. O número da
// linha nos erros é 1-based sobre as linhas de dados (cabeçalho fora).
func (uc *ImportClientsUseCase) Execute(ctx context.Context, filename string, file io.Reader) (*entity.ImportResult, error) {
	rows, err := readRows(filename, file)
	if err != nil {
		return nil, NewDomainError(CodeValidation, err.Error())
	}

	if len(rows) == 0 {
		return nil, NewDomainError(CodeValidation, "planilha vazia")
	}

	header := rows[0]
	index := headerIndex(header)
	if _, ok := index["email"]; !ok {
		return nil, NewDomainError(CodeValidation, "coluna obrigatória ausente: email")
	}

	result := &entity.ImportResult{}

	for i, row := range rows[1:] {
		rowNum := i + 1

		if emptyRow(row) {
			continue
		}

		input, errs := rowToInput(row, index)
		input.Normalize()

		errs = append(errs, ValidateClientInput(input)...)
		if len(errs) > 0 {
			for _, fe := range errs {
				result.Errors = append(result.Errors, entity.RowError{
					Row:     rowNum,
					Field:   fe.Field,
					Message: fe.Message,
				})
			}
			continue
		}

		client := input.ToEntity()
		if err := uc.Repo.Create(ctx, client); err != nil {
			if errors.Is(err, entity.ErrEmailAlreadyExists) {
				result.Duplicates++
				continue
			}
			result.Errors = append(result.Errors, entity.RowError{
				Row:     rowNum,
				Field:   "email",
				Message: "erro ao gravar cliente",
			})
			log.Printf("⚠️ Import: falha na linha %d: %v", rowNum, err)
			continue
		}

		result.Imported++
	}

	result.Finalize()
	log.Printf("📥 Importação concluída: %d importados, %d duplicatas, %d erros",
		result.Imported, result.Duplicates, len(result.Errors))

	return result, nil
}

// readRows materializa a planilha como matriz de células, CSV ou xlsx.
func readRows(filename string, file io.Reader) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".xlsx", ".xls":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("não foi possível ler a planilha: %v", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("planilha sem abas")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("não foi possível ler a planilha: %v", err)
		}
		return rows, nil

	default:
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("não foi possível ler o CSV: %v", err)
		}
		return rows, nil
	}
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		for _, known := range importColumns {
			if strings.EqualFold(col, known) {
				index[known] = i
			}
		}
	}
	return index
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowToInput(row []string, index map[string]int) (ClientInput, []FieldError) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var errs []FieldError
	input := ClientInput{
		CompanyName: cell("companyName"),
		ContactName: cell("contactName"),
		Email:       cell("email"),
		Phone:       cell("phone"),
		Website:     cell("website"),
		Sector:      cell("sector"),
		Size:        cell("size"),
		LeadSource:  cell("leadSource"),
		Status:      cell("status"),
		Notes:       cell("notes"),
	}

	if raw := cell("acquisitionCost"); raw != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
			input.AcquisitionCost = &v
		} else {
			errs = append(errs, FieldError{Field: "acquisitionCost", Message: "must be a number"})
		}
	}

	if raw := cell("tags"); raw != "" {
		for _, t := range strings.Split(raw, ";") {
			if t = strings.TrimSpace(t); t != "" {
				input.Tags = append(input.Tags, t)
			}
		}
	}

	return input, errs
}
