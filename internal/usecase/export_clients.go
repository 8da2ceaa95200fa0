package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// Formatos de exportação aceitos
const (
	ExportFormatCSV   = "csv"
	ExportFormatExcel = "excel"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{
	"companyName", "contactName", "email", "phone", "website",
	"sector", "size", "leadSource", "status", "acquisitionCost",
	"lifetimeValue", "tags", "createdAt",
}

type ExportClientsUseCase struct {
	Repo ClientRepository
}

func NewExportClientsUseCase(repo ClientRepository) *ExportClientsUseCase {
	return &ExportClientsUseCase{Repo: repo}
}

// Execute renderiza todos os clientes que batem nos filtros ativos.
// O termo de busca não participa da exportação, só os predicados.
func (uc *ExportClientsUseCase) Execute(ctx context.Context, format string, filters entity.ClientFilters) ([]byte, string, error) {
	clients, err := uc.Repo.ListAll(ctx, filters)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao carregar clientes para exportação: %w", err)
	}

	switch format {
	case ExportFormatCSV:
		data, err := renderCSV(clients)
		return data, ContentTypeCSV, err
	case ExportFormatExcel:
		data, err := renderExcel(clients)
		return data, ContentTypeXLSX, err
	default:
		return nil, "", NewDomainError(CodeValidation, "formato deve ser csv ou excel")
	}
}

func renderCSV(clients []entity.Client) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, c := range clients {
		if err := w.Write(exportRow(c)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderExcel(clients []entity.Client) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Clientes"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}

	for r, c := range clients {
		for i, value := range exportRow(c) {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(c entity.Client) []string {
	return []string{
		c.CompanyName,
		c.ContactName,
		c.Email,
		c.Phone,
		c.Website,
		c.Sector,
		c.Size,
		c.LeadSource,
		c.Status,
		floatCell(c.AcquisitionCost),
		floatCell(c.LifetimeValue),
		strings.Join(c.Tags, ";"),
		c.CreatedAt.Format("2006-01-02"),
	}
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// ClientImportTemplate gera o template xlsx baixado pelo painel, com o
// cabeçalho esperado e uma linha de exemplo.
func ClientImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Clientes"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}

	example := []string{
		"Acme Ltda", "Maria Souza", "maria@acme.com.br", "(11) 99999-0000",
		"https://acme.com.br", "Tecnologia", "medium", "Google Ads",
		"prospect", "1500.00", "saas;b2b", "",
	}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
