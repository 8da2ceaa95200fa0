package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// Exporter baixa a listagem de clientes filtrada como CSV ou Excel e
// grava o arquivo com a data do dia no nome. O termo de busca não
// participa do export, só os filtros ativos.
type Exporter struct {
	gateway *Gateway

	// Dir é o destino dos arquivos. Vazio grava no diretório atual.
	Dir string
}

func NewExporter(gateway *Gateway) *Exporter {
	return &Exporter{gateway: gateway}
}

// ExportCSV baixa clientes_YYYY-MM-DD.csv e devolve o caminho gravado.
func (e *Exporter) ExportCSV(ctx context.Context, filters entity.ClientFilters) (string, error) {
	return e.export(ctx, "csv", "csv", filters)
}

// ExportExcel baixa clientes_YYYY-MM-DD.xlsx e devolve o caminho gravado.
func (e *Exporter) ExportExcel(ctx context.Context, filters entity.ClientFilters) (string, error) {
	return e.export(ctx, "excel", "xlsx", filters)
}

func (e *Exporter) export(ctx context.Context, format, ext string, filters entity.ClientFilters) (string, error) {
	data, err := e.gateway.ExportClients(ctx, format, filters)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.Dir, ExportFilename(ext, time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("erro ao gravar arquivo: %w", err)
	}
	return path, nil
}

// SaveTemplate baixa a planilha modelo de importação.
func (e *Exporter) SaveTemplate(ctx context.Context) (string, error) {
	data, err := e.gateway.ImportTemplate(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.Dir, "template_clientes.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("erro ao gravar arquivo: %w", err)
	}
	return path, nil
}

// ExportFilename monta o nome clientes_YYYY-MM-DD.{ext}.
func ExportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("clientes_%s.%s", now.Format("2006-01-02"), ext)
}
