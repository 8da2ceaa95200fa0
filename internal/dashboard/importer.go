package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// MaxImportSize é o teto de upload aceito localmente (5 MiB).
const MaxImportSize = 5 * 1024 * 1024

// Tipos aceitos: CSV, Excel legado e Excel OOXML.
var allowedImportTypes = map[string]bool{
	"text/csv":                 true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var importTypeByExt = map[string]string{
	".csv":  "text/csv",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Importer valida o arquivo localmente antes de qualquer upload e
// guarda o resultado da última importação até o Reset.
type Importer struct {
	gateway  *Gateway
	filePath string
	result   *entity.ImportResult
}

func NewImporter(gateway *Gateway) *Importer {
	return &Importer{gateway: gateway}
}

// ValidateImportFile aplica as duas regras locais: tipo permitido e
// tamanho até 5 MiB. Arquivo recusado aqui nunca chega ao gateway.
func ValidateImportFile(name, mimeType string, size int64) error {
	if mimeType == "" {
		mimeType = importTypeByExt[strings.ToLower(filepath.Ext(name))]
	}
	if !allowedImportTypes[mimeType] {
		return fmt.Errorf("tipo de arquivo não permitido: use CSV ou Excel (.csv, .xls, .xlsx)")
	}
	if size > MaxImportSize {
		return fmt.Errorf("arquivo excede o limite de 5 MB")
	}
	return nil
}

// SelectFile valida e registra o arquivo a importar.
func (i *Importer) SelectFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	if err := ValidateImportFile(info.Name(), "", info.Size()); err != nil {
		return err
	}
	i.filePath = path
	return nil
}

// Upload envia o arquivo selecionado e guarda o resultado.
func (i *Importer) Upload(ctx context.Context) (*entity.ImportResult, error) {
	if i.filePath == "" {
		return nil, fmt.Errorf("nenhum arquivo selecionado")
	}

	f, err := os.Open(i.filePath)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo: %w", err)
	}
	defer f.Close()

	result, err := i.gateway.ImportClients(ctx, filepath.Base(i.filePath), f)
	if err != nil {
		return nil, err
	}

	i.result = result
	return result, nil
}

func (i *Importer) Result() *entity.ImportResult {
	return i.result
}

// Reset limpa arquivo e resultado. Chamado ao fechar o diálogo, para
// que uma reabertura nunca mostre resultado velho.
func (i *Importer) Reset() {
	i.filePath = ""
	i.result = nil
}

// FormatResult resume o resultado em linhas prontas para exibição:
// banner, total importado, duplicatas (só quando > 0) e os erros por
// linha no formato "Linha {n}: {campo} - {mensagem}".
func FormatResult(result *entity.ImportResult) []string {
	var lines []string

	if result.Success {
		lines = append(lines, "Importação concluída com sucesso")
	} else {
		lines = append(lines, "Importação concluída com erros")
	}
	lines = append(lines, fmt.Sprintf("%d cliente(s) importado(s)", result.Imported))

	if result.Duplicates > 0 {
		lines = append(lines, fmt.Sprintf("%d duplicado(s) ignorado(s)", result.Duplicates))
	}

	for _, re := range result.Errors {
		lines = append(lines, fmt.Sprintf("Linha %d: %s - %s", re.Row, re.Field, re.Message))
	}

	return lines
}
