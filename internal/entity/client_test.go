package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAddressIsBlankAllEmpty - endereço todo em branco (ou só com o país
// default) é considerado vazio
func TestAddressIsBlankAllEmpty(t *testing.T) {
	blank := Address{}
	assert.True(t, blank.IsBlank())

	whitespace := Address{Street: "  ", City: "\t", Country: DefaultCountry}
	assert.True(t, whitespace.IsBlank())
}

func TestAddressIsBlankWithContent(t *testing.T) {
	a := Address{City: "São Paulo"}
	assert.False(t, a.IsBlank())
}

// TestNormalizeTagsDeduplicates - tags repetidas caem, ordem preservada
func TestNormalizeTagsDeduplicates(t *testing.T) {
	c := Client{Tags: []string{"saas", "b2b", "saas", " b2b ", "agencia"}}
	c.NormalizeTags()

	assert.Equal(t, []string{"saas", "b2b", "agencia"}, c.Tags)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("Acme", "Maria", "maria@acme.com", "Tecnologia", SizeMedium, "Google Ads")

	assert.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ClientStatusProspect, c.Status)
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize(SizeSmall))
	assert.True(t, ValidSize(SizeMedium))
	assert.True(t, ValidSize(SizeLarge))
	assert.False(t, ValidSize("enormous"))
	assert.False(t, ValidSize(""))
}

// TestPaginationEnvelope
func TestPaginationEnvelope(t *testing.T) {
	p := NewPagination(2, 10, 35)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 35, p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

// TestPaginationEmptyResult - lista vazia ainda tem pelo menos 1 página
func TestPaginationEmptyResult(t *testing.T) {
	p := NewPagination(1, 10, 0)

	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

// TestImportResultFinalize - sucesso se e somente se não houve erro
func TestImportResultFinalize(t *testing.T) {
	clean := ImportResult{Imported: 10, Duplicates: 3}
	clean.Finalize()
	assert.True(t, clean.Success)
	assert.NotNil(t, clean.Errors)

	failed := ImportResult{Imported: 9, Errors: []RowError{{Row: 2, Field: "email", Message: "must be a valid email address"}}}
	failed.Finalize()
	assert.False(t, failed.Success)
}
