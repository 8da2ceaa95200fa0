package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

// TestActiveCountEmptyFilters - filtro vazio não conta nada
func TestActiveCountEmptyFilters(t *testing.T) {
	var f ClientFilters
	assert.Equal(t, 0, f.ActiveCount())
	assert.True(t, f.IsEmpty())
}

// TestActiveCountListCountsOnce - lista não vazia conta como UM filtro,
// independente de quantos valores tiver
func TestActiveCountListCountsOnce(t *testing.T) {
	f := ClientFilters{Sizes: []string{"small", "medium", "large"}}
	assert.Equal(t, 1, f.ActiveCount())

	f.Statuses = []string{"active"}
	assert.Equal(t, 2, f.ActiveCount())
}

// TestActiveCountAllDimensions
func TestActiveCountAllDimensions(t *testing.T) {
	f := ClientFilters{
		Sector:      "Tecnologia",
		Sizes:       []string{"medium"},
		LeadSources: []string{"Google Ads"},
		Statuses:    []string{"active", "prospect"},
		MinValue:    floatPtr(1000),
		MaxValue:    floatPtr(50000),
		StartDate:   "2026-01-01",
		EndDate:     "2026-06-30",
	}
	assert.Equal(t, 8, f.ActiveCount())
}

// TestValuesRepeatsListKeys - listas viram chaves repetidas na query
func TestValuesRepeatsListKeys(t *testing.T) {
	f := ClientFilters{Sizes: []string{"medium", "large"}}
	v := f.Values()

	assert.Equal(t, []string{"medium", "large"}, v["sizes"])
	assert.Equal(t, "sizes=medium&sizes=large", v.Encode())
}

// TestValuesOmitsEmptyFields - campo vazio nunca vira parâmetro em branco
func TestValuesOmitsEmptyFields(t *testing.T) {
	f := ClientFilters{Sizes: []string{"medium", "large"}}
	v := f.Values()

	assert.NotContains(t, v, "sector")
	assert.NotContains(t, v, "minValue")
	assert.NotContains(t, v, "maxValue")
	assert.NotContains(t, v, "startDate")
	assert.NotContains(t, v, "endDate")
	assert.NotContains(t, v, "leadSources")
	assert.NotContains(t, v, "statuses")
}

// TestValuesScalarFields
func TestValuesScalarFields(t *testing.T) {
	f := ClientFilters{
		Sector:    "Marketing",
		MinValue:  floatPtr(1500.5),
		StartDate: "2026-03-01",
	}
	v := f.Values()

	assert.Equal(t, "Marketing", v.Get("sector"))
	assert.Equal(t, "1500.5", v.Get("minValue"))
	assert.Equal(t, "2026-03-01", v.Get("startDate"))
	assert.NotContains(t, v, "maxValue")
}
