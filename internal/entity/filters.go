package entity

import (
	"net/url"
	"strconv"
)

// ClientFilters guarda os predicados ativos da listagem de clientes.
// Campo vazio significa "sem restrição nessa dimensão".
type ClientFilters struct {
	Sector      string   `json:"sector,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	LeadSources []string `json:"leadSources,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
	MinValue    *float64 `json:"minValue,omitempty"`
	MaxValue    *float64 `json:"maxValue,omitempty"`
	StartDate   string   `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate     string   `json:"endDate,omitempty"`
}

func (f ClientFilters) IsEmpty() bool {
	return f.ActiveCount() == 0
}

// ActiveCount conta quantos filtros estão ativos. Uma lista não vazia
// conta como UM filtro, independente de quantos valores tiver.
func (f ClientFilters) ActiveCount() int {
	count := 0
	if f.Sector != "" {
		count++
	}
	if len(f.Sizes) > 0 {
		count++
	}
	if len(f.LeadSources) > 0 {
		count++
	}
	if len(f.Statuses) > 0 {
		count++
	}
	if f.MinValue != nil {
		count++
	}
	if f.MaxValue != nil {
		count++
	}
	if f.StartDate != "" {
		count++
	}
	if f.EndDate != "" {
		count++
	}
	return count
}

// Values converte os filtros em query string. Campos vazios são omitidos,
// nunca enviados como valor em branco. Listas viram chaves repetidas
// (sizes=medium&sizes=large).
func (f ClientFilters) Values() url.Values {
	v := url.Values{}
	if f.Sector != "" {
		v.Set("sector", f.Sector)
	}
	for _, s := range f.Sizes {
		v.Add("sizes", s)
	}
	for _, s := range f.LeadSources {
		v.Add("leadSources", s)
	}
	for _, s := range f.Statuses {
		v.Add("statuses", s)
	}
	if f.MinValue != nil {
		v.Set("minValue", strconv.FormatFloat(*f.MinValue, 'f', -1, 64))
	}
	if f.MaxValue != nil {
		v.Set("maxValue", strconv.FormatFloat(*f.MaxValue, 'f', -1, 64))
	}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	return v
}
