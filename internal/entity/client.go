package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tamanhos de empresa aceitos
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Status possíveis de um cliente
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusProspect = "prospect"
	ClientStatusChurned  = "churned"
)

const DefaultCountry = "Brasil"

// Listas de sugestão usadas nos formulários (setor e fonte são texto livre)
var ClientSectors = []string{
	"Tecnologia",
	"Saúde",
	"Educação",
	"Varejo",
	"E-commerce",
	"Serviços Financeiros",
	"Imobiliário",
	"Alimentação",
	"Beleza e Estética",
	"Consultoria",
	"Advocacia",
	"Contabilidade",
	"Marketing",
	"Construção",
	"Indústria",
	"Logística",
	"Turismo",
	"Outros",
}

var LeadSources = []string{
	"Google Ads",
	"Meta Ads",
	"LinkedIn",
	"Indicação",
	"Site Orgânico",
	"Email Marketing",
	"Evento",
	"Cold Outreach",
	"Parceiro",
	"Outros",
}

// Value Object: Address
// Todos os campos são opcionais; country recebe o default quando vazio.
type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// IsBlank diz se todos os subcampos estão vazios (ignorando espaços).
// Um endereço em branco não deve ser enviado nem persistido.
func (a Address) IsBlank() bool {
	fields := []string{a.Street, a.Number, a.Complement, a.Neighborhood, a.City, a.State, a.ZipCode}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	// country sozinho não conta: é só o default
	return strings.TrimSpace(a.Country) == "" || a.Country == DefaultCountry
}

// Entidade: Client
type Client struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`

	Sector     string   `json:"sector"`
	Size       string   `json:"size"`
	LeadSource string   `json:"leadSource"`
	Status     string   `json:"status"`
	Tags       []string `json:"tags,omitempty"`
	Notes      string   `json:"notes,omitempty"`

	AcquisitionCost *float64 `json:"acquisitionCost,omitempty"`
	LifetimeValue   *float64 `json:"lifetimeValue,omitempty"`

	Address    *Address `json:"address,omitempty"`
	AssignedTo string   `json:"assignedTo,omitempty"`

	// Agregados calculados pelo banco, nunca gravados diretamente
	ProjectsCount int     `json:"projectsCount"`
	TotalValue    float64 `json:"totalValue"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Estatísticas agregadas exibidas no topo da listagem
type ClientStats struct {
	TotalClients        int     `json:"totalClients"`
	ActiveClients       int     `json:"activeClients"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageValue        float64 `json:"averageValue"`
	NewClientsThisMonth int     `json:"newClientsThisMonth"`
	ConversionRate      float64 `json:"conversionRate"`
}

var (
	ErrEmailAlreadyExists = errors.New("já existe um cliente com este email")
	ErrClientNotFound     = errors.New("cliente não encontrado")
)

// Factory
func NewClient(companyName, contactName, email, sector, size, leadSource string) (*Client, error) {
	c := &Client{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		ContactName: contactName,
		Email:       email,
		Sector:      sector,
		Size:        size,
		LeadSource:  leadSource,
		Status:      ClientStatusProspect,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) Validate() error {
	if c.CompanyName == "" {
		return errors.New("company name is required")
	}
	if c.ContactName == "" {
		return errors.New("contact name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !ValidSize(c.Size) {
		return errors.New("size must be small, medium or large")
	}
	return nil
}

// NormalizeTags remove duplicatas e entradas vazias preservando a ordem.
func (c *Client) NormalizeTags() {
	if len(c.Tags) == 0 {
		return
	}
	seen := make(map[string]bool, len(c.Tags))
	out := c.Tags[:0]
	for _, t := range c.Tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	c.Tags = out
}

func ValidSize(size string) bool {
	return size == SizeSmall || size == SizeMedium || size == SizeLarge
}

func ValidClientStatus(status string) bool {
	switch status {
	case ClientStatusActive, ClientStatusInactive, ClientStatusProspect, ClientStatusChurned:
		return true
	}
	return false
}
