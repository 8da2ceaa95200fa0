package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// ClientInput é o payload do formulário de cliente (criação e edição).
type ClientInput struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`

	Sector     string   `json:"sector"`
	Size       string   `json:"size"`
	LeadSource string   `json:"leadSource"`
	Status     string   `json:"status,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Notes      string   `json:"notes,omitempty"`

	AcquisitionCost *float64        `json:"acquisitionCost,omitempty"`
	Address         *entity.Address `json:"address,omitempty"`
	AssignedTo      string          `json:"assignedTo,omitempty"`
}

// Normalize aplica as regras de submissão do formulário: endereço com
// todos os subcampos em branco é descartado (nunca vira objeto de strings
// vazias), country recebe o default e as tags são deduplicadas.
func (in *ClientInput) Normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)

	if in.Address != nil {
		if in.Address.IsBlank() {
			in.Address = nil
		} else if strings.TrimSpace(in.Address.Country) == "" {
			in.Address.Country = entity.DefaultCountry
		}
	}

	if in.Status == "" {
		in.Status = entity.ClientStatusProspect
	}
}

// ToEntity monta a entidade a partir do input já validado.
func (in ClientInput) ToEntity() *entity.Client {
	now := time.Now()
	c := &entity.Client{
		ID:              uuid.New().String(),
		CompanyName:     in.CompanyName,
		ContactName:     in.ContactName,
		Email:           in.Email,
		Phone:           in.Phone,
		Website:         in.Website,
		Sector:          in.Sector,
		Size:            in.Size,
		LeadSource:      in.LeadSource,
		Status:          in.Status,
		Tags:            in.Tags,
		Notes:           in.Notes,
		AcquisitionCost: in.AcquisitionCost,
		Address:         in.Address,
		AssignedTo:      in.AssignedTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	c.NormalizeTags()
	return c
}

// ListClientsInput são os parâmetros reconhecidos por GET /clients.
type ListClientsInput struct {
	Page    int
	Limit   int
	Search  string
	Filters entity.ClientFilters
}

func (in *ListClientsInput) Sanitize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}
}

type ListClientsOutput struct {
	Clients    []entity.Client   `json:"clients"`
	Pagination entity.Pagination `json:"pagination"`
}
