package usecase

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// websiteRule aceita string vazia ("sem site") mas rejeita qualquer
// valor não vazio que não seja uma URL.
var websiteRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return validation.Validate(s, is.URL)
})

// ValidateClientInput aplica o schema declarativo do formulário de cliente.
// Retorna um erro por campo, na ordem dos campos do formulário.
func ValidateClientInput(input ClientInput) []FieldError {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.CompanyName, validation.Required, validation.Length(2, 200)),
		validation.Field(&input.ContactName, validation.Required, validation.Length(2, 200)),
		validation.Field(&input.Email, validation.Required, is.Email),
		validation.Field(&input.Website, websiteRule),
		validation.Field(&input.Sector, validation.Required),
		validation.Field(&input.Size, validation.Required,
			validation.In(entity.SizeSmall, entity.SizeMedium, entity.SizeLarge)),
		validation.Field(&input.LeadSource, validation.Required),
	)

	var out []FieldError
	if err != nil {
		verrs, ok := err.(validation.Errors)
		if !ok {
			return []FieldError{{Field: "input", Message: err.Error()}}
		}
		// ozzo indexa pela tag json, já em camelCase como o formulário
		for _, field := range []string{
			"companyName", "contactName", "email", "website",
			"sector", "size", "leadSource",
		} {
			if ferr, found := verrs[field]; found {
				out = append(out, FieldError{
					Field:   field,
					Message: ferr.Error(),
				})
			}
		}
	}

	// regras fora do alcance do schema declarativo
	if input.AcquisitionCost != nil && *input.AcquisitionCost < 0 {
		out = append(out, FieldError{Field: "acquisitionCost", Message: "must be no less than 0"})
	}
	if input.Status != "" && !entity.ValidClientStatus(input.Status) {
		out = append(out, FieldError{Field: "status", Message: "must be a valid status"})
	}

	return out
}
