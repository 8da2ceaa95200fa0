package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

func validInput() ClientInput {
	return ClientInput{
		CompanyName: "Acme Ltda",
		ContactName: "Maria Souza",
		Email:       "maria@acme.com.br",
		Sector:      "Tecnologia",
		Size:        entity.SizeMedium,
		LeadSource:  "Google Ads",
	}
}

func fieldNames(errs []FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateClientInputOK(t *testing.T) {
	errs := ValidateClientInput(validInput())
	assert.Empty(t, errs)
}

// TestValidateWebsiteEmptyAccepted - string vazia é "sem site", aceita
func TestValidateWebsiteEmptyAccepted(t *testing.T) {
	input := validInput()
	input.Website = ""

	assert.Empty(t, ValidateClientInput(input))
}

// TestValidateWebsiteInvalidRejected - valor não vazio precisa ser URL
func TestValidateWebsiteInvalidRejected(t *testing.T) {
	input := validInput()
	input.Website = "not-a-url"

	errs := ValidateClientInput(input)
	assert.Contains(t, fieldNames(errs), "website")
}

func TestValidateWebsiteValidURL(t *testing.T) {
	input := validInput()
	input.Website = "https://acme.com.br"

	assert.Empty(t, ValidateClientInput(input))
}

func TestValidateRequiredFields(t *testing.T) {
	errs := ValidateClientInput(ClientInput{})

	names := fieldNames(errs)
	assert.Contains(t, names, "companyName")
	assert.Contains(t, names, "contactName")
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "sector")
	assert.Contains(t, names, "size")
	assert.Contains(t, names, "leadSource")
}

func TestValidateMinLengthNames(t *testing.T) {
	input := validInput()
	input.CompanyName = "A"
	input.ContactName = "B"

	names := fieldNames(ValidateClientInput(input))
	assert.Contains(t, names, "companyName")
	assert.Contains(t, names, "contactName")
}

func TestValidateEmailFormat(t *testing.T) {
	input := validInput()
	input.Email = "nao-e-email"

	assert.Contains(t, fieldNames(ValidateClientInput(input)), "email")
}

func TestValidateSizeEnum(t *testing.T) {
	input := validInput()
	input.Size = "gigante"

	assert.Contains(t, fieldNames(ValidateClientInput(input)), "size")
}

// TestValidateCollectsAllInvalidFields - cada campo inválido aparece no
// resultado, com o nome camelCase que o formulário usa
func TestValidateCollectsAllInvalidFields(t *testing.T) {
	input := validInput()
	input.ContactName = "X"
	input.Email = "not-an-email"
	input.Size = "huge"

	errs := ValidateClientInput(input)
	assert.Len(t, errs, 3)
	assert.Equal(t, []string{"contactName", "email", "size"}, fieldNames(errs))
}

// TestValidateAcquisitionCostNegative
func TestValidateAcquisitionCostNegative(t *testing.T) {
	cost := -10.0
	input := validInput()
	input.AcquisitionCost = &cost

	assert.Contains(t, fieldNames(ValidateClientInput(input)), "acquisitionCost")
}

func TestValidateAcquisitionCostZeroOK(t *testing.T) {
	cost := 0.0
	input := validInput()
	input.AcquisitionCost = &cost

	assert.Empty(t, ValidateClientInput(input))
}

func TestValidateStatusEnum(t *testing.T) {
	input := validInput()
	input.Status = "zumbi"

	assert.Contains(t, fieldNames(ValidateClientInput(input)), "status")
}

// TestNormalizeDropsBlankAddress - endereço com todos os subcampos em
// branco é omitido do payload, nunca enviado como objeto de strings vazias
func TestNormalizeDropsBlankAddress(t *testing.T) {
	input := validInput()
	input.Address = &entity.Address{Street: "  ", City: "", ZipCode: "\t"}

	input.Normalize()
	assert.Nil(t, input.Address)
}

// TestNormalizeKeepsAddressWithContent - endereço preenchido fica e o
// país recebe o default
func TestNormalizeKeepsAddressWithContent(t *testing.T) {
	input := validInput()
	input.Address = &entity.Address{City: "São Paulo", State: "SP"}

	input.Normalize()
	assert.NotNil(t, input.Address)
	assert.Equal(t, entity.DefaultCountry, input.Address.Country)
}

func TestNormalizeDefaultStatus(t *testing.T) {
	input := validInput()
	input.Normalize()

	assert.Equal(t, entity.ClientStatusProspect, input.Status)
}
