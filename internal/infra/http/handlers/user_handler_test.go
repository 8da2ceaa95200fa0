package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============ TESTES ============

func validUserRequest() userRequest {
	return userRequest{
		Name:     "Maria Souza",
		Email:    "maria@yux.digital",
		Role:     "manager",
		Password: "senha-forte-123",
	}
}

// TestUserRequestValidateAceitaPayloadValido
func TestUserRequestValidateAceitaPayloadValido(t *testing.T) {
	assert.NoError(t, validUserRequest().validate(true))
}

// TestUserRequestValidateRejeitaNomeEEmail - as regras declarativas de
// name/email precisam barrar o payload
func TestUserRequestValidateRejeitaNomeEEmail(t *testing.T) {
	req := validUserRequest()
	req.Name = "X"
	assert.Error(t, req.validate(true))

	req = validUserRequest()
	req.Email = "nao-e-email"
	assert.Error(t, req.validate(true))

	req = validUserRequest()
	req.Name = ""
	req.Email = ""
	assert.Error(t, req.validate(true))
}

// TestUserRequestValidateRejeitaRoleInvalida
func TestUserRequestValidateRejeitaRoleInvalida(t *testing.T) {
	req := validUserRequest()
	req.Role = "superuser"
	err := req.validate(true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

// TestUserRequestValidateSenha - senha curta só barra na criação
func TestUserRequestValidateSenha(t *testing.T) {
	req := validUserRequest()
	req.Password = "curta"
	assert.Error(t, req.validate(true))
	assert.NoError(t, req.validate(false))
}
