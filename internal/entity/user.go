package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Papéis de acesso ao painel
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClient  = "client" // acesso ao portal do cliente
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`

	// nunca serializado nas respostas
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
)

func NewUser(name, email, role string) *User {
	if role == "" {
		role = RoleManager
	}
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleClient
}
