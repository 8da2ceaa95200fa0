package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/infra/http/middleware"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type AuthHandler struct {
	UserRepo *database.UserRepository
	Auth     *middleware.Auth
}

func NewAuthHandler(userRepo *database.UserRepository, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{UserRepo: userRepo, Auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// HandleLogin (POST /auth/login)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	user, err := h.UserRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		// AUTH_001 é tratado inline pela tela de login, sem toast global
		respondError(w, http.StatusUnauthorized, usecase.CodeAuthDenied, entity.ErrInvalidCredentials.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, usecase.CodeAuthDenied, entity.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.Auth.IssueToken(user.ID, user.Name, user.Role)
	if err != nil {
		log.Printf("Erro ao emitir token: %v", err)
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// HandleLogout (POST /auth/logout)
// O token é stateless: o logout só existe para o painel limpar a sessão.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "logout efetuado"})
}

// HandleMe (GET /auth/me)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	user, err := h.UserRepo.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, entity.ErrUserNotFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
