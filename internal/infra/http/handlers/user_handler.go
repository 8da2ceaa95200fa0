package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/infra/queue"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type UserHandler struct {
	Repo  *database.UserRepository
	Queue usecase.NotificationProducer
}

func NewUserHandler(repo *database.UserRepository, producer usecase.NotificationProducer) *UserHandler {
	return &UserHandler{Repo: repo, Queue: producer}
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Password string `json:"password,omitempty"`

	// nome da agência/empresa usado no convite do portal do cliente
	CompanyName string `json:"companyName,omitempty"`
}

func (req userRequest) validate(requirePassword bool) error {
	errs := validation.Errors{
		"name":  validation.Validate(req.Name, validation.Required, validation.Length(2, 200)),
		"email": validation.Validate(req.Email, validation.Required, is.Email),
	}
	if err := errs.Filter(); err != nil {
		return err
	}
	if req.Role != "" && !entity.ValidRole(req.Role) {
		return errors.New("role: must be admin, manager or client")
	}
	if requirePassword && len(req.Password) < 8 {
		return errors.New("password: the length must be at least 8")
	}
	return nil
}

// HandleList (GET /users)
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, total, err := h.Repo.List(r.Context(), page, limit, q.Get("search"), q.Get("role"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar usuários")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": entity.NewPagination(page, limit, total),
	})
}

// HandleGet (GET /users/{id})
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// HandleCreate (POST /users) cadastra o usuário e, quando o papel é client,
// publica o convite do portal na fila.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if err := req.validate(true); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	user := entity.NewUser(req.Name, req.Email, req.Role)
	user.Avatar = req.Avatar
	user.PasswordHash = string(hash)

	if err := h.Repo.Create(r.Context(), user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			respondError(w, http.StatusConflict, usecase.CodeDuplicate, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao gravar usuário")
		return
	}

	if h.Queue != nil && user.Role == entity.RoleClient {
		payload := queue.NotificationPayload{
			Kind:        queue.NotificationPortalInvite,
			To:          user.Email,
			ToName:      user.Name,
			CompanyName: req.CompanyName,
		}
		if err := h.Queue.PublishNotification(r.Context(), payload); err != nil {
			log.Printf("⚠️ CRITICAL: usuário gravado, mas falha ao publicar convite: %v", err)
		}
	}

	respondJSON(w, http.StatusCreated, user)
}

// HandleUpdate (PUT /users/{id})
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if err := req.validate(false); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}

	user, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Avatar = req.Avatar
	if req.Role != "" {
		user.Role = req.Role
	}
	user.UpdatedAt = time.Now()

	if err := h.Repo.Update(r.Context(), user); err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao atualizar usuário")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// HandleDelete (DELETE /users/{id})
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao excluir usuário")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "usuário excluído"})
}
