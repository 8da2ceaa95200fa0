package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type LeadHandler struct {
	Repo     *database.LeadRepository
	CreateUC *usecase.CreateLeadUseCase
}

func NewLeadHandler(repo *database.LeadRepository, createUC *usecase.CreateLeadUseCase) *LeadHandler {
	return &LeadHandler{Repo: repo, CreateUC: createUC}
}

// HandleList (GET /leads)
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	leads, total, err := h.Repo.List(r.Context(), page, limit,
		q.Get("search"), q.Get("stage"), q.Get("source"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar leads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leads":      leads,
		"pagination": entity.NewPagination(page, limit, total),
	})
}

// HandleGet (GET /leads/{id})
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// HandleCreate (POST /leads)
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, lead)
}

// HandleUpdate (PUT /leads/{id})
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if errs := usecase.ValidateLeadInput(input); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, errs[0].Error())
		return
	}

	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	lead.Name = input.Name
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Company = input.Company
	lead.Source = input.Source
	lead.EstimatedValue = input.EstimatedValue
	lead.Notes = input.Notes
	lead.AssignedTo = input.AssignedTo
	if input.Stage != "" {
		lead.Stage = input.Stage
	}
	lead.UpdatedAt = time.Now()

	if err := h.Repo.Update(r.Context(), lead); err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao atualizar lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// HandleUpdateStage (PUT /leads/{id}/stage) move o lead no funil.
func (h *LeadHandler) HandleUpdateStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if !entity.ValidLeadStage(req.Stage) {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, "stage: must be a valid pipeline stage")
		return
	}

	if err := h.Repo.UpdateStage(r.Context(), chi.URLParam(r, "id"), req.Stage); err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao atualizar lead")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "estágio atualizado"})
}

// HandleDelete (DELETE /leads/{id})
func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao excluir lead")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "lead excluído"})
}
