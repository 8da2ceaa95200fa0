package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/infra/http/middleware"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type CampaignHandler struct {
	Repo   *database.CampaignRepository
	SyncUC *usecase.SyncCampaignsUseCase
}

func NewCampaignHandler(repo *database.CampaignRepository, syncUC *usecase.SyncCampaignsUseCase) *CampaignHandler {
	return &CampaignHandler{Repo: repo, SyncUC: syncUC}
}

// HandleList (GET /campaigns)
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	campaigns, total, err := h.Repo.List(r.Context(), page, limit, q.Get("platform"), q.Get("status"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar campanhas")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns":  campaigns,
		"pagination": entity.NewPagination(page, limit, total),
	})
}

// HandleGet (GET /campaigns/{id})
func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

// HandleSync (POST /campaigns/sync) busca as campanhas na plataforma de ads
// e grava as métricas atualizadas.
func (h *CampaignHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	output, err := h.SyncUC.Execute(r.Context())
	if err != nil {
		log.Printf("❌ Erro ao sincronizar campanhas: %v", err)
		middleware.RecordIntegrationError("ads")
		respondError(w, http.StatusBadGateway, usecase.CodeInternal, "Erro ao sincronizar campanhas")
		return
	}

	middleware.RecordCampaignsSynced(output.SyncedCount)
	respondJSON(w, http.StatusOK, output)
}

// HandleUpdateStatus (PUT /campaigns/{id}/status)
func (h *CampaignHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if !entity.ValidCampaignStatus(req.Status) {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, "status: must be a valid status")
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao atualizar campanha")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "status atualizado"})
}
