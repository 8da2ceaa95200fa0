package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type ProjectHandler struct {
	Repo *database.ProjectRepository
}

func NewProjectHandler(repo *database.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{Repo: repo}
}

type projectRequest struct {
	ClientID        string   `json:"clientId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Status          string   `json:"status,omitempty"`
	ServiceLevel    int      `json:"serviceLevel,omitempty"`
	Budget          float64  `json:"budget"`
	Progress        int      `json:"progress,omitempty"`
	StartDate       string   `json:"startDate"`
	ExpectedEndDate string   `json:"expectedEndDate"`
	ActualEndDate   *string  `json:"actualEndDate,omitempty"`
}

func (req projectRequest) validate() *usecase.DomainError {
	if req.ClientID == "" {
		return usecase.NewDomainError(usecase.CodeValidation, "clientId: cannot be blank")
	}
	if len(req.Name) < 2 {
		return usecase.NewDomainError(usecase.CodeValidation, "name: the length must be at least 2")
	}
	if req.Status != "" && !entity.ValidProjectStatus(req.Status) {
		return usecase.NewDomainError(usecase.CodeValidation, "status: must be a valid status")
	}
	if req.ServiceLevel != 0 && (req.ServiceLevel < 1 || req.ServiceLevel > 3) {
		return usecase.NewDomainError(usecase.CodeValidation, "serviceLevel: must be 1, 2 or 3")
	}
	if req.Progress < 0 || req.Progress > 100 {
		return usecase.NewDomainError(usecase.CodeValidation, "progress: must be between 0 and 100")
	}
	return nil
}

func (req projectRequest) apply(p *entity.Project) error {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return errors.New("startDate: must be a valid date (YYYY-MM-DD)")
	}
	expected, err := time.Parse("2006-01-02", req.ExpectedEndDate)
	if err != nil {
		return errors.New("expectedEndDate: must be a valid date (YYYY-MM-DD)")
	}

	p.ClientID = req.ClientID
	p.Name = req.Name
	p.Description = req.Description
	p.Budget = req.Budget
	p.Progress = req.Progress
	p.StartDate = start
	p.ExpectedEndDate = expected

	p.Status = req.Status
	if p.Status == "" {
		p.Status = entity.ProjectStatusPlanning
	}
	p.ServiceLevel = req.ServiceLevel
	if p.ServiceLevel == 0 {
		p.ServiceLevel = 1
	}

	p.ActualEndDate = nil
	if req.ActualEndDate != nil && *req.ActualEndDate != "" {
		actual, err := time.Parse("2006-01-02", *req.ActualEndDate)
		if err != nil {
			return errors.New("actualEndDate: must be a valid date (YYYY-MM-DD)")
		}
		p.ActualEndDate = &actual
	}

	return nil
}

// HandleList (GET /projects)
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	projects, total, err := h.Repo.List(r.Context(), page, limit,
		q.Get("search"), q.Get("status"), q.Get("clientId"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar projetos")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"projects":   projects,
		"pagination": entity.NewPagination(page, limit, total),
	})
}

// HandleGet (GET /projects/{id})
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	project, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// HandleCreate (POST /projects)
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if derr := req.validate(); derr != nil {
		respondError(w, http.StatusBadRequest, derr.Code, derr.Message)
		return
	}

	project := &entity.Project{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := req.apply(project); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), project); err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao gravar projeto")
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// HandleUpdate (PUT /projects/{id})
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	if derr := req.validate(); derr != nil {
		respondError(w, http.StatusBadRequest, derr.Code, derr.Message)
		return
	}

	project, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	if err := req.apply(project); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}
	project.UpdatedAt = time.Now()

	if err := h.Repo.Update(r.Context(), project); err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao atualizar projeto")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// HandleDelete (DELETE /projects/{id})
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao excluir projeto")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "projeto excluído"})
}
