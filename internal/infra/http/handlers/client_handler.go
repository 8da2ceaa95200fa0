package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/http/middleware"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

// Limite do upload de planilha: 5 MiB
const maxImportSize = 5 * 1024 * 1024

type ClientHandler struct {
	Repo     usecase.ClientRepository
	CreateUC *usecase.CreateClientUseCase
	UpdateUC *usecase.UpdateClientUseCase
	ImportUC *usecase.ImportClientsUseCase
	ExportUC *usecase.ExportClientsUseCase
}

func NewClientHandler(
	repo usecase.ClientRepository,
	createUC *usecase.CreateClientUseCase,
	updateUC *usecase.UpdateClientUseCase,
	importUC *usecase.ImportClientsUseCase,
	exportUC *usecase.ExportClientsUseCase,
) *ClientHandler {
	return &ClientHandler{
		Repo:     repo,
		CreateUC: createUC,
		UpdateUC: updateUC,
		ImportUC: importUC,
		ExportUC: exportUC,
	}
}

// HandleList (GET /clients)
// Reconhece page, limit, search e os filtros de cliente. Parâmetro
// ausente significa "sem restrição".
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	in := usecase.ListClientsInput{
		Search:  r.URL.Query().Get("search"),
		Filters: filtersFromQuery(r),
	}
	in.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	in.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	in.Sanitize()

	clients, total, err := h.Repo.List(r.Context(), in)
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar clientes")
		return
	}

	respondJSON(w, http.StatusOK, usecase.ListClientsOutput{
		Clients:    clients,
		Pagination: entity.NewPagination(in.Page, in.Limit, total),
	})
}

// HandleGet (GET /clients/{id})
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	client, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, entity.ErrClientNotFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// HandleCreate (POST /clients)
func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	client, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, client)
}

// HandleUpdate (PUT /clients/{id})
func (h *ClientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeInvalidJSON, "JSON inválido")
		return
	}

	client, err := h.UpdateUC.Execute(r.Context(), id, input)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// HandleDelete (DELETE /clients/{id})
func (h *ClientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			respondError(w, http.StatusNotFound, usecase.CodeNotFound, entity.ErrClientNotFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao excluir cliente")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "cliente excluído"})
}

// HandleStats (GET /clients/stats)
func (h *ClientHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao carregar estatísticas")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleImport (POST /clients/import)
// Multipart com o campo "file". O resultado sempre volta 200 com o
// resumo; erros de linha não são erro HTTP.
func (h *ClientHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize+4096)

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation,
			"Arquivo muito grande. Tamanho máximo: 5MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, usecase.CodeValidation, "Arquivo ausente no campo 'file'")
		return
	}
	defer file.Close()

	result, err := h.ImportUC.Execute(r.Context(), header.Filename, file)
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	middleware.RecordClientsImported(result.Imported)
	respondJSON(w, http.StatusOK, result)
}

// HandleExport (GET /clients/export?format=csv|excel)
// Devolve o binário puro, sem envelope, pronto pra download.
func (h *ClientHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = usecase.ExportFormatCSV
	}

	data, contentType, err := h.ExportUC.Execute(r.Context(), format, filtersFromQuery(r))
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	ext := "csv"
	if format == usecase.ExportFormatExcel {
		ext = "xlsx"
	}
	filename := fmt.Sprintf("clientes_%s.%s", time.Now().Format("2006-01-02"), ext)

	middleware.RecordClientExport(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleTemplate (GET /clients/import/template)
func (h *ClientHandler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := usecase.ClientImportTemplate()
	if err != nil {
		respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro ao gerar template")
		return
	}

	w.Header().Set("Content-Type", usecase.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="template_clientes.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// filtersFromQuery traduz a query string nos predicados de filtro.
// Chave ausente ou vazia fica fora do predicado.
func filtersFromQuery(r *http.Request) entity.ClientFilters {
	q := r.URL.Query()

	f := entity.ClientFilters{
		Sector:      q.Get("sector"),
		Sizes:       nonEmpty(q["sizes"]),
		LeadSources: nonEmpty(q["leadSources"]),
		Statuses:    nonEmpty(q["statuses"]),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
	}

	if raw := q.Get("minValue"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinValue = &v
		}
	}
	if raw := q.Get("maxValue"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxValue = &v
		}
	}

	return f
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
