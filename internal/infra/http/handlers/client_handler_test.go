package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

// MockClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, in usecase.ListClientsInput) ([]entity.Client, int, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Client), args.Int(1), args.Error(2)
}

func (m *MockClientRepository) ListAll(ctx context.Context, filters entity.ClientFilters) ([]entity.Client, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Client), args.Error(1)
}

func (m *MockClientRepository) Stats(ctx context.Context) (*entity.ClientStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClientStats), args.Error(1)
}

func newClientHandler(repo *MockClientRepository) *ClientHandler {
	return NewClientHandler(
		repo,
		usecase.NewCreateClientUseCase(repo),
		usecase.NewUpdateClientUseCase(repo),
		usecase.NewImportClientsUseCase(repo),
		usecase.NewExportClientsUseCase(repo),
	)
}

func clientRouter(h *ClientHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/clients", h.HandleList)
	r.Post("/clients", h.HandleCreate)
	r.Get("/clients/export", h.HandleExport)
	r.Post("/clients/import", h.HandleImport)
	r.Get("/clients/{id}", h.HandleGet)
	return r
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) APIResponse {
	t.Helper()
	var env APIResponse
	assert.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

// ============ TESTES ============

// TestHandleListParsesQueryIntoFilters - a query string vira o predicado
// inteiro; chaves ausentes ficam fora
func TestHandleListParsesQueryIntoFilters(t *testing.T) {
	repo := new(MockClientRepository)

	var gotInput usecase.ListClientsInput
	repo.On("List", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotInput = args.Get(1).(usecase.ListClientsInput)
	}).Return([]entity.Client{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/clients?page=2&limit=10&search=acme&sizes=medium&sizes=large&minValue=1000", nil)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotInput.Page)
	assert.Equal(t, 10, gotInput.Limit)
	assert.Equal(t, "acme", gotInput.Search)
	assert.Equal(t, []string{"medium", "large"}, gotInput.Filters.Sizes)
	assert.NotNil(t, gotInput.Filters.MinValue)
	assert.Equal(t, 1000.0, *gotInput.Filters.MinValue)
	assert.Empty(t, gotInput.Filters.Sector)
	assert.Nil(t, gotInput.Filters.MaxValue)

	env := decodeEnvelope(t, rec.Body)
	assert.True(t, env.Success)
}

// TestHandleListSanitizesPagination - page/limit fora da faixa voltam
// para os defaults
func TestHandleListSanitizesPagination(t *testing.T) {
	repo := new(MockClientRepository)

	var gotInput usecase.ListClientsInput
	repo.On("List", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotInput = args.Get(1).(usecase.ListClientsInput)
	}).Return([]entity.Client{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/clients?page=-3&limit=9999", nil)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, 1, gotInput.Page)
	assert.Equal(t, 10, gotInput.Limit)
}

// TestHandleCreateValidationError - formulário inválido volta 400 com o
// código silencioso que o painel renderiza inline
func TestHandleCreateValidationError(t *testing.T) {
	repo := new(MockClientRepository)

	body := `{"companyName":"A","email":"nao-e-email"}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec.Body)
	assert.False(t, env.Success)
	assert.Equal(t, usecase.CodeValidation, env.Error.Code)
	repo.AssertNotCalled(t, "Create")
}

// TestHandleCreateDuplicateEmail - email repetido vira 409 DUPLICATE
func TestHandleCreateDuplicateEmail(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	body := `{
		"companyName": "Acme Ltda",
		"contactName": "Maria Souza",
		"email": "maria@acme.com.br",
		"sector": "Tecnologia",
		"size": "medium",
		"leadSource": "Google Ads"
	}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	env := decodeEnvelope(t, rec.Body)
	assert.Equal(t, usecase.CodeDuplicate, env.Error.Code)
}

// TestHandleCreateSuccess
func TestHandleCreateSuccess(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{
		"companyName": "Acme Ltda",
		"contactName": "Maria Souza",
		"email": "maria@acme.com.br",
		"sector": "Tecnologia",
		"size": "medium",
		"leadSource": "Google Ads",
		"address": {"street": " ", "city": ""}
	}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec.Body)
	assert.True(t, env.Success)

	// endereço todo em branco foi descartado antes de persistir
	raw, _ := json.Marshal(env.Data)
	assert.NotContains(t, string(raw), `"address"`)
}

// TestHandleGetNotFound
func TestHandleGetNotFound(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("FindByID", mock.Anything, "nope").Return(nil, entity.ErrClientNotFound)

	req := httptest.NewRequest(http.MethodGet, "/clients/nope", nil)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec.Body)
	assert.Equal(t, usecase.CodeNotFound, env.Error.Code)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// TestHandleImportSuccess - o resumo volta 200 mesmo com erros de linha
func TestHandleImportSuccess(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	csvData := "companyName,contactName,email,sector,size,leadSource\n" +
		"Acme,Maria,maria@acme.com,Tecnologia,medium,Google Ads\n" +
		"Beta,João,email-invalido,Varejo,small,Indicação\n"
	body, contentType := multipartBody(t, "clientes.csv", csvData)

	req := httptest.NewRequest(http.MethodPost, "/clients/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec.Body)
	assert.True(t, env.Success)

	raw, _ := json.Marshal(env.Data)
	var result entity.ImportResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
}

// TestHandleImportTooLarge - payload acima de 5MB é recusado
func TestHandleImportTooLarge(t *testing.T) {
	repo := new(MockClientRepository)

	big := strings.Repeat("a", maxImportSize+8192)
	body, contentType := multipartBody(t, "clientes.csv", big)

	req := httptest.NewRequest(http.MethodPost, "/clients/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec.Body)
	assert.Equal(t, usecase.CodeValidation, env.Error.Code)
	repo.AssertNotCalled(t, "Create")
}

// TestHandleExportFilenameAndContentType - clientes_YYYY-MM-DD.csv
func TestHandleExportFilenameAndContentType(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("ListAll", mock.Anything, mock.Anything).Return([]entity.Client{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/clients/export?format=csv&statuses=active", nil)
	rec := httptest.NewRecorder()
	clientRouter(newClientHandler(repo)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.ContentTypeCSV, rec.Header().Get("Content-Type"))

	expected := fmt.Sprintf(`attachment; filename="clientes_%s.csv"`, time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, rec.Header().Get("Content-Disposition"))

	// filtros da query chegam na consulta do export
	repo.AssertCalled(t, "ListAll", mock.Anything, entity.ClientFilters{Statuses: []string{"active"}})
}
