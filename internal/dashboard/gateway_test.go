package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

// RecordingNotifier guarda os avisos para inspeção nos testes.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *RecordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, message)
}

func (n *RecordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
}

func (n *RecordingNotifier) ErrorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Errors)
}

func newTestSession(t *testing.T, token string) *SessionStore {
	t.Helper()
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if token != "" {
		err := store.Set(Session{User: entity.User{ID: "u1", Name: "Maria"}, Token: token})
		assert.NoError(t, err)
	}
	return store
}

func okEnvelope(data interface{}) []byte {
	body, _ := json.Marshal(map[string]interface{}{"success": true, "data": data})
	return body
}

func errEnvelope(code, message string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
	return body
}

// TestListClientsQueryParams - page=2&limit=10&sizes=medium&sizes=large
// sai na query; dimensões não usadas são omitidas
func TestListClientsQueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(okEnvelope(ClientPage{
			Clients:    []entity.Client{},
			Pagination: entity.NewPagination(2, 10, 35),
		}))
	}))
	defer server.Close()

	gw := NewGateway(server.URL, newTestSession(t, "tok"), nil)
	_, err := gw.ListClients(context.Background(),
		ListParams{Page: 2, Limit: 10},
		entity.ClientFilters{Sizes: []string{"medium", "large"}},
	)

	assert.NoError(t, err)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, []string{"medium", "large"}, gotQuery["sizes"])
	assert.NotContains(t, gotQuery, "sector")
	assert.NotContains(t, gotQuery, "minValue")
	assert.NotContains(t, gotQuery, "maxValue")
	assert.NotContains(t, gotQuery, "startDate")
	assert.NotContains(t, gotQuery, "endDate")
	assert.NotContains(t, gotQuery, "search")
}

// TestBearerTokenAttached
func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(okEnvelope(entity.User{ID: "u1"}))
	}))
	defer server.Close()

	gw := NewGateway(server.URL, newTestSession(t, "meu-token"), nil)
	_, err := gw.Me(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer meu-token", gotAuth)
}

// TestSessionExpiredRedirectsOnce - várias requisições em voo recebendo
// 401 disparam exatamente UM redirect e limpam a sessão
func TestSessionExpiredRedirectsOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errEnvelope("SESSION_EXPIRED", "sessão expirada"))
	}))
	defer server.Close()

	session := newTestSession(t, "tok-velho")
	gw := NewGateway(server.URL, session, &RecordingNotifier{})

	var redirects int32
	gw.OnSessionExpired = func() {
		atomic.AddInt32(&redirects, 1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.ListClients(context.Background(), ListParams{}, entity.ClientFilters{})
			assert.ErrorIs(t, err, ErrSessionExpired)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&redirects))
	assert.False(t, session.IsAuthenticated())
}

// TestSilentCodesNotNotified - VALIDATION_ERROR e AUTH_001 ficam para a
// tela renderizar inline, sem notificação global
func TestSilentCodesNotNotified(t *testing.T) {
	for _, code := range []string{usecase.CodeValidation, usecase.CodeAuthDenied} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write(errEnvelope(code, "detalhe para o formulário"))
		}))

		notifier := &RecordingNotifier{}
		gw := NewGateway(server.URL, newTestSession(t, "tok"), notifier)

		_, err := gw.CreateClient(context.Background(), usecase.ClientInput{})

		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, code, apiErr.Code)
		assert.Equal(t, 0, notifier.ErrorCount())

		server.Close()
	}
}

// TestServerErrorNotified - códigos fora da lista silenciosa viram
// notificação com a mensagem do servidor
func TestServerErrorNotified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(errEnvelope(usecase.CodeInternal, "Erro interno do servidor"))
	}))
	defer server.Close()

	notifier := &RecordingNotifier{}
	gw := NewGateway(server.URL, newTestSession(t, "tok"), notifier)

	_, err := gw.ClientStats(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, notifier.ErrorCount())
	assert.Equal(t, "Erro interno do servidor", notifier.Errors[0])
}

// TestLoginStoresSessionAndResetsGuard
func TestLoginStoresSessionAndResetsGuard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write(okEnvelope(map[string]interface{}{
				"user":  entity.User{ID: "u1", Name: "Maria", Role: "admin"},
				"token": "tok-novo",
			}))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errEnvelope("SESSION_EXPIRED", "sessão expirada"))
	}))
	defer server.Close()

	session := newTestSession(t, "")
	gw := NewGateway(server.URL, session, &RecordingNotifier{})

	var redirects int32
	gw.OnSessionExpired = func() { atomic.AddInt32(&redirects, 1) }

	// expira uma vez
	gw.ListClients(context.Background(), ListParams{}, entity.ClientFilters{})
	assert.Equal(t, int32(1), atomic.LoadInt32(&redirects))

	// login rearma a guarda e grava a nova sessão
	sess, err := gw.Login(context.Background(), "maria@yux.com", "senha")
	assert.NoError(t, err)
	assert.Equal(t, "tok-novo", sess.Token)
	assert.Equal(t, "tok-novo", session.Token())

	// nova expiração dispara o redirect de novo
	gw.ListClients(context.Background(), ListParams{}, entity.ClientFilters{})
	assert.Equal(t, int32(2), atomic.LoadInt32(&redirects))
}

// TestImportRejectedBeforeUploadDoesNotHitServer é responsabilidade do
// Importer; aqui garantimos que o upload aceito chega multipart.
func TestImportClientsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseMultipartForm(1 << 20)
		assert.NoError(t, err)

		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clientes.csv", header.Filename)

		w.Write(okEnvelope(entity.ImportResult{Success: true, Imported: 1, Errors: []entity.RowError{}}))
	}))
	defer server.Close()

	gw := NewGateway(server.URL, newTestSession(t, "tok"), nil)
	result, err := gw.ImportClients(context.Background(), "clientes.csv",
		strings.NewReader("email\nmaria@acme.com\n"))

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
}

// TestExportSendsFiltersNotSearch
func TestExportSendsFiltersNotSearch(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("companyName\nAcme\n"))
	}))
	defer server.Close()

	gw := NewGateway(server.URL, newTestSession(t, "tok"), nil)
	data, err := gw.ExportClients(context.Background(), "csv",
		entity.ClientFilters{Statuses: []string{"active"}})

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "csv", gotQuery.Get("format"))
	assert.Equal(t, []string{"active"}, gotQuery["statuses"])
	assert.NotContains(t, gotQuery, "search")
}
