package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

// APIError é o erro vindo do envelope do backend.
type APIError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Códigos que o gateway NÃO anuncia via Notifier: a tela que chamou
// renderiza o erro inline (formulários, login).
var silentCodes = map[string]bool{
	usecase.CodeValidation: true,
	usecase.CodeAuthDenied: true,
}

// ErrSessionExpired sinaliza que o backend recusou o token. A sessão
// já foi limpa quando esse erro é devolvido.
var ErrSessionExpired = fmt.Errorf("sessão expirada")

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// Gateway é a fachada de acesso ao backend: um método por operação,
// envelope uniforme, token bearer anexado em toda chamada.
type Gateway struct {
	BaseURL  string
	HTTP     *http.Client
	Session  *SessionStore
	Notifier Notifier

	// OnSessionExpired é o hook de redirecionamento para o login.
	// Disparado no máximo uma vez por expiração, mesmo com várias
	// requisições em voo.
	OnSessionExpired func()

	expired atomic.Bool
}

func NewGateway(baseURL string, session *SessionStore, notifier Notifier) *Gateway {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Gateway{
		BaseURL:  baseURL,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Session:  session,
		Notifier: notifier,
	}
}

// ListParams são as chaves reconhecidas por toda listagem. Valor zero
// significa "não enviar o parâmetro".
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
}

func (g *Gateway) request(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	endpoint := g.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := g.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.HTTP.Do(req)
	if err != nil {
		g.Notifier.Error("Erro de conexão com o servidor")
		return nil, fmt.Errorf("erro de transporte: %w", err)
	}
	return resp, nil
}

// do executa a chamada, trata expiração de sessão e decodifica o
// envelope em out (quando out != nil).
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, payload interface{}, out interface{}) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := g.request(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.handleSessionExpired()
		return ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		g.Notifier.Error("Resposta inválida do servidor")
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: usecase.CodeInternal, Message: "erro desconhecido"}
		}
		if !silentCodes[apiErr.Code] {
			g.Notifier.Error(apiErr.Message)
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("erro ao decodificar dados: %w", err)
		}
	}
	return nil
}

func (g *Gateway) handleSessionExpired() {
	g.Session.Clear()
	if g.expired.CompareAndSwap(false, true) {
		g.Notifier.Error("Sessão expirada. Faça login novamente.")
		if g.OnSessionExpired != nil {
			g.OnSessionExpired()
		}
	}
}

// --- Auth ---

func (g *Gateway) Login(ctx context.Context, email, password string) (*Session, error) {
	var data struct {
		User  entity.User `json:"user"`
		Token string      `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := g.do(ctx, http.MethodPost, "/auth/login", nil, payload, &data); err != nil {
		return nil, err
	}

	session := Session{User: data.User, Token: data.Token}
	if err := g.Session.Set(session); err != nil {
		return nil, err
	}
	g.expired.Store(false)
	return &session, nil
}

// Logout encerra a sessão no servidor (melhor esforço) e limpa a local.
func (g *Gateway) Logout(ctx context.Context) error {
	g.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return g.Session.Clear()
}

func (g *Gateway) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := g.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Clients ---

type ClientPage struct {
	Clients    []entity.Client   `json:"clients"`
	Pagination entity.Pagination `json:"pagination"`
}

func (g *Gateway) ListClients(ctx context.Context, params ListParams, filters entity.ClientFilters) (*ClientPage, error) {
	query := filters.Values()
	params.apply(query)

	var page ClientPage
	if err := g.do(ctx, http.MethodGet, "/clients", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *Gateway) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	if err := g.do(ctx, http.MethodGet, "/clients/"+id, nil, nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (g *Gateway) CreateClient(ctx context.Context, input usecase.ClientInput) (*entity.Client, error) {
	var client entity.Client
	if err := g.do(ctx, http.MethodPost, "/clients", nil, input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (g *Gateway) UpdateClient(ctx context.Context, id string, input usecase.ClientInput) (*entity.Client, error) {
	var client entity.Client
	if err := g.do(ctx, http.MethodPut, "/clients/"+id, nil, input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (g *Gateway) DeleteClient(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/clients/"+id, nil, nil, nil)
}

func (g *Gateway) ClientStats(ctx context.Context) (*entity.ClientStats, error) {
	var stats entity.ClientStats
	if err := g.do(ctx, http.MethodGet, "/clients/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ImportClients envia o arquivo como multipart para o backend.
// A validação local de tipo e tamanho fica no Importer.
func (g *Gateway) ImportClients(ctx context.Context, filename string, file io.Reader) (*entity.ImportResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := g.request(ctx, http.MethodPost, "/clients/import", nil, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.handleSessionExpired()
		return nil, ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	if !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: usecase.CodeInternal, Message: "erro desconhecido"}
		}
		if !silentCodes[apiErr.Code] {
			g.Notifier.Error(apiErr.Message)
		}
		return nil, apiErr
	}

	var result entity.ImportResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resultado: %w", err)
	}
	return &result, nil
}

// ExportClients baixa o blob do export. Filtros entram na query; o
// termo de busca NÃO participa do export.
func (g *Gateway) ExportClients(ctx context.Context, format string, filters entity.ClientFilters) ([]byte, error) {
	query := filters.Values()
	query.Set("format", format)
	return g.download(ctx, "/clients/export", query)
}

// ImportTemplate baixa a planilha modelo de importação.
func (g *Gateway) ImportTemplate(ctx context.Context) ([]byte, error) {
	return g.download(ctx, "/clients/import/template", nil)
}

func (g *Gateway) download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := g.request(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.handleSessionExpired()
		return nil, ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error != nil {
			if !silentCodes[env.Error.Code] {
				g.Notifier.Error(env.Error.Message)
			}
			return nil, env.Error
		}
		return nil, fmt.Errorf("export falhou com status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// --- Projects ---

type ProjectPage struct {
	Projects   []entity.Project  `json:"projects"`
	Pagination entity.Pagination `json:"pagination"`
}

// ProjectInput espelha o corpo aceito pelo backend em POST/PUT /projects.
type ProjectInput struct {
	ClientID        string  `json:"clientId"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Status          string  `json:"status,omitempty"`
	ServiceLevel    int     `json:"serviceLevel,omitempty"`
	Budget          float64 `json:"budget"`
	Progress        int     `json:"progress,omitempty"`
	StartDate       string  `json:"startDate"`
	ExpectedEndDate string  `json:"expectedEndDate"`
	ActualEndDate   *string `json:"actualEndDate,omitempty"`
}

func (g *Gateway) ListProjects(ctx context.Context, params ListParams, status, clientID string) (*ProjectPage, error) {
	query := url.Values{}
	params.apply(query)
	if status != "" {
		query.Set("status", status)
	}
	if clientID != "" {
		query.Set("clientId", clientID)
	}

	var page ProjectPage
	if err := g.do(ctx, http.MethodGet, "/projects", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *Gateway) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	if err := g.do(ctx, http.MethodGet, "/projects/"+id, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *Gateway) CreateProject(ctx context.Context, input ProjectInput) (*entity.Project, error) {
	var project entity.Project
	if err := g.do(ctx, http.MethodPost, "/projects", nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *Gateway) UpdateProject(ctx context.Context, id string, input ProjectInput) (*entity.Project, error) {
	var project entity.Project
	if err := g.do(ctx, http.MethodPut, "/projects/"+id, nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *Gateway) DeleteProject(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, nil)
}

// --- Campaigns ---

type CampaignPage struct {
	Campaigns  []entity.Campaign `json:"campaigns"`
	Pagination entity.Pagination `json:"pagination"`
}

func (g *Gateway) ListCampaigns(ctx context.Context, params ListParams, platform, status string) (*CampaignPage, error) {
	query := url.Values{}
	params.apply(query)
	if platform != "" {
		query.Set("platform", platform)
	}
	if status != "" {
		query.Set("status", status)
	}

	var page CampaignPage
	if err := g.do(ctx, http.MethodGet, "/campaigns", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *Gateway) GetCampaign(ctx context.Context, id string) (*entity.Campaign, error) {
	var campaign entity.Campaign
	if err := g.do(ctx, http.MethodGet, "/campaigns/"+id, nil, nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// SyncCampaigns pede ao backend que sincronize com a plataforma de ads
// e devolve quantas campanhas foram atualizadas.
func (g *Gateway) SyncCampaigns(ctx context.Context) (int, error) {
	var data struct {
		SyncedCount int `json:"syncedCount"`
	}
	if err := g.do(ctx, http.MethodPost, "/campaigns/sync", nil, nil, &data); err != nil {
		return 0, err
	}
	return data.SyncedCount, nil
}

func (g *Gateway) UpdateCampaignStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}
	return g.do(ctx, http.MethodPut, "/campaigns/"+id+"/status", nil, payload, nil)
}

// --- Leads ---

type LeadPage struct {
	Leads      []entity.Lead     `json:"leads"`
	Pagination entity.Pagination `json:"pagination"`
}

func (g *Gateway) ListLeads(ctx context.Context, params ListParams, stage, source string) (*LeadPage, error) {
	query := url.Values{}
	params.apply(query)
	if stage != "" {
		query.Set("stage", stage)
	}
	if source != "" {
		query.Set("source", source)
	}

	var page LeadPage
	if err := g.do(ctx, http.MethodGet, "/leads", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *Gateway) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	var lead entity.Lead
	if err := g.do(ctx, http.MethodGet, "/leads/"+id, nil, nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *Gateway) CreateLead(ctx context.Context, input usecase.LeadInput) (*entity.Lead, error) {
	var lead entity.Lead
	if err := g.do(ctx, http.MethodPost, "/leads", nil, input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *Gateway) UpdateLead(ctx context.Context, id string, input usecase.LeadInput) (*entity.Lead, error) {
	var lead entity.Lead
	if err := g.do(ctx, http.MethodPut, "/leads/"+id, nil, input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *Gateway) UpdateLeadStage(ctx context.Context, id, stage string) error {
	payload := map[string]string{"stage": stage}
	return g.do(ctx, http.MethodPut, "/leads/"+id+"/stage", nil, payload, nil)
}

func (g *Gateway) DeleteLead(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/leads/"+id, nil, nil, nil)
}

// --- Users ---

type UserPage struct {
	Users      []entity.User     `json:"users"`
	Pagination entity.Pagination `json:"pagination"`
}

// UserInput espelha o corpo aceito por POST/PUT /users. Password só é
// considerada na criação.
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Password    string `json:"password,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

func (g *Gateway) ListUsers(ctx context.Context, params ListParams, role string) (*UserPage, error) {
	query := url.Values{}
	params.apply(query)
	if role != "" {
		query.Set("role", role)
	}

	var page UserPage
	if err := g.do(ctx, http.MethodGet, "/users", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *Gateway) GetUser(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := g.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) CreateUser(ctx context.Context, input UserInput) (*entity.User, error) {
	var user entity.User
	if err := g.do(ctx, http.MethodPost, "/users", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) UpdateUser(ctx context.Context, id string, input UserInput) (*entity.User, error) {
	var user entity.User
	if err := g.do(ctx, http.MethodPut, "/users/"+id, nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}
