package dashboard

import (
	"context"
	"sync"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// clientLister é a fatia do Gateway que o controller da listagem usa.
type clientLister interface {
	ListClients(ctx context.Context, params ListParams, filters entity.ClientFilters) (*ClientPage, error)
	ClientStats(ctx context.Context) (*entity.ClientStats, error)
}

// ClientListController orquestra a listagem de clientes: busca, filtros,
// paginação e as estatísticas do topo. Qualquer mutação de filtro ou
// busca volta para a página 1 e dispara uma nova consulta.
//
// Cada requisição carrega um número de sequência crescente; respostas
// que chegam fora de ordem são descartadas em vez de sobrescrever
// estado mais novo.
type ClientListController struct {
	mu sync.Mutex

	gateway  clientLister
	notifier Notifier

	filters entity.ClientFilters
	search  string
	limit   int

	page       int
	totalPages int
	total      int
	rows       []entity.Client
	stats      *entity.ClientStats
	loading    bool

	seq uint64
}

func NewClientListController(gateway clientLister, notifier Notifier) *ClientListController {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ClientListController{
		gateway:    gateway,
		notifier:   notifier,
		limit:      10,
		page:       1,
		totalPages: 1,
	}
}

// Load carrega as estatísticas e a primeira página.
func (c *ClientListController) Load(ctx context.Context) error {
	if stats, err := c.gateway.ClientStats(ctx); err == nil {
		c.mu.Lock()
		c.stats = stats
		c.mu.Unlock()
	}
	return c.fetch(ctx, 1)
}

// ApplyFilters substitui o conjunto de filtros, volta para a página 1
// e refaz a consulta.
func (c *ClientListController) ApplyFilters(ctx context.Context, filters entity.ClientFilters) error {
	c.mu.Lock()
	c.filters = filters
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// ClearFilters esvazia os filtros, volta para a página 1 e refaz a
// consulta sem nenhum predicado.
func (c *ClientListController) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filters = entity.ClientFilters{}
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// SetSearch troca o termo de busca e refaz a consulta da página 1.
func (c *ClientListController) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
	return c.fetch(ctx, 1)
}

// FetchPage navega para a página n. Fora de [1, totalPages] é no-op.
func (c *ClientListController) FetchPage(ctx context.Context, n int) error {
	c.mu.Lock()
	outside := n < 1 || n > c.totalPages
	c.mu.Unlock()
	if outside {
		return nil
	}
	return c.fetch(ctx, n)
}

// Refresh reconsulta a página atual (após criar/editar/excluir).
func (c *ClientListController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	return c.fetch(ctx, page)
}

func (c *ClientListController) fetch(ctx context.Context, page int) error {
	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	c.loading = true
	params := ListParams{Page: page, Limit: c.limit, Search: c.search}
	filters := c.filters
	c.mu.Unlock()

	result, err := c.gateway.ListClients(ctx, params, filters)

	c.mu.Lock()
	defer c.mu.Unlock()

	if mySeq != c.seq {
		// resposta atrasada: uma consulta mais nova já saiu
		return nil
	}
	c.loading = false

	if err != nil {
		// a falha não derruba as linhas nem a página atual
		return err
	}

	c.rows = result.Clients
	c.page = result.Pagination.Page
	c.totalPages = result.Pagination.TotalPages
	c.total = result.Pagination.Total
	return nil
}

// --- accessors (estado confinado, leitura sob o lock) ---

func (c *ClientListController) Rows() []entity.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

func (c *ClientListController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *ClientListController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *ClientListController) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *ClientListController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *ClientListController) Filters() entity.ClientFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *ClientListController) ActiveFilterCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.ActiveCount()
}

func (c *ClientListController) Stats() *entity.ClientStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *ClientListController) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit > 0 {
		c.limit = limit
	}
}
