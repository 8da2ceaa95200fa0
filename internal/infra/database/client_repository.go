package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = `
	c.id, c.company_name, c.contact_name, c.email, c.phone, c.website,
	c.sector, c.size, c.lead_source, c.status, c.tags, c.notes,
	c.acquisition_cost, c.lifetime_value, c.assigned_to,
	c.street, c.number, c.complement, c.neighborhood, c.city, c.state, c.zip_code, c.country,
	c.created_at, c.updated_at,
	COALESCE(p.projects_count, 0), COALESCE(p.total_value, 0)
`

const clientProjectsJoin = `
	LEFT JOIN (
		SELECT client_id, COUNT(*) AS projects_count, SUM(budget) AS total_value
		FROM projects
		GROUP BY client_id
	) p ON p.client_id = c.id
`

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (
			id, company_name, contact_name, email, phone, website,
			sector, size, lead_source, status, tags, notes,
			acquisition_cost, lifetime_value, assigned_to,
			street, number, complement, neighborhood, city, state, zip_code, country,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	addr := c.Address
	if addr == nil {
		addr = &entity.Address{}
	}

	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.CompanyName, c.ContactName, c.Email,
		nullString(c.Phone), nullString(c.Website),
		c.Sector, c.Size, c.LeadSource, c.Status,
		pq.Array(c.Tags), nullString(c.Notes),
		c.AcquisitionCost, c.LifetimeValue, nullString(c.AssignedTo),
		nullString(addr.Street), nullString(addr.Number), nullString(addr.Complement),
		nullString(addr.Neighborhood), nullString(addr.City), nullString(addr.State),
		nullString(addr.ZipCode), nullString(addr.Country),
		c.CreatedAt, c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET
			company_name = $2, contact_name = $3, email = $4, phone = $5, website = $6,
			sector = $7, size = $8, lead_source = $9, status = $10, tags = $11, notes = $12,
			acquisition_cost = $13, lifetime_value = $14, assigned_to = $15,
			street = $16, number = $17, complement = $18, neighborhood = $19,
			city = $20, state = $21, zip_code = $22, country = $23,
			updated_at = $24
		WHERE id = $1
	`

	addr := c.Address
	if addr == nil {
		addr = &entity.Address{}
	}

	result, err := r.DB.ExecContext(ctx, query,
		c.ID, c.CompanyName, c.ContactName, c.Email,
		nullString(c.Phone), nullString(c.Website),
		c.Sector, c.Size, c.LeadSource, c.Status,
		pq.Array(c.Tags), nullString(c.Notes),
		c.AcquisitionCost, c.LifetimeValue, nullString(c.AssignedTo),
		nullString(addr.Street), nullString(addr.Number), nullString(addr.Complement),
		nullString(addr.Neighborhood), nullString(addr.City), nullString(addr.State),
		nullString(addr.ZipCode), nullString(addr.Country),
		c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients c ` + clientProjectsJoin + ` WHERE c.id = $1`

	c, err := scanClient(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// List aplica busca livre, filtros e paginação direto no SQL.
// Devolve a página e o total sem paginação (para o envelope).
func (r *ClientRepository) List(ctx context.Context, in usecase.ListClientsInput) ([]entity.Client, int, error) {
	where, args := clientWhere(in.Search, in.Filters)

	countQuery := `SELECT COUNT(*) FROM clients c ` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (in.Page - 1) * in.Limit
	query := fmt.Sprintf(
		`SELECT %s FROM clients c %s %s ORDER BY c.created_at DESC LIMIT %d OFFSET %d`,
		clientColumns, clientProjectsJoin, where, in.Limit, offset,
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients, err := collectClients(rows)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// ListAll é a variação sem paginação usada pela exportação.
func (r *ClientRepository) ListAll(ctx context.Context, filters entity.ClientFilters) ([]entity.Client, error) {
	where, args := clientWhere("", filters)
	query := `SELECT ` + clientColumns + ` FROM clients c ` + clientProjectsJoin + where +
		` ORDER BY c.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *ClientRepository) Stats(ctx context.Context) (*entity.ClientStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COALESCE(SUM(lifetime_value), 0),
			COALESCE(AVG(lifetime_value), 0),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('month', NOW())),
			CASE WHEN COUNT(*) > 0
				THEN COUNT(*) FILTER (WHERE status = 'active')::float / COUNT(*) * 100
				ELSE 0
			END
		FROM clients
	`

	stats := &entity.ClientStats{}
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalClients,
		&stats.ActiveClients,
		&stats.TotalRevenue,
		&stats.AverageValue,
		&stats.NewClientsThisMonth,
		&stats.ConversionRate,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// clientWhere monta a cláusula WHERE a partir da busca e dos filtros.
// Filtro vazio não entra na cláusula.
func clientWhere(search string, f entity.ClientFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search != "" {
		p := arg("%" + search + "%")
		conds = append(conds, fmt.Sprintf(
			"(c.company_name ILIKE %s OR c.contact_name ILIKE %s OR c.email ILIKE %s)", p, p, p))
	}
	if f.Sector != "" {
		conds = append(conds, "c.sector = "+arg(f.Sector))
	}
	if len(f.Sizes) > 0 {
		conds = append(conds, "c.size = ANY("+arg(pq.Array(f.Sizes))+")")
	}
	if len(f.LeadSources) > 0 {
		conds = append(conds, "c.lead_source = ANY("+arg(pq.Array(f.LeadSources))+")")
	}
	if len(f.Statuses) > 0 {
		conds = append(conds, "c.status = ANY("+arg(pq.Array(f.Statuses))+")")
	}
	if f.MinValue != nil {
		conds = append(conds, "c.lifetime_value >= "+arg(*f.MinValue))
	}
	if f.MaxValue != nil {
		conds = append(conds, "c.lifetime_value <= "+arg(*f.MaxValue))
	}
	if f.StartDate != "" {
		conds = append(conds, "c.created_at >= "+arg(f.StartDate))
	}
	if f.EndDate != "" {
		conds = append(conds, "c.created_at < "+arg(f.EndDate)+"::date + 1")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var c entity.Client
	var phone, website, notes, assignedTo sql.NullString
	var street, number, complement, neighborhood, city, state, zipCode, country sql.NullString
	var acquisitionCost, lifetimeValue sql.NullFloat64

	err := row.Scan(
		&c.ID, &c.CompanyName, &c.ContactName, &c.Email, &phone, &website,
		&c.Sector, &c.Size, &c.LeadSource, &c.Status, pq.Array(&c.Tags), &notes,
		&acquisitionCost, &lifetimeValue, &assignedTo,
		&street, &number, &complement, &neighborhood, &city, &state, &zipCode, &country,
		&c.CreatedAt, &c.UpdatedAt,
		&c.ProjectsCount, &c.TotalValue,
	)
	if err != nil {
		return nil, err
	}

	c.Phone = sqlString(phone)
	c.Website = sqlString(website)
	c.Notes = sqlString(notes)
	c.AssignedTo = sqlString(assignedTo)
	c.AcquisitionCost = sqlFloat(acquisitionCost)
	c.LifetimeValue = sqlFloat(lifetimeValue)

	addr := entity.Address{
		Street:       sqlString(street),
		Number:       sqlString(number),
		Complement:   sqlString(complement),
		Neighborhood: sqlString(neighborhood),
		City:         sqlString(city),
		State:        sqlString(state),
		ZipCode:      sqlString(zipCode),
		Country:      sqlString(country),
	}
	if !addr.IsBlank() {
		c.Address = &addr
	}

	return &c, nil
}

func collectClients(rows *sql.Rows) ([]entity.Client, error) {
	clients := []entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
