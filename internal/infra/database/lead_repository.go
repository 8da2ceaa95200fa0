package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

var ErrLeadNotFound = errors.New("lead não encontrado")

const leadColumns = `
	id, name, email, phone, company, source, stage,
	estimated_value, notes, assigned_to, created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.Name, l.Email, nullString(l.Phone), nullString(l.Company),
		l.Source, l.Stage, l.EstimatedValue, nullString(l.Notes),
		nullString(l.AssignedTo), l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, company = $5, source = $6,
			stage = $7, estimated_value = $8, notes = $9, assigned_to = $10,
			updated_at = $11
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		l.ID, l.Name, l.Email, nullString(l.Phone), nullString(l.Company),
		l.Source, l.Stage, l.EstimatedValue, nullString(l.Notes),
		nullString(l.AssignedTo), l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) UpdateStage(ctx context.Context, id, stage string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET stage = $2, updated_at = NOW() WHERE id = $1`, id, stage)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	l, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *LeadRepository) List(ctx context.Context, page, limit int, search, stage, source string) ([]entity.Lead, int, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search != "" {
		p := arg("%" + search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s OR company ILIKE %s)", p, p, p))
	}
	if stage != "" {
		conds = append(conds, "stage = "+arg(stage))
	}
	if source != "" {
		conds = append(conds, "source = "+arg(source))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		leadColumns, where, limit, (page-1)*limit,
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *l)
	}
	return leads, total, rows.Err()
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var phone, company, notes, assignedTo sql.NullString
	var estimatedValue sql.NullFloat64

	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &phone, &company, &l.Source, &l.Stage,
		&estimatedValue, &notes, &assignedTo, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Phone = sqlString(phone)
	l.Company = sqlString(company)
	l.Notes = sqlString(notes)
	l.AssignedTo = sqlString(assignedTo)
	l.EstimatedValue = sqlFloat(estimatedValue)
	return &l, nil
}
