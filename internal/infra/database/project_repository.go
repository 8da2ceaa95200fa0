package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

var ErrProjectNotFound = errors.New("projeto não encontrado")

const projectColumns = `
	id, client_id, name, description, status, service_level, budget, progress,
	start_date, expected_end_date, actual_end_date, created_at, updated_at
`

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.ClientID, p.Name, nullString(p.Description), p.Status,
		p.ServiceLevel, p.Budget, p.Progress,
		p.StartDate, p.ExpectedEndDate, p.ActualEndDate,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET
			name = $2, description = $3, status = $4, service_level = $5,
			budget = $6, progress = $7, start_date = $8, expected_end_date = $9,
			actual_end_date = $10, updated_at = $11
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, nullString(p.Description), p.Status, p.ServiceLevel,
		p.Budget, p.Progress, p.StartDate, p.ExpectedEndDate, p.ActualEndDate,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, page, limit int, search, status, clientID string) ([]entity.Project, int, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search != "" {
		p := arg("%" + search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if status != "" {
		conds = append(conds, "status = "+arg(status))
	}
	if clientID != "" {
		conds = append(conds, "client_id = "+arg(clientID))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM projects %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		projectColumns, where, limit, (page-1)*limit,
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := []entity.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var p entity.Project
	var description sql.NullString
	var actualEnd sql.NullTime

	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &description, &p.Status,
		&p.ServiceLevel, &p.Budget, &p.Progress,
		&p.StartDate, &p.ExpectedEndDate, &actualEnd,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = sqlString(description)
	if actualEnd.Valid {
		t := actualEnd.Time
		p.ActualEndDate = &t
	}
	return &p, nil
}
