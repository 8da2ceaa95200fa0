package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `
	id, external_id, name, platform, status, budget, spent,
	impressions, clicks, conversions, cpc, ctr, roas,
	start_date, end_date, last_sync_at, created_at, updated_at
`

// Upsert insere ou atualiza pela chave externa (id da plataforma).
// É o caminho usado pelo sync: a mesma campanha chega a cada rodada.
func (r *CampaignRepository) Upsert(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (external_id, platform)
		DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			budget = EXCLUDED.budget,
			spent = EXCLUDED.spent,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions,
			cpc = EXCLUDED.cpc,
			ctr = EXCLUDED.ctr,
			roas = EXCLUDED.roas,
			end_date = EXCLUDED.end_date,
			last_sync_at = EXCLUDED.last_sync_at,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.ExternalID, c.Name, c.Platform, c.Status, c.Budget, c.Spent,
		c.Impressions, c.Clicks, c.Conversions, c.CPC, c.CTR, c.ROAS,
		c.StartDate, c.EndDate, c.LastSyncAt, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return entity.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCampaignNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) List(ctx context.Context, page, limit int, platform, status string) ([]entity.Campaign, int, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if platform != "" {
		conds = append(conds, "platform = "+arg(platform))
	}
	if status != "" {
		conds = append(conds, "status = "+arg(status))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM campaigns %s ORDER BY last_sync_at DESC LIMIT %d OFFSET %d`,
		campaignColumns, where, limit, (page-1)*limit,
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	campaigns := []entity.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, total, rows.Err()
}

func scanCampaign(row rowScanner) (*entity.Campaign, error) {
	var c entity.Campaign
	var externalID sql.NullString
	var endDate sql.NullTime

	err := row.Scan(
		&c.ID, &externalID, &c.Name, &c.Platform, &c.Status, &c.Budget, &c.Spent,
		&c.Impressions, &c.Clicks, &c.Conversions, &c.CPC, &c.CTR, &c.ROAS,
		&c.StartDate, &endDate, &c.LastSyncAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ExternalID = sqlString(externalID)
	if endDate.Valid {
		t := endDate.Time
		c.EndDate = &t
	}
	return &c, nil
}
