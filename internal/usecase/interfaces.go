package usecase

import (
	"context"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/queue"
)

type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, in ListClientsInput) ([]entity.Client, int, error)
	ListAll(ctx context.Context, filters entity.ClientFilters) ([]entity.Client, error)
	Stats(ctx context.Context) (*entity.ClientStats, error)
}

type CampaignRepository interface {
	Upsert(ctx context.Context, c *entity.Campaign) error
	UpdateStatus(ctx context.Context, id, status string) error
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	List(ctx context.Context, page, limit int, platform, status string) ([]entity.Campaign, int, error)
}

type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	Update(ctx context.Context, l *entity.Lead) error
	UpdateStage(ctx context.Context, id, stage string) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	List(ctx context.Context, page, limit int, search, stage, source string) ([]entity.Lead, int, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AdsProvider é o agregador de campanhas (Google/Meta) consultado pelo sync.
type AdsProvider interface {
	FetchCampaigns(ctx context.Context) ([]entity.Campaign, error)
}

type NotificationProducer interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}
