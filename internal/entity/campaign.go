package entity

import (
	"errors"
	"time"
)

// Plataformas de anúncio suportadas
const (
	PlatformGoogle = "GOOGLE"
	PlatformMeta   = "META"
)

// Status possíveis de uma campanha
const (
	CampaignStatusActive = "ACTIVE"
	CampaignStatusPaused = "PAUSED"
	CampaignStatusEnded  = "ENDED"
)

type Campaign struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId,omitempty"` // id na plataforma de origem
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	Status     string `json:"status"`

	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`

	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CPC         float64 `json:"cpc"`
	CTR         float64 `json:"ctr"`
	ROAS        float64 `json:"roas"`

	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	LastSyncAt time.Time  `json:"lastSyncAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrCampaignNotFound = errors.New("campanha não encontrada")

func ValidPlatform(platform string) bool {
	return platform == PlatformGoogle || platform == PlatformMeta
}

func ValidCampaignStatus(status string) bool {
	switch status {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusEnded:
		return true
	}
	return false
}
