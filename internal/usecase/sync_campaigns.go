package usecase

import (
	"context"
	"fmt"
	"log"
	"time"
)

type SyncCampaignsUseCase struct {
	Repo     CampaignRepository
	Provider AdsProvider
}

func NewSyncCampaignsUseCase(repo CampaignRepository, provider AdsProvider) *SyncCampaignsUseCase {
	return &SyncCampaignsUseCase{Repo: repo, Provider: provider}
}

type SyncCampaignsOutput struct {
	SyncedCount int `json:"syncedCount"`
}

// Execute busca as campanhas no agregador de anúncios e faz upsert de
// todas. Uma campanha que falhar não derruba o lote: o sync é best-effort
// e devolve quantas entraram.
func (uc *SyncCampaignsUseCase) Execute(ctx context.Context) (*SyncCampaignsOutput, error) {
	log.Println("🔄 Sincronizando campanhas com as plataformas de anúncio...")

	campaigns, err := uc.Provider.FetchCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao consultar plataformas de anúncio: %w", err)
	}

	synced := 0
	now := time.Now()
	for i := range campaigns {
		campaigns[i].LastSyncAt = now
		if err := uc.Repo.Upsert(ctx, &campaigns[i]); err != nil {
			log.Printf("⚠️ Sync: falha ao gravar campanha %s: %v", campaigns[i].ExternalID, err)
			continue
		}
		synced++
	}

	log.Printf("🚀 Sync concluído: %d campanhas atualizadas", synced)
	return &SyncCampaignsOutput{SyncedCount: synced}, nil
}
