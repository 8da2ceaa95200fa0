package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// Client consulta o agregador de campanhas (Google Ads + Meta Ads).
type Client struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) FetchCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	if c.apiToken == "" {
		log.Println("⚠️ Ads: API_TOKEN não configurado")
		return nil, fmt.Errorf("integração de anúncios não configurada")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/campaigns", nil)
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro ao buscar campanhas: %d - %s", resp.StatusCode, string(body))
	}

	var result listCampaignsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	campaigns := make([]entity.Campaign, 0, len(result.Campaigns))
	for _, dto := range result.Campaigns {
		campaigns = append(campaigns, mapCampaign(dto))
	}

	log.Printf("📡 Ads: %d campanhas recebidas do agregador", len(campaigns))
	return campaigns, nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Accept", "application/json")
}

func mapCampaign(dto CampaignDTO) entity.Campaign {
	now := time.Now()
	campaign := entity.Campaign{
		ID:          uuid.New().String(),
		ExternalID:  dto.ID,
		Name:        dto.Name,
		Platform:    dto.Platform,
		Status:      dto.Status,
		Budget:      dto.Budget,
		Spent:       dto.Spent,
		Impressions: dto.Impressions,
		Clicks:      dto.Clicks,
		Conversions: dto.Conversions,
		CPC:         dto.CPC,
		CTR:         dto.CTR,
		ROAS:        dto.ROAS,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if t, err := time.Parse("2006-01-02", dto.StartDate); err == nil {
		campaign.StartDate = t
	}
	if dto.EndDate != "" {
		if t, err := time.Parse("2006-01-02", dto.EndDate); err == nil {
			campaign.EndDate = &t
		}
	}

	return campaign
}
