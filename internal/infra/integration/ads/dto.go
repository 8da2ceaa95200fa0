package ads

// CampaignDTO é o formato devolvido pelo agregador de anúncios.
type CampaignDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Platform    string  `json:"platform"` // GOOGLE | META
	Status      string  `json:"status"`   // ACTIVE | PAUSED | ENDED
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CPC         float64 `json:"cpc"`
	CTR         float64 `json:"ctr"`
	ROAS        float64 `json:"roas"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date,omitempty"`
}

type listCampaignsResponse struct {
	Campaigns []CampaignDTO `json:"campaigns"`
}
