package entity

import "time"

// Estágios do pipeline de vendas, na ordem do funil
const (
	LeadStageNew         = "new"
	LeadStageContacted   = "contacted"
	LeadStageQualified   = "qualified"
	LeadStageProposal    = "proposal"
	LeadStageNegotiation = "negotiation"
	LeadStageWon         = "won"
	LeadStageLost        = "lost"
)

type Lead struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	Company string `json:"company,omitempty"`
	Source  string `json:"source"` // mesma lista de sugestão de LeadSources
	Stage   string `json:"stage"`

	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	AssignedTo     string   `json:"assignedTo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidLeadStage(stage string) bool {
	switch stage {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageProposal,
		LeadStageNegotiation, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}
