package entity

import "time"

// Status possíveis de um projeto
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusReview    = "review"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

type Project struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`

	ServiceLevel int     `json:"serviceLevel"` // 1, 2 ou 3
	Budget       float64 `json:"budget"`
	Progress     int     `json:"progress"` // 0-100

	StartDate       time.Time  `json:"startDate"`
	ExpectedEndDate time.Time  `json:"expectedEndDate"`
	ActualEndDate   *time.Time `json:"actualEndDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusReview,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}
