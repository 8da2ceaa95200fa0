package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/yuxdigital/yux-crm/internal/entity"
	"github.com/yuxdigital/yux-crm/internal/infra/queue"
)

type LeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Source  string `json:"source"`
	Stage   string `json:"stage,omitempty"`

	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	AssignedTo     string   `json:"assignedTo,omitempty"`
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func ValidateLeadInput(input LeadInput) []FieldError {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&input.Email, validation.Required, is.Email),
		validation.Field(&input.Source, validation.Required),
	)

	var out []FieldError
	if err != nil {
		if verrs, ok := err.(validation.Errors); ok {
			for _, field := range []string{"Name", "Email", "Source"} {
				if ferr, found := verrs[field]; found {
					out = append(out, FieldError{Field: lowerFirst(field), Message: ferr.Error()})
				}
			}
		} else {
			out = append(out, FieldError{Field: "input", Message: err.Error()})
		}
	}

	if input.Stage != "" && !entity.ValidLeadStage(input.Stage) {
		out = append(out, FieldError{Field: "stage", Message: "must be a valid pipeline stage"})
	}

	return out
}

type CreateLeadUseCase struct {
	Repo     LeadRepository
	UserRepo UserRepository
	Queue    NotificationProducer
}

func NewCreateLeadUseCase(repo LeadRepository, userRepo UserRepository, producer NotificationProducer) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, UserRepo: userRepo, Queue: producer}
}

// Execute grava o lead e, quando há responsável atribuído, publica a
// notificação na fila. Falha na fila não desfaz o lead já gravado.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input LeadInput) (*entity.Lead, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, NewDomainError(CodeValidation, errs[0].Error())
	}

	stage := input.Stage
	if stage == "" {
		stage = entity.LeadStageNew
	}

	lead := &entity.Lead{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Company:        input.Company,
		Source:         input.Source,
		Stage:          stage,
		EstimatedValue: input.EstimatedValue,
		Notes:          input.Notes,
		AssignedTo:     input.AssignedTo,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("erro ao gravar lead: %w", err)
	}

	if uc.Queue != nil && lead.AssignedTo != "" {
		uc.notifyAssignee(ctx, lead)
	}

	return lead, nil
}

func (uc *CreateLeadUseCase) notifyAssignee(ctx context.Context, lead *entity.Lead) {
	user, err := uc.UserRepo.FindByID(ctx, lead.AssignedTo)
	if err != nil {
		log.Printf("⚠️ Lead %s: responsável %s não encontrado, notificação pulada", lead.ID, lead.AssignedTo)
		return
	}

	payload := queue.NotificationPayload{
		Kind:      queue.NotificationLeadAssigned,
		To:        user.Email,
		ToName:    user.Name,
		LeadID:    lead.ID,
		LeadName:  lead.Name,
		LeadEmail: lead.Email,
		Source:    lead.Source,
	}

	if err := uc.Queue.PublishNotification(ctx, payload); err != nil {
		// o lead já está no banco; a notificação fica por conta da DLQ
		log.Printf("⚠️ CRITICAL: lead gravado, mas falha ao publicar notificação: %v", err)
	}
}
