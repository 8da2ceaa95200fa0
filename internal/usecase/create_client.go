package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

type CreateClientUseCase struct {
	Repo ClientRepository
}

func NewCreateClientUseCase(repo ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{Repo: repo}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, input ClientInput) (*entity.Client, error) {
	input.Normalize()

	if errs := ValidateClientInput(input); len(errs) > 0 {
		return nil, NewDomainError(CodeValidation, errs[0].Error())
	}

	client := input.ToEntity()

	if err := uc.Repo.Create(ctx, client); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewDomainError(CodeDuplicate, entity.ErrEmailAlreadyExists.Error())
		}
		return nil, fmt.Errorf("erro ao gravar cliente: %w", err)
	}

	log.Printf("✅ Cliente criado: %s (%s)", client.CompanyName, client.ID)
	return client, nil
}

type UpdateClientUseCase struct {
	Repo ClientRepository
}

func NewUpdateClientUseCase(repo ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{Repo: repo}
}

func (uc *UpdateClientUseCase) Execute(ctx context.Context, id string, input ClientInput) (*entity.Client, error) {
	input.Normalize()

	if errs := ValidateClientInput(input); len(errs) > 0 {
		return nil, NewDomainError(CodeValidation, errs[0].Error())
	}

	current, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			return nil, NewDomainError(CodeNotFound, entity.ErrClientNotFound.Error())
		}
		return nil, err
	}

	current.CompanyName = input.CompanyName
	current.ContactName = input.ContactName
	current.Email = input.Email
	current.Phone = input.Phone
	current.Website = input.Website
	current.Sector = input.Sector
	current.Size = input.Size
	current.LeadSource = input.LeadSource
	current.Status = input.Status
	current.Tags = input.Tags
	current.Notes = input.Notes
	current.AcquisitionCost = input.AcquisitionCost
	current.Address = input.Address
	current.AssignedTo = input.AssignedTo
	current.UpdatedAt = time.Now()
	current.NormalizeTags()

	if err := uc.Repo.Update(ctx, current); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewDomainError(CodeDuplicate, entity.ErrEmailAlreadyExists.Error())
		}
		return nil, fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	return current, nil
}
