// Package customer contains customer use cases.
package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// CreateCustomerInput represents the input for customer creation.
type CreateCustomerInput struct {
	Actor   entity.Actor
	Name    string
	Email   string
	Phone   string
	Address string
	SalesID *uuid.UUID // defaults to the actor for sales users
}

// CreateCustomerUseCase handles customer creation logic.
type CreateCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
	userRepo     adapter.UserRepository
}

// NewCreateCustomerUseCase creates a new CreateCustomerUseCase instance.
func NewCreateCustomerUseCase(customerRepo adapter.CustomerRepository, userRepo adapter.UserRepository) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// Execute performs the customer creation.
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, input CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidCustomerFields, "customer name is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidCustomerFields, "customer email is invalid", err)
	}

	exists, err := uc.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}
	if exists {
		return nil, domainerror.NewCatalogError(
			domainerror.ErrCodeCustomerEmailExists,
			"customer email already exists",
			domainerror.ErrCustomerEmailExists,
		)
	}

	salesID := input.SalesID
	if !input.Actor.IsAdmin() {
		own := input.Actor.UserID
		salesID = &own
	}
	if salesID != nil {
		if _, err := uc.userRepo.FindByID(ctx, *salesID); err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				return nil, domainerror.NewCatalogError(
					domainerror.ErrCodeSalespersonNotFound,
					"assigned salesperson not found",
					domainerror.ErrSalespersonNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find salesperson: %w", err)
		}
	}

	customer := entity.NewCustomer(name, email, input.Phone, input.Address, salesID)
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}
