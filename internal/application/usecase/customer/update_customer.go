package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// UpdateCustomerInput represents a customer update. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	Actor      entity.Actor
	CustomerID uuid.UUID
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	SalesID    *uuid.UUID // admins only
}

// UpdateCustomerUseCase edits a customer. Sales users may only edit customers
// assigned to them and cannot reassign them.
type UpdateCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
	userRepo     adapter.UserRepository
	reportCache  adapter.ReportCache
}

// NewUpdateCustomerUseCase creates a new UpdateCustomerUseCase instance. reportCache may be nil.
func NewUpdateCustomerUseCase(
	customerRepo adapter.CustomerRepository,
	userRepo adapter.UserRepository,
	reportCache adapter.ReportCache,
) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		reportCache:  reportCache,
	}
}

// Execute applies the update.
func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, input UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := uc.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !input.Actor.IsAdmin() {
		if customer.SalesID == nil || *customer.SalesID != input.Actor.UserID {
			return nil, forbidden()
		}
		if input.SalesID != nil && *input.SalesID != input.Actor.UserID {
			return nil, forbidden()
		}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidCustomerFields, "customer name is required", nil)
		}
		customer.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidCustomerFields, "customer email is invalid", err)
		}
		if email != customer.Email {
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
			customer.Email = email
		}
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.SalesID != nil {
		if _, err := uc.userRepo.FindByID(ctx, *input.SalesID); err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				return nil, domainerror.NewCatalogError(
					domainerror.ErrCodeSalespersonNotFound,
					"assigned salesperson not found",
					domainerror.ErrSalespersonNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find salesperson: %w", err)
		}
		salesID := *input.SalesID
		customer.SalesID = &salesID
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	// Customer names appear in cached customer reports.
	if uc.reportCache != nil {
		if err := uc.reportCache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate report cache", "customer_id", customer.ID, "error", err)
		}
	}
	return customer, nil
}

// DeleteCustomerUseCase removes a customer that no transaction references.
type DeleteCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewDeleteCustomerUseCase creates a new DeleteCustomerUseCase instance.
func NewDeleteCustomerUseCase(customerRepo adapter.CustomerRepository) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{customerRepo: customerRepo}
}

// Execute performs the deletion.
func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	referenced, err := uc.customerRepo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check customer references: %w", err)
	}
	if referenced {
		return domainerror.NewCatalogError(
			domainerror.ErrCodeCustomerInUse,
			"customer has transactions and cannot be deleted",
			domainerror.ErrCustomerInUse,
		)
	}

	if err := uc.customerRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, domainerror.ErrCustomerNotFound) {
		return domainerror.NewCatalogError(domainerror.ErrCodeCustomerNotFound, "customer not found", domainerror.ErrCustomerNotFound)
	}
	return fmt.Errorf("failed to find customer: %w", err)
}

func forbidden() error {
	return domainerror.NewCatalogError(
		domainerror.ErrCodeCustomerForbidden,
		"customer is assigned to another salesperson",
		domainerror.ErrCustomerForbidden,
	)
}
