package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/application/usecase/transaction"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// ListCustomersUseCase lists customers visible to the actor.
type ListCustomersUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewListCustomersUseCase creates a new ListCustomersUseCase instance.
func NewListCustomersUseCase(customerRepo adapter.CustomerRepository) *ListCustomersUseCase {
	return &ListCustomersUseCase{customerRepo: customerRepo}
}

// Execute lists every customer for admins and the assigned ones for sales users.
func (uc *ListCustomersUseCase) Execute(ctx context.Context, actor entity.Actor) ([]*entity.Customer, error) {
	var salesID *uuid.UUID
	if !actor.IsAdmin() {
		salesID = &actor.UserID
	}

	customers, err := uc.customerRepo.FindAll(ctx, salesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetCustomerUseCase reads a single customer.
type GetCustomerUseCase struct {
	customerRepo adapter.CustomerRepository
}

// NewGetCustomerUseCase creates a new GetCustomerUseCase instance.
func NewGetCustomerUseCase(customerRepo adapter.CustomerRepository) *GetCustomerUseCase {
	return &GetCustomerUseCase{customerRepo: customerRepo}
}

// Execute returns the customer with the given ID.
func (uc *GetCustomerUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return customer, nil
}

// ListCustomerTransactionsInput selects a page of one customer's transactions.
type ListCustomerTransactionsInput struct {
	Actor      entity.Actor
	CustomerID uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// ListCustomerTransactionsUseCase lists the transactions attributed to a customer,
// newest first. Sales users only see the ones they recorded.
type ListCustomerTransactionsUseCase struct {
	customerRepo     adapter.CustomerRepository
	listTransactions *transaction.ListTransactionsUseCase
}

// NewListCustomerTransactionsUseCase creates a new ListCustomerTransactionsUseCase instance.
func NewListCustomerTransactionsUseCase(
	customerRepo adapter.CustomerRepository,
	listTransactions *transaction.ListTransactionsUseCase,
) *ListCustomerTransactionsUseCase {
	return &ListCustomerTransactionsUseCase{
		customerRepo:     customerRepo,
		listTransactions: listTransactions,
	}
}

// Execute returns a page of the customer's transactions.
func (uc *ListCustomerTransactionsUseCase) Execute(ctx context.Context, input ListCustomerTransactionsInput) (*entity.TransactionListResult, error) {
	exists, err := uc.customerRepo.ExistsByID(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if !exists {
		return nil, mapNotFound(domainerror.ErrCustomerNotFound)
	}

	customerID := input.CustomerID
	return uc.listTransactions.Execute(ctx, transaction.ListTransactionsInput{
		Actor:      input.Actor,
		CustomerID: &customerID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Page:       input.Page,
		Limit:      input.Limit,
	})
}
