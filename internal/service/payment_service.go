package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/repository"
)

type PaymentService struct {
	payments  PaymentStore
	contracts ContractStore
	customers CustomerStore
	validate  *validator.Validate
	now       func() time.Time
}

func NewPaymentService(payments PaymentStore, contracts ContractStore, customers CustomerStore) *PaymentService {
	return &PaymentService{
		payments:  payments,
		contracts: contracts,
		customers: customers,
		validate:  validator.New(),
		now:       time.Now,
	}
}

type RecordPaymentInput struct {
	ContractID *uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	EntryType  model.EntryType `validate:"required,oneof=receipt account_payment invoice"`
	PaidAt     time.Time
	Notes      string          `validate:"max=1000"`
	Principal  model.Principal `validate:"-"`
}

// Record appends a ledger entry. Entries tied to a contract always take the
// contract's customer.
func (s *PaymentService) Record(ctx context.Context, input RecordPaymentInput) (*model.Payment, error) {
	if !input.Principal.CanCollect() {
		return nil, ErrPermissionDenied
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	payment := model.Payment{
		CustomerID: input.CustomerID,
		Amount:     input.Amount.Round(2),
		EntryType:  input.EntryType,
		PaidAt:     input.PaidAt,
		Notes:      input.Notes,
		CreatedBy:  input.Principal.UserID,
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = s.now()
	}

	if input.ContractID != nil && *input.ContractID != uuid.Nil {
		c, err := s.contracts.Get(ctx, *input.ContractID)
		if err != nil {
			return nil, notFound(err)
		}
		if input.CustomerID != uuid.Nil && input.CustomerID != c.CustomerID {
			return nil, fmt.Errorf("%w: contract belongs to another customer", ErrInvalidInput)
		}
		payment.ContractID = c.ID
		payment.CustomerID = c.CustomerID
	} else {
		if input.CustomerID == uuid.Nil {
			return nil, fmt.Errorf("%w: contract_id or customer_id is required", ErrInvalidInput)
		}
		if _, err := s.customers.Get(ctx, input.CustomerID); err != nil {
			return nil, notFound(err)
		}
	}

	return s.payments.Create(ctx, payment)
}

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Payment, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *PaymentService) Balance(ctx context.Context, contractID uuid.UUID, principal model.Principal) (*ledger.Balance, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.contractBalance(ctx, *c)
}

func (s *PaymentService) contractBalance(ctx context.Context, c model.Contract) (*ledger.Balance, error) {
	entries, err := s.payments.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.ContractBalance(c, entries)
	return &balance, nil
}

func (s *PaymentService) CustomerBalance(ctx context.Context, customerID uuid.UUID, principal model.Principal) (*ledger.Balance, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, notFound(err)
	}

	contracts, err := s.contracts.List(ctx, repository.ContractFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	entries, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	balance := ledger.CustomerBalance(customerID, contracts, entries)
	return &balance, nil
}
