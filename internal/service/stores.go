package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/repository"
)

type BillboardStore interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Billboard, error)
	ListLinked(ctx context.Context) ([]model.Billboard, error)
	Release(ctx context.Context, stale []model.Billboard) ([]uuid.UUID, error)
	Upsert(ctx context.Context, billboards []model.Billboard) (int, error)
}

type ContractStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	List(ctx context.Context, filter repository.ContractFilter) ([]model.Contract, error)
	Create(ctx context.Context, c model.Contract, createdBy uuid.UUID) (*model.Contract, error)
	Update(ctx context.Context, c model.Contract, released []uuid.UUID) error
	ReplaceInstallments(ctx context.Context, contractID uuid.UUID, installments []model.Installment) error
	EndDates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]time.Time, error)
}

type PricingStore interface {
	ListPriceRows(ctx context.Context) ([]model.PriceRow, error)
	UpsertPriceRows(ctx context.Context, rows []model.PriceRow) (int, error)
	ListInstallationPrices(ctx context.Context) ([]model.InstallationPrice, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p model.Payment) (*model.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Payment, error)
}

type CustomerStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Merge(ctx context.Context, primary uuid.UUID, duplicates []uuid.UUID) error
}

// Locker guards work that must not run concurrently across instances.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Received int        `json:"received"`
	Imported int        `json:"imported"`
	Skipped  []RowError `json:"skipped"`
}
