package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/repository"
)

var (
	admin      = model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	sales      = model.Principal{UserID: uuid.New(), Role: model.RoleSales}
	accountant = model.Principal{UserID: uuid.New(), Role: model.RoleAccountant}
	viewer     = model.Principal{UserID: uuid.New(), Role: model.RoleViewer}
)

type fakeBillboards struct {
	mu       sync.Mutex
	items    map[uuid.UUID]model.Billboard
	released []uuid.UUID
	// beforeRelease runs between the sweep's read and its write.
	beforeRelease func()
}

func newFakeBillboards(items ...model.Billboard) *fakeBillboards {
	f := &fakeBillboards{items: map[uuid.UUID]model.Billboard{}}
	for _, b := range items {
		f.items[b.ID] = b
	}
	return f
}

func (f *fakeBillboards) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Billboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Billboard
	for _, id := range ids {
		if b, ok := f.items[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBillboards) ListLinked(context.Context) ([]model.Billboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Billboard
	for _, b := range f.items {
		if b.Linked() || b.Status == model.BillboardStatusRented {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBillboards) Release(_ context.Context, stale []model.Billboard) ([]uuid.UUID, error) {
	if f.beforeRelease != nil {
		f.beforeRelease()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	released := []uuid.UUID{}
	for _, observed := range stale {
		b, ok := f.items[observed.ID]
		if !ok || !sameContract(b.ContractID, observed.ContractID) {
			continue
		}
		if b.Status != model.BillboardStatusMaintenance {
			b.Status = model.BillboardStatusAvailable
		}
		b.ContractID = nil
		b.RentEndDate = nil
		f.items[b.ID] = b
		f.released = append(f.released, b.ID)
		released = append(released, b.ID)
	}
	return released, nil
}

func (f *fakeBillboards) unlink(ids []uuid.UUID) {
	for _, id := range ids {
		b := f.items[id]
		b.Status = model.BillboardStatusAvailable
		b.ContractID = nil
		b.RentEndDate = nil
		f.items[id] = b
	}
}

func sameContract(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeBillboards) Upsert(_ context.Context, billboards []model.Billboard) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range billboards {
		f.items[b.ID] = b
	}
	return len(billboards), nil
}

func (f *fakeBillboards) link(contractID uuid.UUID, end time.Time, ids []uuid.UUID) {
	for _, id := range ids {
		b := f.items[id]
		b.Status = model.BillboardStatusRented
		cid, e := contractID, end
		b.ContractID = &cid
		b.RentEndDate = &e
		f.items[id] = b
	}
}

type fakeContracts struct {
	mu         sync.Mutex
	items      map[uuid.UUID]model.Contract
	billboards *fakeBillboards
	next       int64
	released   []uuid.UUID
}

func newFakeContracts(billboards *fakeBillboards) *fakeContracts {
	return &fakeContracts{items: map[uuid.UUID]model.Contract{}, billboards: billboards}
}

func (f *fakeContracts) Get(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeContracts) List(_ context.Context, filter repository.ContractFilter) ([]model.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Contract
	for _, c := range f.items {
		if filter.CustomerID != nil && c.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.EndFrom != nil && c.EndDate.Before(*filter.EndFrom) {
			continue
		}
		if filter.EndTo != nil && c.EndDate.After(*filter.EndTo) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (f *fakeContracts) Create(_ context.Context, c model.Contract, _ uuid.UUID) (*model.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	c.ID = uuid.New()
	c.Number = f.next
	f.items[c.ID] = c
	if f.billboards != nil {
		f.billboards.link(c.ID, c.EndDate, c.BillboardIDs)
	}
	return &c, nil
}

func (f *fakeContracts) Update(_ context.Context, c model.Contract, released []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.items[c.ID] = c
	f.released = append(f.released, released...)
	if f.billboards != nil {
		f.billboards.unlink(released)
		f.billboards.link(c.ID, c.EndDate, c.BillboardIDs)
	}
	return nil
}

func (f *fakeContracts) ReplaceInstallments(_ context.Context, id uuid.UUID, installments []model.Installment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Installments = installments
	f.items[id] = c
	return nil
}

func (f *fakeContracts) EndDates(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := map[uuid.UUID]time.Time{}
	for _, id := range ids {
		if c, ok := f.items[id]; ok {
			result[id] = c.EndDate
		}
	}
	return result, nil
}

func (f *fakeContracts) put(c model.Contract) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[c.ID] = c
}

type fakePricing struct {
	rows         []model.PriceRow
	installation []model.InstallationPrice
	upserted     []model.PriceRow
}

func (f *fakePricing) ListPriceRows(context.Context) ([]model.PriceRow, error) {
	return f.rows, nil
}

func (f *fakePricing) UpsertPriceRows(_ context.Context, rows []model.PriceRow) (int, error) {
	f.upserted = append(f.upserted, rows...)
	return len(rows), nil
}

func (f *fakePricing) ListInstallationPrices(context.Context) ([]model.InstallationPrice, error) {
	return f.installation, nil
}

type fakePayments struct {
	mu    sync.Mutex
	items []model.Payment
}

func (f *fakePayments) Create(_ context.Context, p model.Payment) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = p.PaidAt
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakePayments) Get(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayments) ListByContract(_ context.Context, contractID uuid.UUID) ([]model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Payment
	for _, p := range f.items {
		if p.ContractID == contractID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePayments) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Payment
	for _, p := range f.items {
		if p.CustomerID == customerID {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeCustomers struct {
	items  map[uuid.UUID]model.Customer
	order  []uuid.UUID
	merged map[uuid.UUID][]uuid.UUID
}

func newFakeCustomers(items ...model.Customer) *fakeCustomers {
	f := &fakeCustomers{items: map[uuid.UUID]model.Customer{}, merged: map[uuid.UUID][]uuid.UUID{}}
	for _, c := range items {
		f.items[c.ID] = c
		f.order = append(f.order, c.ID)
	}
	return f
}

func (f *fakeCustomers) Get(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCustomers) List(context.Context) ([]model.Customer, error) {
	result := make([]model.Customer, 0, len(f.order))
	for _, id := range f.order {
		if c, ok := f.items[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCustomers) Merge(_ context.Context, primary uuid.UUID, duplicates []uuid.UUID) error {
	f.merged[primary] = append(f.merged[primary], duplicates...)
	for _, id := range duplicates {
		delete(f.items, id)
	}
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
