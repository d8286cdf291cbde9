package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/billboards/internal/config"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/schedule"
)

var contractsNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type contractFixture struct {
	svc        *ContractService
	contracts  *fakeContracts
	billboards *fakeBillboards
	customer   model.Customer
	large      model.Billboard
	small      model.Billboard
}

func newContractFixture(t *testing.T) *contractFixture {
	t.Helper()
	oneFace := decimal.NewFromInt(100)

	f := &contractFixture{
		customer: model.Customer{ID: uuid.New(), Name: "Zahra Foods"},
		large: model.Billboard{
			ID: uuid.New(), Code: "B1", Size: "4x12", Level: "A", Faces: 2,
			Status: model.BillboardStatusAvailable, MonthlyPrice: decimal.NewFromInt(999),
		},
		small: model.Billboard{
			ID: uuid.New(), Code: "B2", Size: "3x6", Level: "B", Faces: 1,
			Status: model.BillboardStatusAvailable,
		},
	}
	f.billboards = newFakeBillboards(f.large, f.small)
	f.contracts = newFakeContracts(f.billboards)
	prices := NewPricingService(&fakePricing{
		rows: []model.PriceRow{
			{Size: "4x12", Level: "A", Category: "regular", Bucket: model.Bucket1Month, UnitPrice: decimal.NewFromInt(1000)},
			{Size: "12x4", Level: "A", Category: "regular", Bucket: model.Bucket3Months, UnitPrice: decimal.NewFromInt(2700)},
			{Size: "3x6", Level: "B", Category: "regular", Bucket: model.Bucket3Months, UnitPrice: decimal.NewFromInt(900)},
		},
		installation: []model.InstallationPrice{
			{Size: "4x12", Price: decimal.NewFromInt(200)},
			{Size: "3x6", Price: decimal.NewFromInt(150), OneFacePrice: &oneFace},
		},
	})
	f.svc = NewContractService(f.contracts, f.billboards, newFakeCustomers(f.customer), prices, config.ContractsConfig{
		NearExpiryDays:  20,
		MaxInstallments: 6,
		SumTolerance:    decimal.NewFromInt(1),
	})
	f.svc.now = fixedClock(contractsNow)
	return f
}

func (f *contractFixture) input(ids ...uuid.UUID) ContractInput {
	return ContractInput{
		CustomerID:       f.customer.ID,
		AdType:           "Food",
		StartDate:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DurationMode:     model.DurationMonths,
		DurationValue:    3,
		BillboardIDs:     ids,
		InstallmentCount: 3,
		Principal:        sales,
	}
}

func TestContractService_Preview(t *testing.T) {
	f := newContractFixture(t)

	calc, err := f.svc.Preview(context.Background(), f.input(f.large.ID, f.small.ID))
	require.NoError(t, err)

	assert.Equal(t, "3600", calc.Estimate.Total.String())
	assert.Equal(t, "300", calc.Installation.Total.String())
	assert.Equal(t, "3300", calc.Totals.RentalCostOnly.String())
	assert.Equal(t, "3600", calc.Contract.FinalTotal.String())
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), calc.Contract.EndDate)
	assert.Equal(t, "Zahra Foods", calc.Contract.CustomerName)
	assert.Equal(t, "regular", calc.Contract.PricingCategory)
	assert.NoError(t, calc.Warning)
	assert.Empty(t, calc.Conflicts)

	require.Len(t, calc.Contract.Installments, 3)
	for _, inst := range calc.Contract.Installments {
		assert.Equal(t, "1200", inst.Amount.String())
	}
	assert.Equal(t, model.PaymentOnSigning, calc.Contract.Installments[0].PaymentType)
}

func TestContractService_PreviewDiscountAndRentOverride(t *testing.T) {
	f := newContractFixture(t)
	input := f.input(f.large.ID)
	input.RentCost = decimal.NewFromInt(5000)
	input.Discount = model.Discount{Type: model.DiscountPercent, Value: decimal.NewFromInt(10)}
	input.OperatingFeeRate = decimal.NewFromInt(5)

	calc, err := f.svc.Preview(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "5000", calc.Totals.BaseTotal.String())
	assert.Equal(t, "500", calc.Totals.DiscountAmount.String())
	assert.Equal(t, "4500", calc.Totals.FinalTotal.String())
	assert.Equal(t, "215", calc.Totals.OperatingFee.String())
}

func TestContractService_PreviewReportsUnknownBillboards(t *testing.T) {
	f := newContractFixture(t)
	unknown := uuid.New()

	calc, err := f.svc.Preview(context.Background(), f.input(f.large.ID, unknown))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{unknown}, calc.Missing)
	assert.Equal(t, "2700", calc.Estimate.Total.String())
}

func TestContractService_Create(t *testing.T) {
	f := newContractFixture(t)

	view, err := f.svc.Create(context.Background(), f.input(f.large.ID, f.small.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Number)
	assert.Equal(t, model.ContractStatusActive, view.Status)
	assert.False(t, view.NearExpiry)

	linked := f.billboards.items[f.large.ID]
	assert.Equal(t, model.BillboardStatusRented, linked.Status)
	require.NotNil(t, linked.ContractID)
	assert.Equal(t, view.ID, *linked.ContractID)
}

func TestContractService_CreateRejections(t *testing.T) {
	t.Run("permission", func(t *testing.T) {
		f := newContractFixture(t)
		input := f.input(f.large.ID)
		input.Principal = viewer
		_, err := f.svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown billboard", func(t *testing.T) {
		f := newContractFixture(t)
		_, err := f.svc.Create(context.Background(), f.input(f.large.ID, uuid.New()))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newContractFixture(t)
		input := f.input(f.large.ID)
		input.CustomerID = uuid.New()
		_, err := f.svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no billboards", func(t *testing.T) {
		f := newContractFixture(t)
		_, err := f.svc.Create(context.Background(), f.input())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too many installments", func(t *testing.T) {
		f := newContractFixture(t)
		input := f.input(f.large.ID)
		input.InstallmentCount = 7
		_, err := f.svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("maintenance", func(t *testing.T) {
		f := newContractFixture(t)
		b := f.billboards.items[f.small.ID]
		b.Status = model.BillboardStatusMaintenance
		f.billboards.items[f.small.ID] = b

		_, err := f.svc.Create(context.Background(), f.input(f.large.ID, f.small.ID))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rented under a live contract", func(t *testing.T) {
		f := newContractFixture(t)
		_, err := f.svc.Create(context.Background(), f.input(f.large.ID))
		require.NoError(t, err)

		_, err = f.svc.Create(context.Background(), f.input(f.large.ID))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unbalanced manual schedule", func(t *testing.T) {
		f := newContractFixture(t)
		input := f.input(f.large.ID)
		input.InstallmentCount = 0
		input.Installments = []model.Installment{
			{Amount: decimal.NewFromInt(1000), PaymentType: "on signing"},
			{Amount: decimal.NewFromInt(1000), PaymentType: "شهري"},
		}
		_, err := f.svc.Create(context.Background(), input)

		var verr *schedule.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.ErrorIs(t, err, schedule.ErrSumMismatch)
	})
}

func TestContractService_CreateOverExpiredLink(t *testing.T) {
	f := newContractFixture(t)
	old := model.Contract{
		ID:         uuid.New(),
		CustomerID: f.customer.ID,
		StartDate:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	f.contracts.put(old)
	f.billboards.link(old.ID, old.EndDate, []uuid.UUID{f.large.ID})

	_, err := f.svc.Create(context.Background(), f.input(f.large.ID))
	assert.NoError(t, err)
}

func TestContractService_UpdateReleasesDroppedBillboards(t *testing.T) {
	f := newContractFixture(t)
	created, err := f.svc.Create(context.Background(), f.input(f.large.ID, f.small.ID))
	require.NoError(t, err)

	input := f.input(f.large.ID)
	input.InstallmentCount = 0
	updated, err := f.svc.Update(context.Background(), created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.small.ID}, f.contracts.released)
	assert.Equal(t, model.BillboardStatusAvailable, f.billboards.items[f.small.ID].Status)
	assert.Equal(t, "2700", updated.FinalTotal.String())
	assert.Equal(t, created.Number, updated.Number)
	require.Len(t, updated.Installments, 3)
	assert.Equal(t, "900", updated.Installments[2].Amount.String())
}

func TestContractService_UpdateMissing(t *testing.T) {
	f := newContractFixture(t)
	_, err := f.svc.Update(context.Background(), uuid.New(), f.input(f.large.ID))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractService_DistributeAndRetype(t *testing.T) {
	f := newContractFixture(t)
	created, err := f.svc.Create(context.Background(), f.input(f.large.ID, f.small.ID))
	require.NoError(t, err)

	view, err := f.svc.Distribute(context.Background(), DistributeInput{ContractID: created.ID, Count: 2, Principal: sales})
	require.NoError(t, err)
	require.Len(t, view.Installments, 2)
	assert.Equal(t, "1800", view.Installments[1].Amount.String())

	view, err = f.svc.ChangePaymentType(context.Background(), ChangePaymentTypeInput{
		ContractID:  created.ID,
		Index:       1,
		PaymentType: "quarterly",
		Principal:   sales,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentQuarterly, view.Installments[1].PaymentType)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), view.Installments[1].DueDate)
	assert.Equal(t, model.PaymentOnSigning, view.Installments[0].PaymentType)

	_, err = f.svc.ChangePaymentType(context.Background(), ChangePaymentTypeInput{
		ContractID: created.ID, Index: 5, PaymentType: "monthly", Principal: sales,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ChangePaymentType(context.Background(), ChangePaymentTypeInput{
		ContractID: created.ID, Index: 0, PaymentType: "weekly", Principal: sales,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContractService_ListNearExpiry(t *testing.T) {
	f := newContractFixture(t)
	soon := model.Contract{ID: uuid.New(), Number: 1, EndDate: contractsNow.AddDate(0, 0, 10)}
	later := model.Contract{ID: uuid.New(), Number: 2, EndDate: contractsNow.AddDate(0, 2, 0)}
	f.contracts.put(soon)
	f.contracts.put(later)

	all, err := f.svc.List(context.Background(), ListContractsInput{Principal: viewer})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	near, err := f.svc.List(context.Background(), ListContractsInput{NearExpiry: true, Principal: viewer})
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, soon.ID, near[0].ID)
	assert.True(t, near[0].NearExpiry)
	assert.Equal(t, 10, near[0].DaysRemaining)
}
