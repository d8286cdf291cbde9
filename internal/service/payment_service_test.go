package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/billboards/internal/model"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *fakePayments, model.Contract, model.Customer) {
	t.Helper()
	customer := model.Customer{ID: uuid.New(), Name: "Atlas"}
	contract := model.Contract{
		ID:         uuid.New(),
		Number:     3,
		CustomerID: customer.ID,
		FinalTotal: decimal.NewFromInt(3000),
		EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	contracts := newFakeContracts(nil)
	contracts.put(contract)
	payments := &fakePayments{}
	svc := NewPaymentService(payments, contracts, newFakeCustomers(customer))
	svc.now = fixedClock(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
	return svc, payments, contract, customer
}

func TestPaymentService_RecordAndBalance(t *testing.T) {
	svc, _, contract, customer := newPaymentFixture(t)
	ctx := context.Background()

	p, err := svc.Record(ctx, RecordPaymentInput{
		ContractID: &contract.ID,
		Amount:     decimal.RequireFromString("1000.004"),
		EntryType:  model.EntryReceipt,
		Principal:  accountant,
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, p.CustomerID)
	assert.Equal(t, "1000", p.Amount.String())
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), p.PaidAt)

	_, err = svc.Record(ctx, RecordPaymentInput{
		ContractID: &contract.ID,
		Amount:     decimal.NewFromInt(3000),
		EntryType:  model.EntryInvoice,
		Principal:  accountant,
	})
	require.NoError(t, err)

	_, err = svc.Record(ctx, RecordPaymentInput{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(250),
		EntryType:  model.EntryAccountPayment,
		Principal:  admin,
	})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, contract.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.Paid.String())
	assert.Equal(t, "3000", balance.Invoiced.String())
	assert.Equal(t, "2000", balance.Remaining.String())

	total, err := svc.CustomerBalance(ctx, customer.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, "1250", total.Paid.String())
	assert.Equal(t, "1750", total.Remaining.String())
	assert.Equal(t, 3, total.Entries)
}

func TestPaymentService_RecordRejections(t *testing.T) {
	svc, _, contract, _ := newPaymentFixture(t)
	ctx := context.Background()
	other := uuid.New()
	missing := uuid.New()

	cases := []struct {
		name  string
		input RecordPaymentInput
		err   error
	}{
		{"sales cannot collect", RecordPaymentInput{ContractID: &contract.ID, Amount: decimal.NewFromInt(1), EntryType: model.EntryReceipt, Principal: sales}, ErrPermissionDenied},
		{"zero amount", RecordPaymentInput{ContractID: &contract.ID, Amount: decimal.Zero, EntryType: model.EntryReceipt, Principal: accountant}, ErrInvalidInput},
		{"unknown type", RecordPaymentInput{ContractID: &contract.ID, Amount: decimal.NewFromInt(1), EntryType: "refund", Principal: accountant}, ErrInvalidInput},
		{"no target", RecordPaymentInput{Amount: decimal.NewFromInt(1), EntryType: model.EntryReceipt, Principal: accountant}, ErrInvalidInput},
		{"customer mismatch", RecordPaymentInput{ContractID: &contract.ID, CustomerID: other, Amount: decimal.NewFromInt(1), EntryType: model.EntryReceipt, Principal: accountant}, ErrInvalidInput},
		{"missing contract", RecordPaymentInput{ContractID: &missing, Amount: decimal.NewFromInt(1), EntryType: model.EntryReceipt, Principal: accountant}, ErrNotFound},
		{"missing customer", RecordPaymentInput{CustomerID: missing, Amount: decimal.NewFromInt(1), EntryType: model.EntryReceipt, Principal: accountant}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tc.input)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
