package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/billboards/internal/model"
)

func TestContractBalance(t *testing.T) {
	contract := model.Contract{ID: uuid.New(), FinalTotal: decimal.NewFromInt(1200)}
	other := uuid.New()
	entries := []model.Payment{
		{ContractID: contract.ID, Amount: decimal.NewFromInt(300), EntryType: model.EntryReceipt},
		{ContractID: contract.ID, Amount: decimal.NewFromInt(200), EntryType: model.EntryAccountPayment},
		{ContractID: contract.ID, Amount: decimal.NewFromInt(1200), EntryType: model.EntryInvoice},
		{ContractID: other, Amount: decimal.NewFromInt(999), EntryType: model.EntryReceipt},
	}

	balance := ContractBalance(contract, entries)
	assert.Equal(t, "500", balance.Paid.String())
	assert.Equal(t, "1200", balance.Invoiced.String())
	assert.Equal(t, "700", balance.Remaining.String())
	assert.Equal(t, 3, balance.Entries)
}

func TestContractBalance_Overpaid(t *testing.T) {
	contract := model.Contract{ID: uuid.New(), FinalTotal: decimal.NewFromInt(100)}
	balance := ContractBalance(contract, []model.Payment{
		{ContractID: contract.ID, Amount: decimal.NewFromInt(150), EntryType: model.EntryReceipt},
	})
	assert.Equal(t, "-50", balance.Remaining.String())
}

func TestCustomerBalance(t *testing.T) {
	customer := uuid.New()
	first := model.Contract{ID: uuid.New(), CustomerID: customer, FinalTotal: decimal.NewFromInt(1000)}
	second := model.Contract{ID: uuid.New(), CustomerID: customer, FinalTotal: decimal.NewFromInt(500)}
	foreign := model.Contract{ID: uuid.New(), CustomerID: uuid.New(), FinalTotal: decimal.NewFromInt(700)}

	entries := []model.Payment{
		{ContractID: first.ID, CustomerID: customer, Amount: decimal.NewFromInt(400), EntryType: model.EntryReceipt},
		{ContractID: second.ID, CustomerID: customer, Amount: decimal.NewFromInt(100), EntryType: model.EntryReceipt},
		{CustomerID: customer, Amount: decimal.NewFromInt(50), EntryType: model.EntryAccountPayment},
		{ContractID: foreign.ID, CustomerID: foreign.CustomerID, Amount: decimal.NewFromInt(700), EntryType: model.EntryReceipt},
	}

	balance := CustomerBalance(customer, []model.Contract{first, second, foreign}, entries)
	assert.Equal(t, "1500", balance.Total.String())
	assert.Equal(t, "550", balance.Paid.String())
	assert.Equal(t, "950", balance.Remaining.String())
}
