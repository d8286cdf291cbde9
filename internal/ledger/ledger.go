package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

type Balance struct {
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Invoiced  decimal.Decimal
	Remaining decimal.Decimal
	Entries   int
}

// ContractBalance sums the entries that belong to the contract. Receipts and
// account payments count as paid; invoice entries are tracked separately.
func ContractBalance(contract model.Contract, entries []model.Payment) Balance {
	balance := Balance{
		Total:    contract.FinalTotal,
		Paid:     decimal.Zero,
		Invoiced: decimal.Zero,
	}
	for _, entry := range entries {
		if entry.ContractID != contract.ID {
			continue
		}
		balance.add(entry)
	}
	balance.Remaining = balance.Total.Sub(balance.Paid)
	return balance
}

// CustomerBalance sums over all of a customer's contracts. Entries recorded
// against the customer without a contract still count towards paid.
func CustomerBalance(customerID uuid.UUID, contracts []model.Contract, entries []model.Payment) Balance {
	balance := Balance{Total: decimal.Zero, Paid: decimal.Zero, Invoiced: decimal.Zero}
	owned := make(map[uuid.UUID]struct{}, len(contracts))
	for _, contract := range contracts {
		if contract.CustomerID != customerID {
			continue
		}
		owned[contract.ID] = struct{}{}
		balance.Total = balance.Total.Add(contract.FinalTotal)
	}
	for _, entry := range entries {
		_, ours := owned[entry.ContractID]
		if !ours && entry.CustomerID != customerID {
			continue
		}
		balance.add(entry)
	}
	balance.Remaining = balance.Total.Sub(balance.Paid)
	return balance
}

func (b *Balance) add(entry model.Payment) {
	b.Entries++
	if entry.EntryType.CountsAsPaid() {
		b.Paid = b.Paid.Add(entry.Amount)
		return
	}
	if entry.EntryType == model.EntryInvoice {
		b.Invoiced = b.Invoiced.Add(entry.Amount)
	}
}
