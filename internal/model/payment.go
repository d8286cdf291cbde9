package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryReceipt        EntryType = "receipt"
	EntryAccountPayment EntryType = "account_payment"
	EntryInvoice        EntryType = "invoice"
)

// CountsAsPaid reports whether the entry reduces the remaining balance.
func (t EntryType) CountsAsPaid() bool {
	return t == EntryReceipt || t == EntryAccountPayment
}

type Payment struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	EntryType  EntryType
	PaidAt     time.Time
	Notes      string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}
