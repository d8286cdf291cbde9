package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/pricing"
)

type Kind string

const (
	KindInvoice      Kind = "invoice"
	KindPrintOrder   Kind = "print-order"
	KindInstallation Kind = "installation"
	KindReceipt      Kind = "receipt"
)

func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindInvoice, KindPrintOrder, KindInstallation, KindReceipt:
		return Kind(raw), true
	}
	return "", false
}

type Company struct {
	Name     string
	Currency string
}

type BillboardLine struct {
	Code              string
	Name              string
	Municipality      string
	Size              string
	Level             string
	Faces             int
	Type              string
	RentPrice         decimal.Decimal
	InstallationPrice decimal.Decimal
}

type ContractDocument struct {
	Company  Company
	Contract model.Contract
	Customer model.Customer
	Lines    []BillboardLine
	Totals   pricing.Totals
	Balance  ledger.Balance
	IssuedAt time.Time
}

type ReceiptDocument struct {
	Company  Company
	Payment  model.Payment
	Customer model.Customer
	Contract *model.Contract
	Balance  *ledger.Balance
	IssuedAt time.Time
}
