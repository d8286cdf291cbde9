package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DurationMode string

const (
	DurationMonths DurationMode = "months"
	DurationDays   DurationMode = "days"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

type ContractStatus string

const (
	ContractStatusActive  ContractStatus = "active"
	ContractStatusExpired ContractStatus = "expired"
)

type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

type Contract struct {
	ID               uuid.UUID
	Number           int64
	CustomerID       uuid.UUID
	CustomerName     string
	AdType           string
	PricingCategory  string
	StartDate        time.Time
	EndDate          time.Time
	DurationMode     DurationMode
	DurationValue    int
	BaseRentTotal    decimal.Decimal
	Discount         Discount
	OperatingFeeRate decimal.Decimal
	OperatingFee     decimal.Decimal
	InstallationCost decimal.Decimal
	FinalTotal       decimal.Decimal
	BillboardIDs     []uuid.UUID
	Installments     []Installment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EndFor derives the contract end date from its start and duration.
func EndFor(start time.Time, mode DurationMode, value int) time.Time {
	if mode == DurationDays {
		return start.AddDate(0, 0, value)
	}
	return start.AddDate(0, value, 0)
}

func (c Contract) Status(now time.Time) ContractStatus {
	if DateOnly(c.EndDate).Before(DateOnly(now)) {
		return ContractStatusExpired
	}
	return ContractStatusActive
}

// DaysRemaining counts whole days from now until the end date; negative once expired.
func (c Contract) DaysRemaining(now time.Time) int {
	return int(DateOnly(c.EndDate).Sub(DateOnly(now)).Hours() / 24)
}

func (c Contract) NearExpiry(now time.Time, thresholdDays int) bool {
	days := c.DaysRemaining(now)
	return days >= 0 && days <= thresholdDays
}

func (c Contract) HasBillboard(id uuid.UUID) bool {
	for _, existing := range c.BillboardIDs {
		if existing == id {
			return true
		}
	}
	return false
}

type Installment struct {
	Index       int
	Amount      decimal.Decimal
	PaymentType PaymentType
	Description string
	DueDate     time.Time
}

type PaymentType string

const (
	PaymentOnSigning      PaymentType = "on_signing"
	PaymentMonthly        PaymentType = "monthly"
	PaymentBiMonthly      PaymentType = "bi_monthly"
	PaymentQuarterly      PaymentType = "quarterly"
	PaymentOnInstallation PaymentType = "on_installation"
	PaymentEndOfContract  PaymentType = "end_of_contract"
)

func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
