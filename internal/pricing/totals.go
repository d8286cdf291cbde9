package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

var hundred = decimal.NewFromInt(100)

type TotalsInput struct {
	// RentCost is the amount typed by the user; zero means use EstimatedTotal.
	RentCost         decimal.Decimal
	EstimatedTotal   decimal.Decimal
	Discount         model.Discount
	InstallationCost decimal.Decimal
	OperatingFeeRate decimal.Decimal
}

type Totals struct {
	BaseTotal          decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAfterDiscount decimal.Decimal
	RentalCostOnly     decimal.Decimal
	InstallationCost   decimal.Decimal
	FinalTotal         decimal.Decimal
	OperatingFeeRate   decimal.Decimal
	// OperatingFee is reported alongside the totals and is not part of FinalTotal.
	OperatingFee decimal.Decimal
}

func CalculateTotals(in TotalsInput) Totals {
	base := in.EstimatedTotal
	if in.RentCost.IsPositive() {
		base = in.RentCost
	}
	base = nonNegative(base)

	var discount decimal.Decimal
	switch in.Discount.Type {
	case model.DiscountPercent:
		rate := clamp(in.Discount.Value, decimal.Zero, hundred)
		discount = base.Mul(rate).Div(hundred)
	default:
		discount = nonNegative(in.Discount.Value)
	}
	if discount.GreaterThan(base) {
		discount = base
	}

	installation := nonNegative(in.InstallationCost)
	afterDiscount := nonNegative(base.Sub(discount))
	rentalOnly := nonNegative(afterDiscount.Sub(installation))
	feeRate := nonNegative(in.OperatingFeeRate)

	return Totals{
		BaseTotal:          base,
		DiscountAmount:     discount,
		TotalAfterDiscount: afterDiscount,
		RentalCostOnly:     rentalOnly,
		InstallationCost:   installation,
		FinalTotal:         rentalOnly.Add(installation),
		OperatingFeeRate:   feeRate,
		OperatingFee:       rentalOnly.Mul(feeRate).Div(hundred).Round(2),
	}
}

func nonNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func clamp(value, lo, hi decimal.Decimal) decimal.Decimal {
	if value.LessThan(lo) {
		return lo
	}
	if value.GreaterThan(hi) {
		return hi
	}
	return value
}
