package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

// Distribute splits total into count amounts floored to cents; the last one
// absorbs the rounding remainder so the amounts always add up to total.
func Distribute(total decimal.Decimal, count, limit int) ([]decimal.Decimal, error) {
	if count < 1 || (limit > 0 && count > limit) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	per := total.Div(decimal.NewFromInt(int64(count))).RoundFloor(2)
	amounts := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		amounts[i] = per
	}
	amounts[count-1] = total.Sub(per.Mul(decimal.NewFromInt(int64(count - 1))))
	return amounts, nil
}

// Even builds a fresh schedule: the first installment is due on signing, the rest monthly.
func Even(total decimal.Decimal, count, limit int, start, end time.Time) ([]model.Installment, error) {
	amounts, err := Distribute(total, count, limit)
	if err != nil {
		return nil, err
	}
	installments := make([]model.Installment, count)
	for i, amount := range amounts {
		pt := model.PaymentMonthly
		if i == 0 {
			pt = model.PaymentOnSigning
		}
		installments[i] = model.Installment{
			Index:       i,
			Amount:      amount,
			PaymentType: pt,
			Description: describe(i, count),
			DueDate:     DueDate(pt, start, end, i),
		}
	}
	return installments, nil
}

// Redistribute spreads total evenly over the existing rows, keeping their
// payment types and descriptions.
func Redistribute(existing []model.Installment, total decimal.Decimal, start, end time.Time) ([]model.Installment, error) {
	amounts, err := Distribute(total, len(existing), 0)
	if err != nil {
		return nil, err
	}
	result := make([]model.Installment, len(existing))
	for i, inst := range existing {
		inst.Index = i
		inst.Amount = amounts[i]
		if inst.Description == "" {
			inst.Description = describe(i, len(existing))
		}
		inst.DueDate = DueDate(inst.PaymentType, start, end, i)
		result[i] = inst
	}
	return result, nil
}

// Retype changes one installment's payment type and recomputes only its due date.
func Retype(existing []model.Installment, index int, pt model.PaymentType, start, end time.Time) ([]model.Installment, error) {
	if index < 0 || index >= len(existing) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	result := make([]model.Installment, len(existing))
	copy(result, existing)
	result[index].PaymentType = pt
	result[index].DueDate = DueDate(pt, start, end, index)
	return result, nil
}

// Normalize fills due dates and indexes on manually entered rows.
func Normalize(rows []model.Installment, start, end time.Time) []model.Installment {
	result := make([]model.Installment, len(rows))
	for i, row := range rows {
		row.Index = i
		if row.PaymentType == "" {
			row.PaymentType = model.PaymentMonthly
		}
		if row.DueDate.IsZero() {
			row.DueDate = DueDate(row.PaymentType, start, end, i)
		} else {
			row.DueDate = model.DateOnly(row.DueDate)
		}
		if row.Description == "" {
			row.Description = describe(i, len(rows))
		}
		result[i] = row
	}
	return result
}

func Sum(installments []model.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.Amount)
	}
	return total
}

// Validate is the pre-save check: amounts must be non-negative and add up to
// total within tolerance.
func Validate(installments []model.Installment, total, tolerance decimal.Decimal) error {
	for _, inst := range installments {
		if inst.Amount.IsNegative() {
			return &ValidationError{
				Err:     ErrNegativeAmount,
				Details: fmt.Sprintf("installment %d has amount %s", inst.Index+1, inst.Amount.StringFixed(2)),
			}
		}
	}
	sum := Sum(installments)
	if sum.Sub(total).Abs().GreaterThan(tolerance) {
		return &ValidationError{
			Err:     ErrSumMismatch,
			Details: fmt.Sprintf("installments total %s, contract total %s", sum.StringFixed(2), total.StringFixed(2)),
		}
	}
	return nil
}

func describe(index, count int) string {
	return fmt.Sprintf("Installment %d of %d", index+1, count)
}
