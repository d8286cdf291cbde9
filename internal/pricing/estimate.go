package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

type BillboardQuote struct {
	BillboardID uuid.UUID
	Code        string
	Size        string
	Level       string
	Quote       Quote
}

type Estimate struct {
	Total  decimal.Decimal
	Quotes []BillboardQuote
}

// EstimateRent quotes every billboard for the same category and duration and sums the prices.
func (r *Resolver) EstimateRent(billboards []model.Billboard, category string, duration Duration) Estimate {
	estimate := Estimate{Total: decimal.Zero, Quotes: make([]BillboardQuote, 0, len(billboards))}
	for _, billboard := range billboards {
		quote := r.Quote(Request{
			Size:       billboard.Size,
			Level:      billboard.Level,
			Category:   category,
			Duration:   duration,
			OwnMonthly: billboard.MonthlyPrice,
		})
		estimate.Total = estimate.Total.Add(quote.Price)
		estimate.Quotes = append(estimate.Quotes, BillboardQuote{
			BillboardID: billboard.ID,
			Code:        billboard.Code,
			Size:        billboard.Size,
			Level:       billboard.Level,
			Quote:       quote,
		})
	}
	return estimate
}
