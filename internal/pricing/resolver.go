package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

const (
	SourceBillboard = "billboard"
	SourceNone      = "none"
)

var daysPerMonth = decimal.NewFromInt(30)

type Duration struct {
	Mode  model.DurationMode
	Value int
}

type Request struct {
	Size     string
	Level    string
	Category string
	Duration Duration
	// OwnMonthly is the billboard's own registered monthly price, the last source tried.
	OwnMonthly decimal.Decimal
}

type Quote struct {
	Price  decimal.Decimal
	Source string
}

// Resolver walks price tables in order, then the billboard's own price, then zero.
type Resolver struct {
	tables []*Table
}

func NewResolver(tables ...*Table) *Resolver {
	return &Resolver{tables: tables}
}

// DailyFromMonthly derives a daily rate as round(monthly / 30, 2).
func DailyFromMonthly(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Div(daysPerMonth).Round(2)
}

func (r *Resolver) Quote(req Request) Quote {
	if req.Duration.Value <= 0 {
		return Quote{Price: decimal.Zero, Source: SourceNone}
	}
	for _, table := range r.tables {
		if price, ok := tablePrice(table, req).Get(); ok {
			return Quote{Price: price.Round(2), Source: table.Name()}
		}
	}
	if price, ok := ownPrice(req).Get(); ok {
		return Quote{Price: price.Round(2), Source: SourceBillboard}
	}
	return Quote{Price: decimal.Zero, Source: SourceNone}
}

func tablePrice(table *Table, req Request) Result {
	key := Key{Size: req.Size, Level: req.Level, Category: req.Category}
	at := func(bucket model.DurationBucket) Result {
		k := key
		k.Bucket = bucket
		return table.Lookup(k)
	}

	units := decimal.NewFromInt(int64(req.Duration.Value))
	if req.Duration.Mode == model.DurationDays {
		daily := at(model.BucketDay).Or(func() Result {
			monthly, ok := at(model.Bucket1Month).Get()
			if !ok {
				return NotFound()
			}
			return Found(DailyFromMonthly(monthly))
		})
		if price, ok := daily.Get(); ok {
			return Found(price.Mul(units))
		}
		return NotFound()
	}

	if bucket, ok := model.MonthBucket(req.Duration.Value); ok {
		return at(bucket)
	}
	if monthly, ok := at(model.Bucket1Month).Get(); ok {
		return Found(monthly.Mul(units))
	}
	return NotFound()
}

func ownPrice(req Request) Result {
	if !req.OwnMonthly.IsPositive() {
		return NotFound()
	}
	units := decimal.NewFromInt(int64(req.Duration.Value))
	if req.Duration.Mode == model.DurationDays {
		return Found(DailyFromMonthly(req.OwnMonthly).Mul(units))
	}
	return Found(req.OwnMonthly.Mul(units))
}
