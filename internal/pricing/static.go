package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
)

// Standard monthly rates per size and level, before the category factor.
var staticMonthly = map[string]map[string]int64{
	"3x4":  {"S": 1800, "A": 1500, "B": 1200},
	"3x6":  {"S": 2400, "A": 2000, "B": 1600},
	"3x8":  {"S": 3000, "A": 2500, "B": 2000},
	"4x10": {"S": 4200, "A": 3500, "B": 2800},
	"4x12": {"S": 4800, "A": 4000, "B": 3200},
	"5x13": {"S": 6000, "A": 5000, "B": 4000},
	"4x18": {"S": 7200, "A": 6000, "B": 4800},
}

var staticCategoryFactor = map[string]decimal.Decimal{
	"regular":   decimal.NewFromInt(1),
	"marketer":  decimal.RequireFromString("0.85"),
	"corporate": decimal.RequireFromString("0.95"),
}

var staticBucketFactor = []struct {
	bucket model.DurationBucket
	months int64
	factor decimal.Decimal
}{
	{model.Bucket1Month, 1, decimal.NewFromInt(1)},
	{model.Bucket2Months, 2, decimal.RequireFromString("0.97")},
	{model.Bucket3Months, 3, decimal.RequireFromString("0.95")},
	{model.Bucket6Months, 6, decimal.RequireFromString("0.9")},
	{model.Bucket12Months, 12, decimal.RequireFromString("0.85")},
}

// StaticTable is the built-in price list used when the persisted one misses.
// It carries no daily column; daily prices derive from the monthly rate.
func StaticTable() *Table {
	table := NewTable("static", nil)
	for size, levels := range staticMonthly {
		for level, monthly := range levels {
			for category, categoryFactor := range staticCategoryFactor {
				base := decimal.NewFromInt(monthly).Mul(categoryFactor)
				for _, b := range staticBucketFactor {
					table.Add(model.PriceRow{
						Size:      size,
						Level:     level,
						Category:  category,
						Bucket:    b.bucket,
						UnitPrice: base.Mul(decimal.NewFromInt(b.months)).Mul(b.factor).Round(0),
					})
				}
			}
		}
	}
	return table
}
