package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/billboards/internal/model"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func persisted(t *testing.T) *Table {
	return NewTable("persisted", []model.PriceRow{
		{Size: "12x4", Level: "A", Category: "regular", Bucket: model.Bucket1Month, UnitPrice: dec(t, "3000")},
		{Size: "4x12", Level: "A", Category: "regular", Bucket: model.Bucket3Months, UnitPrice: dec(t, "8500")},
		{Size: "4x12", Level: "A", Category: "marketer", Bucket: model.BucketDay, UnitPrice: dec(t, "90")},
	})
}

func TestTable_LookupNormalizesSize(t *testing.T) {
	table := persisted(t)

	price, ok := table.Lookup(Key{Size: "4 X 12", Level: "a", Category: "Regular", Bucket: model.Bucket1Month}).Get()
	require.True(t, ok)
	assert.Equal(t, "3000", price.String())

	assert.False(t, table.Lookup(Key{Size: "4x12", Level: "B", Category: "regular", Bucket: model.Bucket1Month}).IsFound())
}

func TestResolver_Quote(t *testing.T) {
	resolver := NewResolver(persisted(t), StaticTable())

	cases := []struct {
		name   string
		req    Request
		price  string
		source string
	}{
		{
			name:   "bucket hit",
			req:    Request{Size: "4x12", Level: "A", Category: "regular", Duration: Duration{model.DurationMonths, 3}},
			price:  "8500",
			source: "persisted",
		},
		{
			name:   "non-bucket months use monthly rate",
			req:    Request{Size: "4x12", Level: "A", Category: "regular", Duration: Duration{model.DurationMonths, 4}},
			price:  "12000",
			source: "persisted",
		},
		{
			name:   "explicit daily rate",
			req:    Request{Size: "4x12", Level: "A", Category: "marketer", Duration: Duration{model.DurationDays, 10}},
			price:  "900",
			source: "persisted",
		},
		{
			name:   "daily derived from monthly",
			req:    Request{Size: "4x12", Level: "A", Category: "regular", Duration: Duration{model.DurationDays, 5}},
			price:  "500",
			source: "persisted",
		},
		{
			name:   "persisted miss falls to static",
			req:    Request{Size: "3x4", Level: "B", Category: "regular", Duration: Duration{model.DurationMonths, 1}},
			price:  "1200",
			source: "static",
		},
		{
			name:   "both tables miss use own price",
			req:    Request{Size: "9x9", Level: "A", Category: "regular", Duration: Duration{model.DurationMonths, 2}, OwnMonthly: dec(t, "700")},
			price:  "1400",
			source: SourceBillboard,
		},
		{
			name:   "own price by days",
			req:    Request{Size: "9x9", Level: "A", Category: "regular", Duration: Duration{model.DurationDays, 3}, OwnMonthly: dec(t, "3000")},
			price:  "300",
			source: SourceBillboard,
		},
		{
			name:   "everything misses degrades to zero",
			req:    Request{Size: "9x9", Level: "A", Category: "regular", Duration: Duration{model.DurationMonths, 2}},
			price:  "0",
			source: SourceNone,
		},
		{
			name:   "zero duration",
			req:    Request{Size: "4x12", Level: "A", Category: "regular", Duration: Duration{model.DurationMonths, 0}},
			price:  "0",
			source: SourceNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := resolver.Quote(tc.req)
			assert.True(t, dec(t, tc.price).Equal(quote.Price), "price %s", quote.Price)
			assert.Equal(t, tc.source, quote.Source)
		})
	}
}

func TestDailyFromMonthly(t *testing.T) {
	assert.Equal(t, "100", DailyFromMonthly(dec(t, "3000")).String())
	assert.Equal(t, "33.33", DailyFromMonthly(dec(t, "1000")).String())
}

func TestStaticTable(t *testing.T) {
	table := StaticTable()
	price, ok := table.Lookup(Key{Size: "12x4", Level: "A", Category: "marketer", Bucket: model.Bucket12Months}).Get()
	require.True(t, ok)
	// 4000 * 0.85 * 12 * 0.85
	assert.Equal(t, "34680", price.String())
	assert.False(t, table.Lookup(Key{Size: "4x12", Level: "A", Category: "regular", Bucket: model.BucketDay}).IsFound())
}

func TestEstimateRent(t *testing.T) {
	resolver := NewResolver(persisted(t))
	billboards := []model.Billboard{
		{ID: uuid.New(), Code: "B-1", Size: "4x12", Level: "A"},
		{ID: uuid.New(), Code: "B-2", Size: "3x4", Level: "A", MonthlyPrice: dec(t, "1000")},
		{ID: uuid.New(), Code: "B-3", Size: "3x4", Level: "A"},
	}

	estimate := resolver.EstimateRent(billboards, "regular", Duration{model.DurationMonths, 1})
	require.Len(t, estimate.Quotes, 3)
	assert.Equal(t, "4000", estimate.Total.String())
	assert.Equal(t, SourceNone, estimate.Quotes[2].Quote.Source)
}
