package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/normalize"
)

type Key struct {
	Size     string
	Level    string
	Category string
	Bucket   model.DurationBucket
}

func (k Key) normalized() Key {
	return Key{
		Size:     normalize.Size(k.Size),
		Level:    strings.ToUpper(strings.TrimSpace(k.Level)),
		Category: normalize.Category(k.Category),
		Bucket:   k.Bucket,
	}
}

// Table is an in-memory price list. Keys are normalized on both insert and
// lookup so formatting differences in sizes never cause a miss.
type Table struct {
	name   string
	prices map[Key]decimal.Decimal
}

func NewTable(name string, rows []model.PriceRow) *Table {
	t := &Table{name: name, prices: make(map[Key]decimal.Decimal, len(rows))}
	for _, row := range rows {
		t.Add(row)
	}
	return t
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Len() int {
	return len(t.prices)
}

// Add stores a row; a later row for the same key replaces the earlier one.
func (t *Table) Add(row model.PriceRow) {
	key := Key{Size: row.Size, Level: row.Level, Category: row.Category, Bucket: row.Bucket}.normalized()
	t.prices[key] = row.UnitPrice
}

func (t *Table) Lookup(key Key) Result {
	if t == nil {
		return NotFound()
	}
	price, ok := t.prices[key.normalized()]
	if !ok || price.IsNegative() {
		return NotFound()
	}
	return Found(price)
}

func (t *Table) Rows() []model.PriceRow {
	rows := make([]model.PriceRow, 0, len(t.prices))
	for key, price := range t.prices {
		rows = append(rows, model.PriceRow{
			Size:      key.Size,
			Level:     key.Level,
			Category:  key.Category,
			Bucket:    key.Bucket,
			UnitPrice: price,
		})
	}
	return rows
}
