package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/normalize"
)

type InstallationLine struct {
	BillboardID uuid.UUID
	Code        string
	Size        string
	Faces       int
	Price       decimal.Decimal
	Found       bool
}

type InstallationCost struct {
	Total decimal.Decimal
	Lines []InstallationLine
}

// InstallationTable holds per-size installation fees.
type InstallationTable struct {
	prices map[string]model.InstallationPrice
}

func NewInstallationTable(rows []model.InstallationPrice) *InstallationTable {
	t := &InstallationTable{prices: make(map[string]model.InstallationPrice, len(rows))}
	for _, row := range rows {
		row.Size = normalize.Size(row.Size)
		t.prices[row.Size] = row
	}
	return t
}

// Price returns the fee for a size; a one-face billboard uses the one-face
// variant when the table defines it.
func (t *InstallationTable) Price(size string, faces int) Result {
	if t == nil {
		return NotFound()
	}
	row, ok := t.prices[normalize.Size(size)]
	if !ok {
		return NotFound()
	}
	if faces == 1 && row.OneFacePrice != nil {
		return Found(*row.OneFacePrice)
	}
	return Found(row.Price)
}

// Aggregate sums installation fees for the given billboards. Unknown ids and
// sizes without a fee contribute zero instead of failing the total.
func (t *InstallationTable) Aggregate(ids []uuid.UUID, billboards map[uuid.UUID]model.Billboard) InstallationCost {
	cost := InstallationCost{Total: decimal.Zero, Lines: make([]InstallationLine, 0, len(ids))}
	for _, id := range ids {
		line := InstallationLine{BillboardID: id, Price: decimal.Zero}
		if billboard, ok := billboards[id]; ok {
			line.Code = billboard.Code
			line.Size = billboard.Size
			line.Faces = billboard.Faces
			result := t.Price(billboard.Size, billboard.Faces)
			line.Found = result.IsFound()
			line.Price = result.OrZero()
		}
		cost.Total = cost.Total.Add(line.Price)
		cost.Lines = append(cost.Lines, line)
	}
	return cost
}
