package service

import (
	"context"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/normalize"
)

type BillboardService struct {
	store BillboardStore
}

func NewBillboardService(store BillboardStore) *BillboardService {
	return &BillboardService{store: store}
}

// Import normalizes loosely keyed records and upserts the ones that carry an
// identifier and a size. Row numbers in the result are 1-based.
func (s *BillboardService) Import(ctx context.Context, records []map[string]any, principal model.Principal) (*ImportResult, error) {
	if !principal.CanSell() {
		return nil, ErrPermissionDenied
	}

	result := &ImportResult{Received: len(records), Skipped: []RowError{}}
	billboards := make([]model.Billboard, 0, len(records))
	for i, record := range records {
		b, err := normalize.Billboard(record)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		billboards = append(billboards, b)
	}
	if len(billboards) == 0 {
		return result, nil
	}

	imported, err := s.store.Upsert(ctx, billboards)
	if err != nil {
		return nil, err
	}
	result.Imported = imported
	return result, nil
}
