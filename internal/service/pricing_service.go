package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/billboards/internal/excel"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/normalize"
	"github.com/nurpe/billboards/internal/pricing"
)

// Tables is the pricing state a calculation runs against.
type Tables struct {
	Resolver     *pricing.Resolver
	Installation *pricing.InstallationTable
}

type PricingService struct {
	store PricingStore
}

func NewPricingService(store PricingStore) *PricingService {
	return &PricingService{store: store}
}

// Tables loads persisted prices ahead of the built-in static table.
func (s *PricingService) Tables(ctx context.Context) (Tables, error) {
	var (
		rows         []model.PriceRow
		installation []model.InstallationPrice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.ListPriceRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		installation, err = s.store.ListInstallationPrices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Tables{}, err
	}

	return Tables{
		Resolver:     pricing.NewResolver(pricing.NewTable("persisted", rows), pricing.StaticTable()),
		Installation: pricing.NewInstallationTable(installation),
	}, nil
}

type QuoteInput struct {
	Size          string
	Level         string
	Category      string
	DurationMode  model.DurationMode
	DurationValue int
	Principal     model.Principal
}

func (s *PricingService) Quote(ctx context.Context, input QuoteInput) (*pricing.Quote, error) {
	if !input.Principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Size) == "" {
		return nil, fmt.Errorf("%w: size is required", ErrInvalidInput)
	}
	mode, err := durationMode(input.DurationMode)
	if err != nil {
		return nil, err
	}
	if input.DurationValue < 1 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	quote := tables.Resolver.Quote(pricing.Request{
		Size:     input.Size,
		Level:    input.Level,
		Category: normalize.Category(input.Category),
		Duration: pricing.Duration{Mode: mode, Value: input.DurationValue},
	})
	return &quote, nil
}

// ImportPriceList reads an xlsx price list and upserts every row that
// normalizes; rows that do not are reported back with their sheet row number.
func (s *PricingService) ImportPriceList(ctx context.Context, r io.Reader, principal model.Principal) (*ImportResult, error) {
	if !principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	records, err := excel.ReadRecords(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := &ImportResult{Received: len(records), Skipped: []RowError{}}
	rows := make([]model.PriceRow, 0, len(records))
	for i, record := range records {
		row, err := normalize.PriceRow(record)
		if err != nil {
			// +2: one for the header, one for 1-based sheet rows.
			result.Skipped = append(result.Skipped, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return result, nil
	}

	imported, err := s.store.UpsertPriceRows(ctx, rows)
	if err != nil {
		return nil, err
	}
	result.Imported = imported
	return result, nil
}

func durationMode(mode model.DurationMode) (model.DurationMode, error) {
	switch mode {
	case "":
		return model.DurationMonths, nil
	case model.DurationMonths, model.DurationDays:
		return mode, nil
	}
	return "", fmt.Errorf("%w: duration mode must be months or days", ErrInvalidInput)
}
