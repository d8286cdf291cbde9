package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/billboards/internal/model"
)

func TestBillboardService_Import(t *testing.T) {
	store := newFakeBillboards()
	svc := NewBillboardService(store)

	records := []map[string]any{
		{"Billboard_Code": "TR-01", "Billboard_Size": "12X4", "Level": "a", "Faces_Count": "1"},
		{"code": "TR-02"},
		{"id": "TR-03", "size_name": "3 x 6", "status": "صيانة"},
	}

	_, err := svc.Import(context.Background(), records, viewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	result, err := svc.Import(context.Background(), records, sales)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Received)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 2, result.Skipped[0].Row)

	var sizes []string
	for _, b := range store.items {
		sizes = append(sizes, b.Size)
	}
	assert.ElementsMatch(t, []string{"4x12", "3x6"}, sizes)
}

func TestPricingService_ImportPriceList(t *testing.T) {
	file := excelize.NewFile()
	rows := [][]any{
		{"Size", "Level", "Category", "Duration", "Unit Price"},
		{"12x4", "A", "", "3", 2700},
		{"4x12", "A", "مسوق", "daily", 40},
		{"", "A", "", "1", 10},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	store := &fakePricing{}
	svc := NewPricingService(store)

	result, err := svc.ImportPriceList(context.Background(), buf, sales)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Received)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 4, result.Skipped[0].Row)

	require.Len(t, store.upserted, 2)
	assert.Equal(t, model.PriceRow{Size: "4x12", Level: "A", Category: "regular", Bucket: model.Bucket3Months, UnitPrice: store.upserted[0].UnitPrice}, store.upserted[0])
	assert.Equal(t, "2700", store.upserted[0].UnitPrice.String())
	assert.Equal(t, "marketer", store.upserted[1].Category)
	assert.Equal(t, model.BucketDay, store.upserted[1].Bucket)
}

func TestPricingService_Quote(t *testing.T) {
	svc := NewPricingService(&fakePricing{})

	quote, err := svc.Quote(context.Background(), QuoteInput{Size: "12 x 4", Level: "a", DurationValue: 1, Principal: viewer})
	require.NoError(t, err)
	assert.Equal(t, "static", quote.Source)
	assert.Equal(t, "4000", quote.Price.String())

	_, err = svc.Quote(context.Background(), QuoteInput{Size: "4x12", DurationMode: "weeks", DurationValue: 1, Principal: viewer})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Quote(context.Background(), QuoteInput{Size: "4x12", DurationValue: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
