package normalize

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/billboards/internal/model"
)

func TestBillboard_ResolvesAliases(t *testing.T) {
	contractID := uuid.New()
	records := []map[string]any{
		{"id": "a1", "size": "12x4", "level": "a", "faces": 1, "price": "3,000", "status": "rented", "contract_id": contractID.String()},
		{"Billboard_ID": "a1", "Billboard_Size": "4X12", "Level": "A", "Faces_Count": "1", "Price": 3000, "Status": "محجوز", "Contract_ID": contractID.String()},
		{"billboardId": "a1", "sizeName": "4 x 12", "billboard_level": "A", "faceCount": 1.0, "monthlyPrice": "3000 LYD", "status": "booked", "contractId": contractID.String()},
	}

	for _, record := range records {
		billboard, err := Billboard(record)
		require.NoError(t, err)
		assert.Equal(t, "4x12", billboard.Size)
		assert.Equal(t, "A", billboard.Level)
		assert.Equal(t, 1, billboard.Faces)
		assert.Equal(t, "3000", billboard.MonthlyPrice.String())
		assert.Equal(t, model.BillboardStatusRented, billboard.Status)
		require.NotNil(t, billboard.ContractID)
		assert.Equal(t, contractID, *billboard.ContractID)
		assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceOID, []byte("billboard:a1")), billboard.ID)
	}
}

func TestBillboard_Defaults(t *testing.T) {
	id := uuid.New()
	billboard, err := Billboard(map[string]any{"id": id.String(), "size": "3x4", "rent_end_date": "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, id, billboard.ID)
	assert.Equal(t, 2, billboard.Faces)
	assert.Equal(t, model.BillboardStatusAvailable, billboard.Status)
	assert.True(t, billboard.MonthlyPrice.IsZero())
	require.NotNil(t, billboard.RentEndDate)
	assert.Equal(t, "2024-03-01", billboard.RentEndDate.Format("2006-01-02"))
}

func TestBillboard_MissingFields(t *testing.T) {
	_, err := Billboard(map[string]any{"size": "4x12"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = Billboard(map[string]any{"id": "7", "size": "  "})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestPriceRow(t *testing.T) {
	row, err := PriceRow(map[string]any{"Size": "12x4", "level": "b", "customer_type": "مسوق", "duration": "3 months", "price": "7,500"})
	require.NoError(t, err)
	assert.Equal(t, model.PriceRow{
		Size:      "4x12",
		Level:     "B",
		Category:  "marketer",
		Bucket:    model.Bucket3Months,
		UnitPrice: row.UnitPrice,
	}, row)
	assert.Equal(t, "7500", row.UnitPrice.String())

	_, err = PriceRow(map[string]any{"size": "4x12", "duration": "5"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestBucket(t *testing.T) {
	cases := map[string]model.DurationBucket{
		"1":        model.Bucket1Month,
		"12m":      model.Bucket12Months,
		"6 months": model.Bucket6Months,
		"daily":    model.BucketDay,
		"يومي":     model.BucketDay,
	}
	for in, expected := range cases {
		bucket, ok := Bucket(in)
		assert.True(t, ok, in)
		assert.Equal(t, expected, bucket, in)
	}
	_, ok := Bucket("4")
	assert.False(t, ok)
}

func TestAmountAndPhone(t *testing.T) {
	assert.Equal(t, "1200.5", Amount(" 1,200.50 LYD").String())
	assert.True(t, Amount("n/a").IsZero())
	assert.Equal(t, "+218911234567", Phone("+218 91-123 4567"))
	assert.Equal(t, "0911234567", Phone("091 123 4567"))
}
