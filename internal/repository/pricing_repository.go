package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) ListPriceRows(ctx context.Context) ([]model.PriceRow, error) {
	var rows []model.PriceRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT size, level, category, bucket, unit_price
		FROM price_rows
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PricingRepository) UpsertPriceRows(ctx context.Context, rows []model.PriceRow) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Exec(`
				INSERT INTO price_rows (size, level, category, bucket, unit_price)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (size, level, category, bucket) DO UPDATE SET unit_price = EXCLUDED.unit_price
			`, row.Size, row.Level, row.Category, row.Bucket, row.UnitPrice).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *PricingRepository) ListInstallationPrices(ctx context.Context) ([]model.InstallationPrice, error) {
	var rows []struct {
		Size         string
		Price        decimal.Decimal
		OneFacePrice decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT size, price, one_face_price
		FROM installation_prices
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	prices := make([]model.InstallationPrice, 0, len(rows))
	for _, row := range rows {
		price := model.InstallationPrice{Size: row.Size, Price: row.Price}
		if row.OneFacePrice.Valid {
			oneFace := row.OneFacePrice.Decimal
			price.OneFacePrice = &oneFace
		}
		prices = append(prices, price)
	}
	return prices, nil
}
