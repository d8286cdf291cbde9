package repository

import (
	"context"

	"gorm.io/gorm"
)

// OptionRepository serves the dropdown lists shown across the admin forms.
type OptionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

func (r *OptionRepository) names(ctx context.Context, query string) ([]string, error) {
	var values []string
	if err := r.db.WithContext(ctx).Raw(query).Scan(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *OptionRepository) ListMunicipalities(ctx context.Context) ([]string, error) {
	return r.names(ctx, `
		SELECT name FROM municipalities
		UNION
		SELECT DISTINCT municipality FROM billboards WHERE municipality <> ''
		ORDER BY 1
	`)
}

func (r *OptionRepository) ListSizes(ctx context.Context) ([]string, error) {
	return r.names(ctx, `
		SELECT DISTINCT size FROM billboards
		UNION
		SELECT DISTINCT size FROM price_rows
		ORDER BY 1
	`)
}

func (r *OptionRepository) ListLevels(ctx context.Context) ([]string, error) {
	return r.names(ctx, `
		SELECT DISTINCT level FROM billboards WHERE level <> ''
		UNION
		SELECT DISTINCT level FROM price_rows WHERE level <> ''
		ORDER BY 1
	`)
}

func (r *OptionRepository) ListFaces(ctx context.Context) ([]int, error) {
	var faces []int
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT faces FROM billboards ORDER BY 1
	`).Scan(&faces).Error; err != nil {
		return nil, err
	}
	return faces, nil
}

func (r *OptionRepository) ListBillboardTypes(ctx context.Context) ([]string, error) {
	return r.names(ctx, `
		SELECT name FROM billboard_types
		UNION
		SELECT DISTINCT type FROM billboards WHERE type <> ''
		ORDER BY 1
	`)
}

func (r *OptionRepository) ListPricingCategories(ctx context.Context) ([]string, error) {
	return r.names(ctx, `
		SELECT DISTINCT category FROM price_rows
		UNION
		SELECT 'regular'
		ORDER BY 1
	`)
}
