package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
)

const billboardColumns = `
	id,
	code,
	name,
	municipality,
	size,
	level,
	faces,
	type,
	status,
	monthly_price,
	contract_id,
	rent_end_date
`

type BillboardRepository struct {
	db *gorm.DB
}

func NewBillboardRepository(db *gorm.DB) *BillboardRepository {
	return &BillboardRepository{db: db}
}

func (r *BillboardRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Billboard, error) {
	if len(ids) == 0 {
		return []model.Billboard{}, nil
	}
	var rows []model.Billboard
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+billboardColumns+`
		FROM billboards
		WHERE id IN ?
		ORDER BY code ASC
	`, ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLinked returns billboards that still point at a contract or are marked rented.
func (r *BillboardRepository) ListLinked(ctx context.Context) ([]model.Billboard, error) {
	var rows []model.Billboard
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + billboardColumns + `
		FROM billboards
		WHERE contract_id IS NOT NULL OR status = 'rented'
		ORDER BY code ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Release frees billboards whose linkage still matches what the caller
// observed, so a billboard relinked in the meantime is left alone. Billboards
// in maintenance keep their status and only lose the link. It returns the ids
// that were actually changed.
func (r *BillboardRepository) Release(ctx context.Context, stale []model.Billboard) ([]uuid.UUID, error) {
	released := make([]uuid.UUID, 0, len(stale))
	if len(stale) == 0 {
		return released, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range stale {
			var contractID any
			if b.ContractID != nil {
				contractID = *b.ContractID
			}
			var ids []uuid.UUID
			if err := tx.Raw(`
				UPDATE billboards
				SET status = CASE WHEN status = 'maintenance' THEN status ELSE 'available' END,
					contract_id = NULL,
					rent_end_date = NULL
				WHERE id = ? AND contract_id IS NOT DISTINCT FROM ?
				RETURNING id
			`, b.ID, contractID).Scan(&ids).Error; err != nil {
				return err
			}
			released = append(released, ids...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

func (r *BillboardRepository) Upsert(ctx context.Context, billboards []model.Billboard) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range billboards {
			if err := tx.Exec(`
				INSERT INTO billboards (`+billboardColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
					code = EXCLUDED.code,
					name = EXCLUDED.name,
					municipality = EXCLUDED.municipality,
					size = EXCLUDED.size,
					level = EXCLUDED.level,
					faces = EXCLUDED.faces,
					type = EXCLUDED.type,
					monthly_price = EXCLUDED.monthly_price
			`,
				b.ID,
				b.Code,
				b.Name,
				b.Municipality,
				b.Size,
				b.Level,
				b.Faces,
				b.Type,
				b.Status,
				b.MonthlyPrice,
				b.ContractID,
				b.RentEndDate,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(billboards), nil
}
