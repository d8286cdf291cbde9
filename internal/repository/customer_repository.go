package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, company, phone, category
		FROM customers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&customer).Error; err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

// List returns customers oldest first so the earliest record leads duplicate groups.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, company, phone, category
		FROM customers
		ORDER BY created_at ASC, id ASC
	`).Scan(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Merge moves contracts and ledger entries of the duplicates onto primary and
// deletes the duplicate records.
func (r *CustomerRepository) Merge(ctx context.Context, primary uuid.UUID, duplicates []uuid.UUID) error {
	if len(duplicates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE contracts SET customer_id = ? WHERE customer_id IN ?`, primary, duplicates).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE payments SET customer_id = ? WHERE customer_id IN ?`, primary, duplicates).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM customers WHERE id IN ?`, duplicates).Error
	})
}
