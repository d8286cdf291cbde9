package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
)

const paymentColumns = `
	id,
	COALESCE(contract_id, '00000000-0000-0000-0000-000000000000') AS contract_id,
	customer_id,
	amount,
	entry_type,
	paid_at,
	notes,
	COALESCE(created_by, '00000000-0000-0000-0000-000000000000') AS created_by,
	created_at
`

// PaymentRepository is append-only: entries are never updated or removed.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p model.Payment) (*model.Payment, error) {
	var contractID *uuid.UUID
	if p.ContractID != uuid.Nil {
		contractID = &p.ContractID
	}
	var saved model.Payment
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO payments (contract_id, customer_id, amount, entry_type, paid_at, notes, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+paymentColumns,
		contractID,
		p.CustomerID,
		p.Amount,
		p.EntryType,
		p.PaidAt,
		p.Notes,
		p.CreatedBy,
	).Scan(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PaymentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&payment).Error; err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE contract_id = ?
		ORDER BY paid_at ASC
	`, contractID).Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE customer_id = ?
			OR contract_id IN (SELECT id FROM contracts WHERE customer_id = ?)
		ORDER BY paid_at ASC
	`, customerID, customerID).Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
