package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/billboards/internal/model"
)

type ContractFilter struct {
	CustomerID *uuid.UUID
	EndFrom    *time.Time
	EndTo      *time.Time
}

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID               uuid.UUID
	Number           int64
	CustomerID       uuid.UUID
	CustomerName     string
	AdType           string
	PricingCategory  string
	StartDate        time.Time
	EndDate          time.Time
	DurationMode     string
	DurationValue    int
	BaseRentTotal    decimal.Decimal
	DiscountType     string
	DiscountValue    decimal.Decimal
	OperatingFeeRate decimal.Decimal
	OperatingFee     decimal.Decimal
	InstallationCost decimal.Decimal
	FinalTotal       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type installmentRow struct {
	ContractID  uuid.UUID
	Idx         int
	Amount      decimal.Decimal
	PaymentType string
	Description string
	DueDate     time.Time
}

type linkRow struct {
	ContractID  uuid.UUID
	BillboardID uuid.UUID
}

const contractSelect = `
	SELECT
		c.id,
		c.number,
		c.customer_id,
		COALESCE(cu.name, '') AS customer_name,
		c.ad_type,
		c.pricing_category,
		c.start_date,
		c.end_date,
		c.duration_mode,
		c.duration_value,
		c.base_rent_total,
		c.discount_type,
		c.discount_value,
		c.operating_fee_rate,
		c.operating_fee,
		c.installation_cost,
		c.final_total,
		c.created_at,
		c.updated_at
	FROM contracts c
	LEFT JOIN customers cu ON cu.id = c.customer_id
`

func (row contractRow) toModel() model.Contract {
	return model.Contract{
		ID:              row.ID,
		Number:          row.Number,
		CustomerID:      row.CustomerID,
		CustomerName:    row.CustomerName,
		AdType:          row.AdType,
		PricingCategory: row.PricingCategory,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		DurationMode:    model.DurationMode(row.DurationMode),
		DurationValue:   row.DurationValue,
		BaseRentTotal:   row.BaseRentTotal,
		Discount: model.Discount{
			Type:  model.DiscountType(row.DiscountType),
			Value: row.DiscountValue,
		},
		OperatingFeeRate: row.OperatingFeeRate,
		OperatingFee:     row.OperatingFee,
		InstallationCost: row.InstallationCost,
		FinalTotal:       row.FinalTotal,
		BillboardIDs:     []uuid.UUID{},
		Installments:     []model.Installment{},
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func (r *ContractRepository) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var row contractRow
	if err := r.db.WithContext(ctx).Raw(contractSelect+` WHERE c.id = ? LIMIT 1`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	contracts := []model.Contract{row.toModel()}
	if err := r.attach(ctx, contracts); err != nil {
		return nil, err
	}
	return &contracts[0], nil
}

func (r *ContractRepository) List(ctx context.Context, filter ContractFilter) ([]model.Contract, error) {
	query := contractSelect
	var conditions []string
	var args []interface{}
	if filter.CustomerID != nil {
		conditions = append(conditions, "c.customer_id = ?")
		args = append(args, *filter.CustomerID)
	}
	if filter.EndFrom != nil {
		conditions = append(conditions, "c.end_date >= ?")
		args = append(args, *filter.EndFrom)
	}
	if filter.EndTo != nil {
		conditions = append(conditions, "c.end_date <= ?")
		args = append(args, *filter.EndTo)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.number DESC"

	var rows []contractRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, len(rows))
	for i, row := range rows {
		contracts[i] = row.toModel()
	}
	if err := r.attach(ctx, contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// attach loads billboard links and installments for a batch of contracts.
func (r *ContractRepository) attach(ctx context.Context, contracts []model.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(contracts))
	pos := make(map[uuid.UUID]int, len(contracts))
	for i, c := range contracts {
		ids[i] = c.ID
		pos[c.ID] = i
	}

	var links []linkRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT contract_id, billboard_id
		FROM contract_billboards
		WHERE contract_id IN ?
		ORDER BY billboard_id
	`, ids).Scan(&links).Error; err != nil {
		return err
	}
	for _, link := range links {
		i := pos[link.ContractID]
		contracts[i].BillboardIDs = append(contracts[i].BillboardIDs, link.BillboardID)
	}

	var installments []installmentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT contract_id, idx, amount, payment_type, description, due_date
		FROM installments
		WHERE contract_id IN ?
		ORDER BY contract_id, idx
	`, ids).Scan(&installments).Error; err != nil {
		return err
	}
	for _, row := range installments {
		i := pos[row.ContractID]
		contracts[i].Installments = append(contracts[i].Installments, model.Installment{
			Index:       row.Idx,
			Amount:      row.Amount,
			PaymentType: model.PaymentType(row.PaymentType),
			Description: row.Description,
			DueDate:     row.DueDate,
		})
	}
	return nil
}

func (r *ContractRepository) Create(ctx context.Context, c model.Contract, createdBy uuid.UUID) (*model.Contract, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var saved struct {
			ID        uuid.UUID
			Number    int64
			CreatedAt time.Time
			UpdatedAt time.Time
		}
		err := tx.Raw(`
			INSERT INTO contracts (
				customer_id,
				ad_type,
				pricing_category,
				start_date,
				end_date,
				duration_mode,
				duration_value,
				base_rent_total,
				discount_type,
				discount_value,
				operating_fee_rate,
				operating_fee,
				installation_cost,
				final_total,
				created_by
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, number, created_at, updated_at
		`,
			c.CustomerID,
			c.AdType,
			c.PricingCategory,
			c.StartDate,
			c.EndDate,
			c.DurationMode,
			c.DurationValue,
			c.BaseRentTotal,
			c.Discount.Type,
			c.Discount.Value,
			c.OperatingFeeRate,
			c.OperatingFee,
			c.InstallationCost,
			c.FinalTotal,
			createdBy,
		).Scan(&saved).Error
		if err != nil {
			return err
		}
		c.ID = saved.ID
		c.Number = saved.Number
		c.CreatedAt = saved.CreatedAt
		c.UpdatedAt = saved.UpdatedAt

		if err := insertLinks(tx, c.ID, c.BillboardIDs); err != nil {
			return err
		}
		if err := replaceInstallments(tx, c.ID, c.Installments); err != nil {
			return err
		}
		return linkBillboards(tx, c.ID, c.EndDate, c.BillboardIDs)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update rewrites the contract, its links and installments. Billboards in
// released are freed only if they still point at this contract.
func (r *ContractRepository) Update(ctx context.Context, c model.Contract, released []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE contracts
			SET
				customer_id = ?,
				ad_type = ?,
				pricing_category = ?,
				start_date = ?,
				end_date = ?,
				duration_mode = ?,
				duration_value = ?,
				base_rent_total = ?,
				discount_type = ?,
				discount_value = ?,
				operating_fee_rate = ?,
				operating_fee = ?,
				installation_cost = ?,
				final_total = ?,
				updated_at = NOW()
			WHERE id = ?
		`,
			c.CustomerID,
			c.AdType,
			c.PricingCategory,
			c.StartDate,
			c.EndDate,
			c.DurationMode,
			c.DurationValue,
			c.BaseRentTotal,
			c.Discount.Type,
			c.Discount.Value,
			c.OperatingFeeRate,
			c.OperatingFee,
			c.InstallationCost,
			c.FinalTotal,
			c.ID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`DELETE FROM contract_billboards WHERE contract_id = ?`, c.ID).Error; err != nil {
			return err
		}
		if err := insertLinks(tx, c.ID, c.BillboardIDs); err != nil {
			return err
		}
		if err := replaceInstallments(tx, c.ID, c.Installments); err != nil {
			return err
		}
		if len(released) > 0 {
			if err := tx.Exec(`
				UPDATE billboards
				SET status = 'available', contract_id = NULL, rent_end_date = NULL
				WHERE id IN ? AND contract_id = ?
			`, released, c.ID).Error; err != nil {
				return err
			}
		}
		return linkBillboards(tx, c.ID, c.EndDate, c.BillboardIDs)
	})
}

func (r *ContractRepository) ReplaceInstallments(ctx context.Context, contractID uuid.UUID, installments []model.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceInstallments(tx, contractID, installments)
	})
}

// EndDates returns the end date of each existing contract among ids.
func (r *ContractRepository) EndDates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	result := make(map[uuid.UUID]time.Time, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []struct {
		ID      uuid.UUID
		EndDate time.Time
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, end_date FROM contracts WHERE id IN ?
	`, ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row.EndDate
	}
	return result, nil
}

func insertLinks(tx *gorm.DB, contractID uuid.UUID, billboardIDs []uuid.UUID) error {
	for _, billboardID := range billboardIDs {
		if err := tx.Exec(`
			INSERT INTO contract_billboards (contract_id, billboard_id)
			VALUES (?, ?)
			ON CONFLICT DO NOTHING
		`, contractID, billboardID).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceInstallments(tx *gorm.DB, contractID uuid.UUID, installments []model.Installment) error {
	if err := tx.Exec(`DELETE FROM installments WHERE contract_id = ?`, contractID).Error; err != nil {
		return err
	}
	for i, inst := range installments {
		if err := tx.Exec(`
			INSERT INTO installments (contract_id, idx, amount, payment_type, description, due_date)
			VALUES (?, ?, ?, ?, ?, ?)
		`, contractID, i, inst.Amount, inst.PaymentType, inst.Description, inst.DueDate).Error; err != nil {
			return err
		}
	}
	return nil
}

func linkBillboards(tx *gorm.DB, contractID uuid.UUID, endDate time.Time, billboardIDs []uuid.UUID) error {
	if len(billboardIDs) == 0 {
		return nil
	}
	return tx.Exec(`
		UPDATE billboards
		SET status = 'rented', contract_id = ?, rent_end_date = ?
		WHERE id IN ?
	`, contractID, endDate, billboardIDs).Error
}
