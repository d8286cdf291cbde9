package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/config"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/normalize"
	"github.com/nurpe/billboards/internal/pricing"
	"github.com/nurpe/billboards/internal/repository"
	"github.com/nurpe/billboards/internal/schedule"
)

type PriceSource interface {
	Tables(ctx context.Context) (Tables, error)
}

type ContractService struct {
	contracts  ContractStore
	billboards BillboardStore
	customers  CustomerStore
	prices     PriceSource
	cfg        config.ContractsConfig
	validate   *validator.Validate
	now        func() time.Time
}

func NewContractService(
	contracts ContractStore,
	billboards BillboardStore,
	customers CustomerStore,
	prices PriceSource,
	cfg config.ContractsConfig,
) *ContractService {
	return &ContractService{
		contracts:  contracts,
		billboards: billboards,
		customers:  customers,
		prices:     prices,
		cfg:        cfg,
		validate:   validator.New(),
		now:        time.Now,
	}
}

type ContractInput struct {
	CustomerID       uuid.UUID          `validate:"required"`
	AdType           string             `validate:"max=200"`
	PricingCategory  string             `validate:"max=50"`
	StartDate        time.Time          `validate:"required"`
	DurationMode     model.DurationMode `validate:"required,oneof=months days"`
	DurationValue    int                `validate:"min=1,max=3660"`
	RentCost         decimal.Decimal
	Discount         model.Discount
	OperatingFeeRate decimal.Decimal
	BillboardIDs     []uuid.UUID `validate:"required,min=1,dive,required"`
	// InstallmentCount > 0 asks for an even schedule; explicit Installments win over it.
	InstallmentCount int `validate:"min=0"`
	Installments     []model.Installment
	Principal        model.Principal `validate:"-"`
}

// Calculation is everything derived from a contract input before it is saved.
type Calculation struct {
	Contract     model.Contract
	Billboards   []model.Billboard
	Missing      []uuid.UUID
	Estimate     pricing.Estimate
	Installation pricing.InstallationCost
	Totals       pricing.Totals
	Conflicts    []string
	// Warning is the installment check result: preview reports it, saving rejects it.
	Warning error
}

type ContractView struct {
	model.Contract
	Status        model.ContractStatus
	DaysRemaining int
	NearExpiry    bool
}

type ListContractsInput struct {
	CustomerID *uuid.UUID
	NearExpiry bool
	Principal  model.Principal
}

type DistributeInput struct {
	ContractID uuid.UUID
	// Count of zero keeps the current number of installments.
	Count     int
	Principal model.Principal
}

type ChangePaymentTypeInput struct {
	ContractID  uuid.UUID
	Index       int
	PaymentType string
	Principal   model.Principal
}

func (s *ContractService) Preview(ctx context.Context, input ContractInput) (*Calculation, error) {
	if !input.Principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	calc, err := s.calculate(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if calc.Conflicts, err = s.conflicts(ctx, calc.Billboards, uuid.Nil); err != nil {
		return nil, err
	}
	return calc, nil
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (*ContractView, error) {
	if !input.Principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	calc, err := s.calculate(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.checkSavable(ctx, calc, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.contracts.Create(ctx, calc.Contract, input.Principal.UserID)
	if err != nil {
		return nil, err
	}
	return s.view(*created), nil
}

// Update recomputes the contract from input. Billboards dropped from the
// contract are released; added ones are linked.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, input ContractInput) (*ContractView, error) {
	if !input.Principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	existing, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	calc, err := s.calculate(ctx, input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.checkSavable(ctx, calc, id); err != nil {
		return nil, err
	}

	var released []uuid.UUID
	for _, billboardID := range existing.BillboardIDs {
		if !calc.Contract.HasBillboard(billboardID) {
			released = append(released, billboardID)
		}
	}
	if err := s.contracts.Update(ctx, calc.Contract, released); err != nil {
		return nil, notFound(err)
	}
	return s.get(ctx, id)
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*ContractView, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	return s.get(ctx, id)
}

func (s *ContractService) List(ctx context.Context, input ListContractsInput) ([]ContractView, error) {
	if !input.Principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	filter := repository.ContractFilter{CustomerID: input.CustomerID}
	if input.NearExpiry {
		from := model.DateOnly(s.now())
		to := from.AddDate(0, 0, s.cfg.NearExpiryDays)
		filter.EndFrom = &from
		filter.EndTo = &to
	}

	contracts, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]ContractView, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, *s.view(c))
	}
	return views, nil
}

// Distribute rebuilds the schedule over the contract total. Keeping the count
// keeps each installment's payment type; a new count starts a fresh schedule.
func (s *ContractService) Distribute(ctx context.Context, input DistributeInput) (*ContractView, error) {
	if !input.Principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	c, err := s.contracts.Get(ctx, input.ContractID)
	if err != nil {
		return nil, notFound(err)
	}

	var installments []model.Installment
	switch {
	case len(c.Installments) > 0 && (input.Count == 0 || input.Count == len(c.Installments)):
		installments, err = schedule.Redistribute(c.Installments, c.FinalTotal, c.StartDate, c.EndDate)
	default:
		count := input.Count
		if count == 0 {
			count = 1
		}
		installments, err = schedule.Even(c.FinalTotal, count, s.cfg.MaxInstallments, c.StartDate, c.EndDate)
	}
	if err != nil {
		return nil, scheduleError(err)
	}

	if err := s.contracts.ReplaceInstallments(ctx, c.ID, installments); err != nil {
		return nil, err
	}
	c.Installments = installments
	return s.view(*c), nil
}

func (s *ContractService) ChangePaymentType(ctx context.Context, input ChangePaymentTypeInput) (*ContractView, error) {
	if !input.Principal.CanSell() {
		return nil, ErrPermissionDenied
	}
	pt, err := schedule.ParsePaymentType(input.PaymentType)
	if err != nil {
		return nil, scheduleError(err)
	}
	c, err := s.contracts.Get(ctx, input.ContractID)
	if err != nil {
		return nil, notFound(err)
	}

	installments, err := schedule.Retype(c.Installments, input.Index, pt, c.StartDate, c.EndDate)
	if err != nil {
		return nil, scheduleError(err)
	}
	if err := s.contracts.ReplaceInstallments(ctx, c.ID, installments); err != nil {
		return nil, err
	}
	c.Installments = installments
	return s.view(*c), nil
}

func (s *ContractService) get(ctx context.Context, id uuid.UUID) (*ContractView, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.view(*c), nil
}

func (s *ContractService) view(c model.Contract) *ContractView {
	now := s.now()
	return &ContractView{
		Contract:      c,
		Status:        c.Status(now),
		DaysRemaining: c.DaysRemaining(now),
		NearExpiry:    c.NearExpiry(now, s.cfg.NearExpiryDays),
	}
}

func (s *ContractService) calculate(ctx context.Context, input ContractInput, existing *model.Contract) (*Calculation, error) {
	if input.DurationMode == "" {
		input.DurationMode = model.DurationMonths
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateAmounts(input); err != nil {
		return nil, err
	}

	customer, err := s.customers.Get(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s does not exist", ErrInvalidInput, input.CustomerID)
		}
		return nil, err
	}

	ids := uniqueIDs(input.BillboardIDs)
	found, err := s.billboards.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Billboard, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	calc := &Calculation{}
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			calc.Missing = append(calc.Missing, id)
			continue
		}
		calc.Billboards = append(calc.Billboards, b)
	}

	tables, err := s.prices.Tables(ctx)
	if err != nil {
		return nil, err
	}

	start := model.DateOnly(input.StartDate)
	end := model.EndFor(start, input.DurationMode, input.DurationValue)
	category := normalize.Category(input.PricingCategory)
	if input.PricingCategory == "" && customer.Category != "" {
		category = normalize.Category(customer.Category)
	}

	calc.Estimate = tables.Resolver.EstimateRent(calc.Billboards, category, pricing.Duration{
		Mode:  input.DurationMode,
		Value: input.DurationValue,
	})
	calc.Installation = tables.Installation.Aggregate(ids, byID)
	calc.Totals = pricing.CalculateTotals(pricing.TotalsInput{
		RentCost:         input.RentCost,
		EstimatedTotal:   calc.Estimate.Total,
		Discount:         input.Discount,
		InstallationCost: calc.Installation.Total,
		OperatingFeeRate: input.OperatingFeeRate,
	})

	c := model.Contract{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		AdType:           strings.TrimSpace(input.AdType),
		PricingCategory:  category,
		StartDate:        start,
		EndDate:          end,
		DurationMode:     input.DurationMode,
		DurationValue:    input.DurationValue,
		BaseRentTotal:    calc.Totals.BaseTotal,
		Discount:         input.Discount,
		OperatingFeeRate: calc.Totals.OperatingFeeRate,
		OperatingFee:     calc.Totals.OperatingFee,
		InstallationCost: calc.Totals.InstallationCost,
		FinalTotal:       calc.Totals.FinalTotal,
		BillboardIDs:     ids,
	}
	if existing != nil {
		c.ID = existing.ID
		c.Number = existing.Number
		c.CreatedAt = existing.CreatedAt
	}

	c.Installments, err = s.installments(input, existing, c.FinalTotal, start, end)
	if err != nil {
		return nil, err
	}
	calc.Contract = c
	calc.Warning = schedule.Validate(c.Installments, c.FinalTotal, s.cfg.SumTolerance)
	return calc, nil
}

func (s *ContractService) installments(input ContractInput, existing *model.Contract, total decimal.Decimal, start, end time.Time) ([]model.Installment, error) {
	switch {
	case len(input.Installments) > 0:
		if len(input.Installments) > s.cfg.MaxInstallments {
			return nil, fmt.Errorf("%w: at most %d installments", ErrInvalidInput, s.cfg.MaxInstallments)
		}
		rows := make([]model.Installment, len(input.Installments))
		for i, row := range input.Installments {
			if row.PaymentType != "" {
				pt, err := schedule.ParsePaymentType(string(row.PaymentType))
				if err != nil {
					return nil, scheduleError(err)
				}
				row.PaymentType = pt
			}
			rows[i] = row
		}
		return schedule.Normalize(rows, start, end), nil
	case input.InstallmentCount > 0:
		installments, err := schedule.Even(total, input.InstallmentCount, s.cfg.MaxInstallments, start, end)
		return installments, scheduleError(err)
	case existing != nil && len(existing.Installments) > 0:
		installments, err := schedule.Redistribute(existing.Installments, total, start, end)
		return installments, scheduleError(err)
	}
	installments, err := schedule.Even(total, 1, s.cfg.MaxInstallments, start, end)
	return installments, scheduleError(err)
}

// checkSavable turns preview findings into errors: unknown billboards,
// unavailable billboards and an unbalanced schedule all block a save.
func (s *ContractService) checkSavable(ctx context.Context, calc *Calculation, self uuid.UUID) error {
	if len(calc.Missing) > 0 {
		return fmt.Errorf("%w: unknown billboards %v", ErrInvalidInput, calc.Missing)
	}
	conflicts, err := s.conflicts(ctx, calc.Billboards, self)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: %s", ErrConflict, strings.Join(conflicts, "; "))
	}
	return calc.Warning
}

// conflicts lists billboards that cannot be booked: under maintenance, or
// linked to another contract that has not ended yet.
func (s *ContractService) conflicts(ctx context.Context, billboards []model.Billboard, self uuid.UUID) ([]string, error) {
	var messages []string
	var others []uuid.UUID
	for _, b := range billboards {
		if b.Status == model.BillboardStatusMaintenance {
			messages = append(messages, fmt.Sprintf("billboard %s is under maintenance", b.Code))
			continue
		}
		if b.Linked() && *b.ContractID != self {
			others = append(others, *b.ContractID)
		}
	}
	if len(others) == 0 {
		return messages, nil
	}

	ends, err := s.contracts.EndDates(ctx, uniqueIDs(others))
	if err != nil {
		return nil, err
	}
	today := model.DateOnly(s.now())
	for _, b := range billboards {
		if !b.Linked() || *b.ContractID == self || b.Status == model.BillboardStatusMaintenance {
			continue
		}
		end, ok := ends[*b.ContractID]
		if ok && !model.DateOnly(end).Before(today) {
			messages = append(messages, fmt.Sprintf("billboard %s is rented until %s", b.Code, end.Format("2006-01-02")))
		}
	}
	return messages, nil
}

func validateAmounts(input ContractInput) error {
	switch input.Discount.Type {
	case "", model.DiscountPercent, model.DiscountAmount:
	default:
		return fmt.Errorf("%w: discount type must be percent or amount", ErrInvalidInput)
	}
	if input.Discount.Value.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if input.RentCost.IsNegative() {
		return fmt.Errorf("%w: rent cost must not be negative", ErrInvalidInput)
	}
	if input.OperatingFeeRate.IsNegative() || input.OperatingFeeRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: operating fee rate must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

func scheduleError(err error) error {
	if err == nil {
		return nil
	}
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
