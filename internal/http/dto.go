package http

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/billboards/internal/customers"
	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/service"
)

type discountRequest struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type installmentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
}

type contractRequest struct {
	CustomerID       string               `json:"customer_id" binding:"required"`
	AdType           string               `json:"ad_type"`
	PricingCategory  string               `json:"pricing_category"`
	StartDate        string               `json:"start_date" binding:"required"`
	DurationMode     string               `json:"duration_mode"`
	DurationValue    int                  `json:"duration_value"`
	RentCost         decimal.Decimal      `json:"rent_cost"`
	Discount         discountRequest      `json:"discount"`
	OperatingFeeRate decimal.Decimal      `json:"operating_fee_rate"`
	BillboardIDs     []string             `json:"billboard_ids"`
	InstallmentCount int                  `json:"installment_count"`
	Installments     []installmentRequest `json:"installments"`
}

type paymentRequest struct {
	ContractID string          `json:"contract_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	EntryType  string          `json:"entry_type" binding:"required"`
	PaidAt     string          `json:"paid_at"`
	Notes      string          `json:"notes"`
}

type quoteRequest struct {
	Size          string `json:"size" binding:"required"`
	Level         string `json:"level"`
	Category      string `json:"category"`
	DurationMode  string `json:"duration_mode"`
	DurationValue int    `json:"duration_value"`
}

type installmentResponse struct {
	Index       int             `json:"index"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
}

type contractResponse struct {
	ID               uuid.UUID             `json:"id"`
	Number           int64                 `json:"number"`
	CustomerID       uuid.UUID             `json:"customer_id"`
	CustomerName     string                `json:"customer_name"`
	AdType           string                `json:"ad_type"`
	PricingCategory  string                `json:"pricing_category"`
	StartDate        string                `json:"start_date"`
	EndDate          string                `json:"end_date"`
	DurationMode     string                `json:"duration_mode"`
	DurationValue    int                   `json:"duration_value"`
	BaseRentTotal    decimal.Decimal       `json:"base_rent_total"`
	DiscountType     string                `json:"discount_type,omitempty"`
	DiscountValue    decimal.Decimal       `json:"discount_value"`
	OperatingFeeRate decimal.Decimal       `json:"operating_fee_rate"`
	OperatingFee     decimal.Decimal       `json:"operating_fee"`
	InstallationCost decimal.Decimal       `json:"installation_cost"`
	FinalTotal       decimal.Decimal       `json:"final_total"`
	BillboardIDs     []uuid.UUID           `json:"billboard_ids"`
	Installments     []installmentResponse `json:"installments"`
	Status           string                `json:"status,omitempty"`
	DaysRemaining    *int                  `json:"days_remaining,omitempty"`
	NearExpiry       bool                  `json:"near_expiry"`
}

type totalsResponse struct {
	BaseTotal          decimal.Decimal `json:"base_total"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TotalAfterDiscount decimal.Decimal `json:"total_after_discount"`
	RentalCostOnly     decimal.Decimal `json:"rental_cost_only"`
	InstallationCost   decimal.Decimal `json:"installation_cost"`
	FinalTotal         decimal.Decimal `json:"final_total"`
	OperatingFeeRate   decimal.Decimal `json:"operating_fee_rate"`
	OperatingFee       decimal.Decimal `json:"operating_fee"`
}

type quoteLineResponse struct {
	BillboardID uuid.UUID       `json:"billboard_id"`
	Code        string          `json:"code"`
	Size        string          `json:"size"`
	Level       string          `json:"level"`
	Price       decimal.Decimal `json:"price"`
	Source      string          `json:"source"`
}

type installationLineResponse struct {
	BillboardID uuid.UUID       `json:"billboard_id"`
	Code        string          `json:"code"`
	Size        string          `json:"size"`
	Faces       int             `json:"faces"`
	Price       decimal.Decimal `json:"price"`
	Found       bool            `json:"found"`
}

type previewResponse struct {
	Contract          contractResponse           `json:"contract"`
	EstimatedRent     decimal.Decimal            `json:"estimated_rent"`
	Quotes            []quoteLineResponse        `json:"quotes"`
	InstallationLines []installationLineResponse `json:"installation_lines"`
	Totals            totalsResponse             `json:"totals"`
	Missing           []uuid.UUID                `json:"missing_billboards"`
	Conflicts         []string                   `json:"conflicts"`
	Warning           string                     `json:"warning,omitempty"`
}

type balanceResponse struct {
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Invoiced  decimal.Decimal `json:"invoiced"`
	Remaining decimal.Decimal `json:"remaining"`
	Entries   int             `json:"entries"`
}

type paymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	ContractID *uuid.UUID      `json:"contract_id,omitempty"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	EntryType  string          `json:"entry_type"`
	PaidAt     string          `json:"paid_at"`
	Notes      string          `json:"notes,omitempty"`
}

type customerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Company  string    `json:"company,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Category string    `json:"category,omitempty"`
}

type groupResponse struct {
	Primary    customerResponse   `json:"primary"`
	Duplicates []customerResponse `json:"duplicates"`
}

func toContractResponse(c model.Contract) contractResponse {
	installments := make([]installmentResponse, 0, len(c.Installments))
	for _, inst := range c.Installments {
		installments = append(installments, installmentResponse{
			Index:       inst.Index,
			Amount:      inst.Amount,
			PaymentType: string(inst.PaymentType),
			Description: inst.Description,
			DueDate:     formatDate(inst.DueDate),
		})
	}
	ids := c.BillboardIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return contractResponse{
		ID:               c.ID,
		Number:           c.Number,
		CustomerID:       c.CustomerID,
		CustomerName:     c.CustomerName,
		AdType:           c.AdType,
		PricingCategory:  c.PricingCategory,
		StartDate:        formatDate(c.StartDate),
		EndDate:          formatDate(c.EndDate),
		DurationMode:     string(c.DurationMode),
		DurationValue:    c.DurationValue,
		BaseRentTotal:    c.BaseRentTotal,
		DiscountType:     string(c.Discount.Type),
		DiscountValue:    c.Discount.Value,
		OperatingFeeRate: c.OperatingFeeRate,
		OperatingFee:     c.OperatingFee,
		InstallationCost: c.InstallationCost,
		FinalTotal:       c.FinalTotal,
		BillboardIDs:     ids,
		Installments:     installments,
	}
}

func toViewResponse(view service.ContractView) contractResponse {
	resp := toContractResponse(view.Contract)
	days := view.DaysRemaining
	resp.Status = string(view.Status)
	resp.DaysRemaining = &days
	resp.NearExpiry = view.NearExpiry
	return resp
}

func toPreviewResponse(calc *service.Calculation) previewResponse {
	quotes := make([]quoteLineResponse, 0, len(calc.Estimate.Quotes))
	for _, q := range calc.Estimate.Quotes {
		quotes = append(quotes, quoteLineResponse{
			BillboardID: q.BillboardID,
			Code:        q.Code,
			Size:        q.Size,
			Level:       q.Level,
			Price:       q.Quote.Price,
			Source:      q.Quote.Source,
		})
	}
	lines := make([]installationLineResponse, 0, len(calc.Installation.Lines))
	for _, l := range calc.Installation.Lines {
		lines = append(lines, installationLineResponse{
			BillboardID: l.BillboardID,
			Code:        l.Code,
			Size:        l.Size,
			Faces:       l.Faces,
			Price:       l.Price,
			Found:       l.Found,
		})
	}
	missing := calc.Missing
	if missing == nil {
		missing = []uuid.UUID{}
	}
	conflicts := calc.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}

	resp := previewResponse{
		Contract:          toContractResponse(calc.Contract),
		EstimatedRent:     calc.Estimate.Total,
		Quotes:            quotes,
		InstallationLines: lines,
		Totals: totalsResponse{
			BaseTotal:          calc.Totals.BaseTotal,
			DiscountAmount:     calc.Totals.DiscountAmount,
			TotalAfterDiscount: calc.Totals.TotalAfterDiscount,
			RentalCostOnly:     calc.Totals.RentalCostOnly,
			InstallationCost:   calc.Totals.InstallationCost,
			FinalTotal:         calc.Totals.FinalTotal,
			OperatingFeeRate:   calc.Totals.OperatingFeeRate,
			OperatingFee:       calc.Totals.OperatingFee,
		},
		Missing:   missing,
		Conflicts: conflicts,
	}
	if calc.Warning != nil {
		resp.Warning = calc.Warning.Error()
	}
	return resp
}

func toBalanceResponse(b *ledger.Balance) balanceResponse {
	return balanceResponse{
		Total:     b.Total,
		Paid:      b.Paid,
		Invoiced:  b.Invoiced,
		Remaining: b.Remaining,
		Entries:   b.Entries,
	}
}

func toPaymentResponse(p *model.Payment) paymentResponse {
	resp := paymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		EntryType:  string(p.EntryType),
		PaidAt:     formatDate(p.PaidAt),
		Notes:      p.Notes,
	}
	if p.ContractID != uuid.Nil {
		id := p.ContractID
		resp.ContractID = &id
	}
	return resp
}

func toCustomerResponse(c model.Customer) customerResponse {
	return customerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Company:  c.Company,
		Phone:    c.Phone,
		Category: c.Category,
	}
}

func toGroupResponses(groups []customers.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		dups := make([]customerResponse, 0, len(g.Duplicates))
		for _, d := range g.Duplicates {
			dups = append(dups, toCustomerResponse(d))
		}
		out = append(out, groupResponse{Primary: toCustomerResponse(g.Primary), Duplicates: dups})
	}
	return out
}
