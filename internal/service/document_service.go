package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nurpe/billboards/internal/excel"
	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/pricing"
	"github.com/nurpe/billboards/internal/render"
	"github.com/nurpe/billboards/internal/repository"
)

type HTMLRenderer interface {
	RenderContract(kind render.Kind, doc render.ContractDocument) (string, error)
	RenderReceipt(doc render.ReceiptDocument) (string, error)
}

type PDFGenerator interface {
	Generate(doc render.ContractDocument) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(report excel.ContractsReport) ([]byte, error)
}

type FileResult struct {
	FileName string
	Content  []byte
}

type DocumentService struct {
	contracts      ContractStore
	billboards     BillboardStore
	customers      CustomerStore
	payments       PaymentStore
	prices         PriceSource
	html           HTMLRenderer
	pdf            PDFGenerator
	excel          ExcelGenerator
	company        render.Company
	nearExpiryDays int
	now            func() time.Time
}

type DocumentDeps struct {
	Contracts  ContractStore
	Billboards BillboardStore
	Customers  CustomerStore
	Payments   PaymentStore
	Prices     PriceSource
	HTML       HTMLRenderer
	PDF        PDFGenerator
	Excel      ExcelGenerator
}

func NewDocumentService(deps DocumentDeps, company render.Company, nearExpiryDays int) *DocumentService {
	return &DocumentService{
		contracts:      deps.Contracts,
		billboards:     deps.Billboards,
		customers:      deps.Customers,
		payments:       deps.Payments,
		prices:         deps.Prices,
		html:           deps.HTML,
		pdf:            deps.PDF,
		excel:          deps.Excel,
		company:        company,
		nearExpiryDays: nearExpiryDays,
		now:            time.Now,
	}
}

func (s *DocumentService) ContractHTML(ctx context.Context, id uuid.UUID, kind render.Kind, principal model.Principal) (string, error) {
	if !principal.CanRead() {
		return "", ErrPermissionDenied
	}
	if kind == render.KindReceipt {
		return "", fmt.Errorf("%w: receipts are printed from a payment", ErrInvalidInput)
	}
	doc, err := s.contractDocument(ctx, id)
	if err != nil {
		return "", err
	}
	return s.html.RenderContract(kind, *doc)
}

func (s *DocumentService) ContractPDF(ctx context.Context, id uuid.UUID, principal model.Principal) (*FileResult, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	doc, err := s.contractDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("contract_%d.pdf", doc.Contract.Number),
		Content:  content,
	}, nil
}

func (s *DocumentService) Receipt(ctx context.Context, paymentID uuid.UUID, principal model.Principal) (string, error) {
	if !principal.CanRead() {
		return "", ErrPermissionDenied
	}
	payment, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return "", notFound(err)
	}
	customer, err := s.customers.Get(ctx, payment.CustomerID)
	if err != nil {
		return "", notFound(err)
	}

	doc := render.ReceiptDocument{
		Company:  s.company,
		Payment:  *payment,
		Customer: *customer,
		IssuedAt: s.now(),
	}
	if payment.ContractID != uuid.Nil {
		c, err := s.contracts.Get(ctx, payment.ContractID)
		if err != nil {
			return "", notFound(err)
		}
		entries, err := s.payments.ListByContract(ctx, c.ID)
		if err != nil {
			return "", err
		}
		balance := ledger.ContractBalance(*c, entries)
		doc.Contract = c
		doc.Balance = &balance
	}
	return s.html.RenderReceipt(doc)
}

type ExportInput struct {
	CustomerID *uuid.UUID
	NearExpiry bool
	Principal  model.Principal
}

func (s *DocumentService) ExportContracts(ctx context.Context, input ExportInput) (*FileResult, error) {
	if !input.Principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	now := s.now()
	filter := repository.ContractFilter{CustomerID: input.CustomerID}
	if input.NearExpiry {
		from := model.DateOnly(now)
		to := from.AddDate(0, 0, s.nearExpiryDays)
		filter.EndFrom = &from
		filter.EndTo = &to
	}
	contracts, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ledgers := make([][]model.Payment, len(contracts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range contracts {
		g.Go(func() error {
			entries, err := s.payments.ListByContract(gctx, contracts[i].ID)
			if err != nil {
				return err
			}
			ledgers[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := excel.ContractsReport{
		Currency:       s.company.Currency,
		Now:            now,
		NearExpiryDays: s.nearExpiryDays,
		Rows:           make([]excel.ContractRow, 0, len(contracts)),
	}
	for i, c := range contracts {
		report.Rows = append(report.Rows, excel.ContractRow{
			Contract: c,
			Balance:  ledger.ContractBalance(c, ledgers[i]),
		})
		report.Payments = append(report.Payments, ledgers[i]...)
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("contracts_%s.xlsx", now.Format("20060102")),
		Content:  content,
	}, nil
}

func (s *DocumentService) contractDocument(ctx context.Context, id uuid.UUID) (*render.ContractDocument, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	customer, err := s.customers.Get(ctx, c.CustomerID)
	if err != nil {
		return nil, notFound(err)
	}
	billboards, err := s.billboards.ListByIDs(ctx, c.BillboardIDs)
	if err != nil {
		return nil, err
	}
	tables, err := s.prices.Tables(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.payments.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Billboard, len(billboards))
	for _, b := range billboards {
		byID[b.ID] = b
	}
	ordered := make([]model.Billboard, 0, len(c.BillboardIDs))
	for _, billboardID := range c.BillboardIDs {
		if b, ok := byID[billboardID]; ok {
			ordered = append(ordered, b)
		}
	}

	estimate := tables.Resolver.EstimateRent(ordered, c.PricingCategory, pricing.Duration{
		Mode:  c.DurationMode,
		Value: c.DurationValue,
	})
	lines := make([]render.BillboardLine, len(ordered))
	for i, b := range ordered {
		lines[i] = render.BillboardLine{
			Code:              b.Code,
			Name:              b.Name,
			Municipality:      b.Municipality,
			Size:              b.Size,
			Level:             b.Level,
			Faces:             b.Faces,
			Type:              b.Type,
			RentPrice:         estimate.Quotes[i].Quote.Price,
			InstallationPrice: tables.Installation.Price(b.Size, b.Faces).OrZero(),
		}
	}

	// Stored totals are authoritative; recomputing from them only fills in the
	// derived discount and rental lines.
	totals := pricing.CalculateTotals(pricing.TotalsInput{
		RentCost:         c.BaseRentTotal,
		EstimatedTotal:   c.BaseRentTotal,
		Discount:         c.Discount,
		InstallationCost: c.InstallationCost,
		OperatingFeeRate: c.OperatingFeeRate,
	})

	return &render.ContractDocument{
		Company:  s.company,
		Contract: *c,
		Customer: *customer,
		Lines:    lines,
		Totals:   totals,
		Balance:  ledger.ContractBalance(*c, entries),
		IssuedAt: s.now(),
	}, nil
}
