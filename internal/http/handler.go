package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/billboards/internal/appstate"
	"github.com/nurpe/billboards/internal/customers"
	"github.com/nurpe/billboards/internal/http/middleware"
	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/pricing"
	"github.com/nurpe/billboards/internal/render"
	"github.com/nurpe/billboards/internal/schedule"
	"github.com/nurpe/billboards/internal/service"
)

type OptionsAPI interface {
	Get(ctx context.Context, principal model.Principal) (appstate.Snapshot, error)
	Refresh(ctx context.Context, principal model.Principal) (appstate.Snapshot, error)
}

type PricingAPI interface {
	Quote(ctx context.Context, input service.QuoteInput) (*pricing.Quote, error)
	ImportPriceList(ctx context.Context, r io.Reader, principal model.Principal) (*service.ImportResult, error)
}

type BillboardAPI interface {
	Import(ctx context.Context, records []map[string]any, principal model.Principal) (*service.ImportResult, error)
}

type ContractAPI interface {
	Preview(ctx context.Context, input service.ContractInput) (*service.Calculation, error)
	Create(ctx context.Context, input service.ContractInput) (*service.ContractView, error)
	Update(ctx context.Context, id uuid.UUID, input service.ContractInput) (*service.ContractView, error)
	Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*service.ContractView, error)
	List(ctx context.Context, input service.ListContractsInput) ([]service.ContractView, error)
	Distribute(ctx context.Context, input service.DistributeInput) (*service.ContractView, error)
	ChangePaymentType(ctx context.Context, input service.ChangePaymentTypeInput) (*service.ContractView, error)
}

type PaymentAPI interface {
	Record(ctx context.Context, input service.RecordPaymentInput) (*model.Payment, error)
	Balance(ctx context.Context, contractID uuid.UUID, principal model.Principal) (*ledger.Balance, error)
	CustomerBalance(ctx context.Context, customerID uuid.UUID, principal model.Principal) (*ledger.Balance, error)
}

type DocumentAPI interface {
	ContractHTML(ctx context.Context, id uuid.UUID, kind render.Kind, principal model.Principal) (string, error)
	ContractPDF(ctx context.Context, id uuid.UUID, principal model.Principal) (*service.FileResult, error)
	Receipt(ctx context.Context, paymentID uuid.UUID, principal model.Principal) (string, error)
	ExportContracts(ctx context.Context, input service.ExportInput) (*service.FileResult, error)
}

type CustomerAPI interface {
	Duplicates(ctx context.Context, principal model.Principal) ([]customers.Group, error)
	Merge(ctx context.Context, input service.MergeInput) error
}

type CleanupAPI interface {
	RunNow(ctx context.Context, principal model.Principal) (*service.SweepResult, error)
}

type Services struct {
	Options    OptionsAPI
	Pricing    PricingAPI
	Billboards BillboardAPI
	Contracts  ContractAPI
	Payments   PaymentAPI
	Documents  DocumentAPI
	Customers  CustomerAPI
	Cleanup    CleanupAPI
}

type Handler struct {
	svc Services
	log zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{svc: services, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/options", h.getOptions)
	protected.POST("/options/refresh", h.refreshOptions)

	protected.POST("/pricing/quote", h.quote)
	protected.POST("/pricing/import", h.importPriceList)
	protected.POST("/billboards/import", h.importBillboards)

	protected.POST("/contracts/preview", h.previewContract)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/export", h.exportContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.POST("/contracts/:id/installments/distribute", h.distributeInstallments)
	protected.PATCH("/contracts/:id/installments/:index", h.changePaymentType)
	protected.GET("/contracts/:id/documents/:kind", h.contractDocument)
	protected.GET("/contracts/:id/pdf", h.contractPDF)
	protected.GET("/contracts/:id/balance", h.contractBalance)

	protected.POST("/payments", h.recordPayment)
	protected.GET("/payments/:id/receipt", h.receipt)

	protected.GET("/customers/duplicates", h.customerDuplicates)
	protected.POST("/customers/merge", h.mergeCustomers)
	protected.GET("/customers/:id/balance", h.customerBalance)

	protected.POST("/cleanup/run", h.runCleanup)
}

func (h *Handler) getOptions(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	snapshot, err := h.svc.Options.Get(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) refreshOptions(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	snapshot, err := h.svc.Options.Refresh(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) importBillboards(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var records []map[string]any
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.svc.Billboards.Import(c.Request.Context(), records, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) customerDuplicates(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	groups, err := h.svc.Customers.Duplicates(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": toGroupResponses(groups)})
}

type mergeCustomersRequest struct {
	PrimaryID    string   `json:"primary_id" binding:"required"`
	DuplicateIDs []string `json:"duplicate_ids" binding:"required"`
}

func (h *Handler) mergeCustomers(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req mergeCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	primary, err := uuid.Parse(strings.TrimSpace(req.PrimaryID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid primary_id"})
		return
	}
	duplicates, err := parseIDs(req.DuplicateIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duplicate_ids"})
		return
	}

	if err := h.svc.Customers.Merge(c.Request.Context(), service.MergeInput{
		PrimaryID:    primary,
		DuplicateIDs: duplicates,
		Principal:    principal,
	}); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) runCleanup(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	result, err := h.svc.Cleanup.RunNow(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrSweepRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "details": verr.Details})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func principalOrAbort(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"02/01/2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func sendFile(c *gin.Context, contentType string, file *service.FileResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	c.Data(http.StatusOK, contentType, file.Content)
}
