package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/service"
)

const maxPriceListSize = 10 << 20

func (h *Handler) quote(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote, err := h.svc.Pricing.Quote(c.Request.Context(), service.QuoteInput{
		Size:          req.Size,
		Level:         req.Level,
		Category:      req.Category,
		DurationMode:  model.DurationMode(strings.ToLower(strings.TrimSpace(req.DurationMode))),
		DurationValue: req.DurationValue,
		Principal:     principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": quote.Price, "source": quote.Source})
}

func (h *Handler) importPriceList(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxPriceListSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer file.Close()

	result, err := h.svc.Pricing.ImportPriceList(c.Request.Context(), file, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) recordPayment(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.RecordPaymentInput{
		Amount:    req.Amount,
		EntryType: model.EntryType(strings.ToLower(strings.TrimSpace(req.EntryType))),
		Notes:     strings.TrimSpace(req.Notes),
		Principal: principal,
	}
	if raw := strings.TrimSpace(req.ContractID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
			return
		}
		input.ContractID = &id
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		input.CustomerID = id
	}
	if raw := strings.TrimSpace(req.PaidAt); raw != "" {
		paidAt, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid_at"})
			return
		}
		input.PaidAt = paidAt
	}

	payment, err := h.svc.Payments.Record(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

func (h *Handler) receipt(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	html, err := h.svc.Documents.Receipt(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) contractBalance(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	balance, err := h.svc.Payments.Balance(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalanceResponse(balance))
}

func (h *Handler) customerBalance(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	balance, err := h.svc.Payments.CustomerBalance(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBalanceResponse(balance))
}
