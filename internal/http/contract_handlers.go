package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/billboards/internal/model"
	"github.com/nurpe/billboards/internal/render"
	"github.com/nurpe/billboards/internal/service"
)

func (h *Handler) previewContract(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	input, ok := bindContract(c, principal)
	if !ok {
		return
	}
	calc, err := h.svc.Contracts.Preview(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPreviewResponse(calc))
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	input, ok := bindContract(c, principal)
	if !ok {
		return
	}
	view, err := h.svc.Contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toViewResponse(*view))
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	input, ok := bindContract(c, principal)
	if !ok {
		return
	}
	view, err := h.svc.Contracts.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponse(*view))
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.svc.Contracts.Get(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponse(*view))
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	customerID, nearExpiry, ok := contractFilter(c)
	if !ok {
		return
	}
	views, err := h.svc.Contracts.List(c.Request.Context(), service.ListContractsInput{
		CustomerID: customerID,
		NearExpiry: nearExpiry,
		Principal:  principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]contractResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toViewResponse(view))
	}
	c.JSON(http.StatusOK, gin.H{"contracts": out})
}

type distributeRequest struct {
	Count int `json:"count"`
}

func (h *Handler) distributeInstallments(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req distributeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	view, err := h.svc.Contracts.Distribute(c.Request.Context(), service.DistributeInput{
		ContractID: id,
		Count:      req.Count,
		Principal:  principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponse(*view))
}

type paymentTypeRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
}

func (h *Handler) changePaymentType(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	var req paymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.svc.Contracts.ChangePaymentType(c.Request.Context(), service.ChangePaymentTypeInput{
		ContractID:  id,
		Index:       index,
		PaymentType: req.PaymentType,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponse(*view))
}

func (h *Handler) contractDocument(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	kind, ok := render.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document kind"})
		return
	}
	html, err := h.svc.Documents.ContractHTML(c.Request.Context(), id, kind, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) contractPDF(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := h.svc.Documents.ContractPDF(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, "application/pdf", file)
}

func (h *Handler) exportContracts(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	customerID, nearExpiry, ok := contractFilter(c)
	if !ok {
		return
	}
	file, err := h.svc.Documents.ExportContracts(c.Request.Context(), service.ExportInput{
		CustomerID: customerID,
		NearExpiry: nearExpiry,
		Principal:  principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file)
}

func contractFilter(c *gin.Context) (*uuid.UUID, bool, bool) {
	var customerID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return nil, false, false
		}
		customerID = &id
	}
	nearExpiry := false
	if raw := strings.TrimSpace(c.Query("near_expiry")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid near_expiry"})
			return nil, false, false
		}
		nearExpiry = parsed
	}
	return customerID, nearExpiry, true
}

func bindContract(c *gin.Context, principal model.Principal) (service.ContractInput, bool) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ContractInput{}, false
	}
	input, err := req.toInput(principal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.ContractInput{}, false
	}
	return input, true
}

func (r contractRequest) toInput(principal model.Principal) (service.ContractInput, error) {
	customerID, err := uuid.Parse(strings.TrimSpace(r.CustomerID))
	if err != nil {
		return service.ContractInput{}, errors.New("invalid customer_id")
	}
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.ContractInput{}, errors.New("invalid start_date")
	}
	billboardIDs, err := parseIDs(r.BillboardIDs)
	if err != nil {
		return service.ContractInput{}, errors.New("invalid billboard_ids")
	}

	mode := model.DurationMode(strings.ToLower(strings.TrimSpace(r.DurationMode)))
	if mode == "" {
		mode = model.DurationMonths
	}

	var installments []model.Installment
	for i, row := range r.Installments {
		inst := model.Installment{
			Index:       i,
			Amount:      row.Amount,
			PaymentType: model.PaymentType(row.PaymentType),
			Description: row.Description,
		}
		if strings.TrimSpace(row.DueDate) != "" {
			due, err := parseDate(row.DueDate)
			if err != nil {
				return service.ContractInput{}, fmt.Errorf("invalid due_date for installment %d", i+1)
			}
			inst.DueDate = due
		}
		installments = append(installments, inst)
	}

	return service.ContractInput{
		CustomerID:      customerID,
		AdType:          strings.TrimSpace(r.AdType),
		PricingCategory: strings.TrimSpace(r.PricingCategory),
		StartDate:       start,
		DurationMode:    mode,
		DurationValue:   r.DurationValue,
		RentCost:        r.RentCost,
		Discount: model.Discount{
			Type:  model.DiscountType(strings.ToLower(strings.TrimSpace(r.Discount.Type))),
			Value: r.Discount.Value,
		},
		OperatingFeeRate: r.OperatingFeeRate,
		BillboardIDs:     billboardIDs,
		InstallmentCount: r.InstallmentCount,
		Installments:     installments,
		Principal:        principal,
	}, nil
}
