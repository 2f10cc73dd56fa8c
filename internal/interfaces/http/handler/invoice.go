package handler

import (
	"context"

	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/gin-gonic/gin"
)

// invoiceService is the surface shared by the receivable and payable
// subledgers
type invoiceService interface {
	Add(ctx context.Context, req subledgerapp.AddInvoiceRequest) (*subledgerapp.InvoiceResponse, error)
	Settle(ctx context.Context, req subledgerapp.SettleInvoiceRequest) (*subledgerapp.InvoiceResponse, error)
	Outstanding(ctx context.Context, partyCode string) ([]subledgerapp.InvoiceResponse, error)
	Reconcile(ctx context.Context, partyCode, period string) (*subledgerapp.ReconciliationResponse, error)
}

// InvoiceHandler handles one party-facing subledger, mounted at prefix
// (receivables or payables)
type InvoiceHandler struct {
	BaseHandler
	prefix  string
	service invoiceService
}

// NewReceivableHandler creates the handler for the receivable subledger
func NewReceivableHandler(service *subledgerapp.ReceivableService) *InvoiceHandler {
	return &InvoiceHandler{prefix: "/receivables", service: service}
}

// NewPayableHandler creates the handler for the payable subledger
func NewPayableHandler(service *subledgerapp.PayableService) *InvoiceHandler {
	return &InvoiceHandler{prefix: "/payables", service: service}
}

// RegisterRoutes registers the subledger's routes under its prefix
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(h.prefix)
	group.POST("", h.Add)
	group.POST("/settle", h.Settle)
	group.GET("", h.Outstanding)
	group.GET("/reconciliation", h.Reconcile)
}

// Add records an invoice and posts its journal entries
func (h *InvoiceHandler) Add(c *gin.Context) {
	var req subledgerapp.AddInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Settle applies a settlement against an invoice
func (h *InvoiceHandler) Settle(c *gin.Context) {
	var req subledgerapp.SettleInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.Settle(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Outstanding lists a party's open invoices
func (h *InvoiceHandler) Outstanding(c *gin.Context) {
	party := c.Query("party")
	if party == "" {
		h.BadRequest(c, "party query parameter is required")
		return
	}

	invoices, err := h.service.Outstanding(c.Request.Context(), party)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoices)
}

// Reconcile compares the subledger against its control account
func (h *InvoiceHandler) Reconcile(c *gin.Context) {
	party := c.Query("party")
	period := c.Query("period")
	if party == "" || period == "" {
		h.BadRequest(c, "party and period query parameters are required")
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), party, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
