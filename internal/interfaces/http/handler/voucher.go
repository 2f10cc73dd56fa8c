package handler

import (
	"context"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VoucherHandler handles voucher API endpoints
type VoucherHandler struct {
	BaseHandler
	vouchers *ledgerapp.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(vouchers *ledgerapp.VoucherService) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers}
}

// RegisterRoutes registers voucher routes
func (h *VoucherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vouchers", h.Record)
	rg.GET("/vouchers", h.ListByPeriod)
	rg.GET("/vouchers/:id", h.Get)
	rg.POST("/vouchers/:id/review", h.Review)
	rg.POST("/vouchers/:id/confirm", h.Confirm)
	rg.POST("/vouchers/:id/reject", h.Reject)
}

// Record creates a voucher in DRAFT state
func (h *VoucherHandler) Record(c *gin.Context) {
	var req ledgerapp.RecordVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	voucher, err := h.vouchers.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, voucher)
}

// Get returns one voucher with its entries
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	voucher, err := h.vouchers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ListByPeriod returns all vouchers recorded in a period
func (h *VoucherHandler) ListByPeriod(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "period query parameter is required")
		return
	}

	vouchers, err := h.vouchers.ListByPeriod(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vouchers)
}

// Review moves a draft voucher to REVIEWED
func (h *VoucherHandler) Review(c *gin.Context) {
	h.transition(c, h.vouchers.Review)
}

// Confirm posts a reviewed voucher to the balance ledger
func (h *VoucherHandler) Confirm(c *gin.Context) {
	h.transition(c, h.vouchers.Confirm)
}

// Reject moves a draft or reviewed voucher to its terminal REJECTED state
func (h *VoucherHandler) Reject(c *gin.Context) {
	h.transition(c, h.vouchers.Reject)
}

func (h *VoucherHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*ledgerapp.VoucherResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID format")
		return
	}

	voucher, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}
