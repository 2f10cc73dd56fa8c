package handler

import (
	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles FIFO inventory API endpoints
type InventoryHandler struct {
	BaseHandler
	inventory *subledgerapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory *subledgerapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	group.POST("/in", h.In)
	group.POST("/out", h.Out)
	group.GET("/lots", h.Lots)
	group.GET("/reconciliation", h.Reconcile)
}

// In records an inbound lot
func (h *InventoryHandler) In(c *gin.Context) {
	var req subledgerapp.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lot, err := h.inventory.In(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, lot)
}

// Out issues stock at FIFO cost
func (h *InventoryHandler) Out(c *gin.Context) {
	var req subledgerapp.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventory.Out(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Lots lists a SKU's unconsumed lots in FIFO order
func (h *InventoryHandler) Lots(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		h.BadRequest(c, "sku query parameter is required")
		return
	}

	lots, err := h.inventory.OpenLots(c.Request.Context(), sku)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, lots)
}

// Reconcile compares open lot values against the inventory account
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "period query parameter is required")
		return
	}

	result, err := h.inventory.Reconcile(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
