package handler

import (
	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// DimensionHandler handles analytic dimension API endpoints
type DimensionHandler struct {
	BaseHandler
	dimensions *ledgerapp.DimensionService
}

// NewDimensionHandler creates a new DimensionHandler
func NewDimensionHandler(dimensions *ledgerapp.DimensionService) *DimensionHandler {
	return &DimensionHandler{dimensions: dimensions}
}

// RegisterRoutes registers dimension routes
func (h *DimensionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dimensions", h.Create)
	rg.GET("/dimensions", h.ListByType)
}

// Create adds a dimension value
func (h *DimensionHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dimension, err := h.dimensions.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dimension)
}

// ListByType returns every dimension value of one type
func (h *DimensionHandler) ListByType(c *gin.Context) {
	dimensionType := c.Query("type")
	if dimensionType == "" {
		h.BadRequest(c, "type query parameter is required")
		return
	}

	dimensions, err := h.dimensions.ListByType(c.Request.Context(), dimensionType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dimensions)
}
