package handler

import (
	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FixedAssetHandler handles fixed asset API endpoints
type FixedAssetHandler struct {
	BaseHandler
	assets *subledgerapp.FixedAssetService
}

// NewFixedAssetHandler creates a new FixedAssetHandler
func NewFixedAssetHandler(assets *subledgerapp.FixedAssetService) *FixedAssetHandler {
	return &FixedAssetHandler{assets: assets}
}

// RegisterRoutes registers fixed asset routes
func (h *FixedAssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/assets")
	group.POST("", h.Add)
	group.GET("", h.List)
	group.POST("/depreciation", h.DepreciatePeriod)
	group.POST("/:id/depreciation", h.Depreciate)
	group.GET("/reconciliation", h.Reconcile)
}

// Add acquires a fixed asset
func (h *FixedAssetHandler) Add(c *gin.Context) {
	var req subledgerapp.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assets.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, asset)
}

// List returns every asset with its accumulated depreciation. An optional
// period query reports accumulated depreciation as of that period.
func (h *FixedAssetHandler) List(c *gin.Context) {
	assets, err := h.assets.List(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, assets)
}

// depreciateBody carries the period for a depreciation charge
type depreciateBody struct {
	Period string `json:"period" binding:"required"`
}

// Depreciate charges one period's straight-line depreciation
func (h *FixedAssetHandler) Depreciate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var body depreciateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.assets.Depreciate(c.Request.Context(), subledgerapp.DepreciateRequest{
		AssetID: id,
		Period:  body.Period,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charge)
}

// DepreciatePeriod charges every asset's straight-line amount for the
// period, skipping assets already charged in it
func (h *FixedAssetHandler) DepreciatePeriod(c *gin.Context) {
	var body depreciateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charges, err := h.assets.DepreciatePeriod(c.Request.Context(), body.Period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, charges)
}

// Reconcile compares the asset register and charges against the general
// ledger
func (h *FixedAssetHandler) Reconcile(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "period query parameter is required")
		return
	}

	result, err := h.assets.Reconcile(c.Request.Context(), period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
