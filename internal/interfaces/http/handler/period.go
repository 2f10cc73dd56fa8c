package handler

import (
	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// PeriodHandler handles accounting period API endpoints
type PeriodHandler struct {
	BaseHandler
	periods  *ledgerapp.PeriodService
	balances *ledgerapp.BalanceService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periods *ledgerapp.PeriodService, balances *ledgerapp.BalanceService) *PeriodHandler {
	return &PeriodHandler{periods: periods, balances: balances}
}

// RegisterRoutes registers period and balance routes
func (h *PeriodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/periods", h.List)
	rg.POST("/periods/:name/close", h.Close)
	rg.POST("/periods/:name/reopen", h.Reopen)
	rg.GET("/balances", h.ListBalances)
}

// List returns every known period with its status
func (h *PeriodHandler) List(c *gin.Context) {
	periods, err := h.periods.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, periods)
}

// Close closes a period and carries its balances forward
func (h *PeriodHandler) Close(c *gin.Context) {
	period, err := h.periods.Close(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// Reopen reopens a closed period for posting
func (h *PeriodHandler) Reopen(c *gin.Context) {
	period, err := h.periods.Reopen(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// ListBalances returns the balance buckets of a period, optionally
// restricted to one account
func (h *PeriodHandler) ListBalances(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "period query parameter is required")
		return
	}

	var (
		balances []ledgerapp.BalanceResponse
		err      error
	)
	if account := c.Query("account"); account != "" {
		balances, err = h.balances.ListByAccount(c.Request.Context(), account, period)
	} else {
		balances, err = h.balances.ListByPeriod(c.Request.Context(), period)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balances)
}
