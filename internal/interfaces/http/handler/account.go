package handler

import (
	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	accounts *ledgerapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/accounts", h.Create)
	rg.GET("/accounts", h.List)
	rg.GET("/accounts/:code", h.Get)
	rg.POST("/accounts/:code/disable", h.Disable)
	rg.POST("/accounts/:code/enable", h.Enable)
}

// Create adds an account to the chart
func (h *AccountHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// Get returns one account by code
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// List returns the full chart of accounts
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, accounts)
}

// Disable blocks postings against an account
func (h *AccountHandler) Disable(c *gin.Context) {
	account, err := h.accounts.Disable(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// Enable allows postings against an account again
func (h *AccountHandler) Enable(c *gin.Context) {
	account, err := h.accounts.Enable(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}
