package ledger

import (
	"context"
	"fmt"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
)

// AccountService manages the chart of accounts
type AccountService struct {
	accounts ledger.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts ledger.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// CreateAccountRequest represents a request to add an account
type CreateAccountRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Level      int    `json:"level" binding:"required,min=1"`
	ParentCode string `json:"parent_code"`
	Type       string `json:"type" binding:"required"`
	Direction  string `json:"direction" binding:"required"`
	CashFlow   string `json:"cash_flow"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	ParentCode string `json:"parent_code,omitempty"`
	Type       string `json:"type"`
	Direction  string `json:"direction"`
	CashFlow   string `json:"cash_flow,omitempty"`
	IsEnabled  bool   `json:"is_enabled"`
	IsSystem   bool   `json:"is_system"`
}

// Create adds a new account to the chart after validating uniqueness and
// the parent relationship
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	if _, err := s.accounts.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ACCOUNT_EXISTS",
			fmt.Sprintf("Account %s already exists", req.Code))
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	account, err := ledger.NewAccount(req.Code, req.Name, req.Level, req.ParentCode,
		ledger.AccountType(req.Type), ledger.Direction(req.Direction), ledger.CashFlowClass(req.CashFlow))
	if err != nil {
		return nil, err
	}

	if req.ParentCode != "" {
		parent, err := s.accounts.FindByCode(ctx, req.ParentCode)
		if err != nil {
			if err == shared.ErrNotFound {
				parent = nil
			} else {
				return nil, err
			}
		}
		if err := account.ValidateParent(parent); err != nil {
			return nil, err
		}
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Get returns an account by code
func (s *AccountService) Get(ctx context.Context, code string) (*AccountResponse, error) {
	account, err := s.accounts.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List returns the full chart of accounts
func (s *AccountService) List(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}
	return responses, nil
}

// Disable blocks new postings against the account. System accounts cannot
// be disabled since the subledger posting policies rely on them.
func (s *AccountService) Disable(ctx context.Context, code string) (*AccountResponse, error) {
	account, err := s.accounts.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account.IsSystem {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Account %s is a system account", code))
	}
	account.Disable()
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Enable makes the account postable again
func (s *AccountService) Enable(ctx context.Context, code string) (*AccountResponse, error) {
	account, err := s.accounts.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	account.Enable()
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(a *ledger.Account) *AccountResponse {
	return &AccountResponse{
		Code:       a.Code,
		Name:       a.Name,
		Level:      a.Level,
		ParentCode: a.ParentCode,
		Type:       a.Type.String(),
		Direction:  a.Direction.String(),
		CashFlow:   string(a.CashFlow),
		IsEnabled:  a.IsEnabled,
		IsSystem:   a.IsSystem,
	}
}
