package ledger

import (
	"fmt"

	"github.com/glbooks/backend/internal/domain/shared"
)

// AccountType classifies an account within the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Direction is the natural balance direction of an account
type Direction string

const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// CashFlowClass is an optional cash-flow statement classification
type CashFlowClass string

const (
	CashFlowNone      CashFlowClass = ""
	CashFlowOperating CashFlowClass = "OPERATING"
	CashFlowInvesting CashFlowClass = "INVESTING"
	CashFlowFinancing CashFlowClass = "FINANCING"
)

// IsValid checks if the cash-flow classification is valid
func (c CashFlowClass) IsValid() bool {
	switch c {
	case CashFlowNone, CashFlowOperating, CashFlowInvesting, CashFlowFinancing:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. Accounts form a tree via
// ParentCode; children must sit at a deeper level than their parent.
type Account struct {
	shared.BaseEntity
	Code       string
	Name       string
	Level      int
	ParentCode string // empty for root accounts
	Type       AccountType
	Direction  Direction
	CashFlow   CashFlowClass
	IsEnabled  bool
	IsSystem   bool // system accounts are seeded at init and protected from deletion
}

// NewAccount creates a new account after validating its shape.
// The parent relationship is validated against the registry by the caller,
// since the account tree lives in the store, not in memory.
func NewAccount(code, name string, level int, parentCode string, accountType AccountType, direction Direction, cashFlow CashFlowClass) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if level < 1 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_LEVEL", "Account level must be at least 1")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", fmt.Sprintf("Unknown account type %q", accountType))
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", fmt.Sprintf("Unknown balance direction %q", direction))
	}
	if !cashFlow.IsValid() {
		return nil, shared.NewDomainError("INVALID_CASH_FLOW", fmt.Sprintf("Unknown cash-flow class %q", cashFlow))
	}

	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Level:      level,
		ParentCode: parentCode,
		Type:       accountType,
		Direction:  direction,
		CashFlow:   cashFlow,
		IsEnabled:  true,
	}, nil
}

// ValidateParent checks the tree invariant: the parent must sit at a
// shallower level than the child.
func (a *Account) ValidateParent(parent *Account) error {
	if a.ParentCode == "" {
		return nil
	}
	if parent == nil {
		return shared.NewDomainError("PARENT_NOT_FOUND", fmt.Sprintf("Parent account %s does not exist", a.ParentCode))
	}
	if parent.Level >= a.Level {
		return shared.NewDomainError("INVALID_ACCOUNT_LEVEL",
			fmt.Sprintf("Parent account %s (level %d) must be shallower than %s (level %d)",
				parent.Code, parent.Level, a.Code, a.Level))
	}
	return nil
}

// IsPostable returns true if vouchers may reference this account
func (a *Account) IsPostable() bool {
	return a.IsEnabled
}

// Disable marks the account unusable for new postings
func (a *Account) Disable() {
	a.IsEnabled = false
}

// Enable makes the account usable for postings again
func (a *Account) Enable() {
	a.IsEnabled = true
}
