package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey addresses one balance bucket: account, period and the full
// dimension combination. Zero dimension IDs mean "no dimension".
type BalanceKey struct {
	AccountCode  string
	Period       string
	DepartmentID int64
	ProjectID    int64
	CustomerID   int64
	SupplierID   int64
	EmployeeID   int64
}

// NewBalanceKey builds a balance key for an account, period and dimensions
func NewBalanceKey(accountCode, period string, dims DimensionRef) BalanceKey {
	return BalanceKey{
		AccountCode:  accountCode,
		Period:       period,
		DepartmentID: dims.DepartmentID,
		ProjectID:    dims.ProjectID,
		CustomerID:   dims.CustomerID,
		SupplierID:   dims.SupplierID,
		EmployeeID:   dims.EmployeeID,
	}
}

// Dimensions returns the dimension combination of the key
func (k BalanceKey) Dimensions() DimensionRef {
	return DimensionRef{
		DepartmentID: k.DepartmentID,
		ProjectID:    k.ProjectID,
		CustomerID:   k.CustomerID,
		SupplierID:   k.SupplierID,
		EmployeeID:   k.EmployeeID,
	}
}

// Balance is a materialized balance bucket. Closing is derived:
//
//	debit-direction accounts:  closing = opening + debit - credit
//	credit-direction accounts: closing = opening + credit - debit
//
// The opening balance of period N+1 equals the closing balance of period N
// for the same (account, dimension) key.
type Balance struct {
	Key       BalanceKey
	Opening   decimal.Decimal
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Closing   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBalance creates a zero-valued bucket for the given key
func NewBalance(key BalanceKey) *Balance {
	now := time.Now()
	return &Balance{
		Key:       key,
		Opening:   decimal.Zero,
		Debit:     decimal.Zero,
		Credit:    decimal.Zero,
		Closing:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply accumulates one voucher entry into the bucket's period movement.
// The caller recomputes the closing balance afterwards.
func (b *Balance) Apply(entry VoucherEntry) {
	b.Debit = b.Debit.Add(entry.Debit)
	b.Credit = b.Credit.Add(entry.Credit)
	b.UpdatedAt = time.Now()
}

// Recompute derives the closing balance from opening and period movement
// according to the account's natural direction.
func (b *Balance) Recompute(direction Direction) {
	if direction == DirectionCredit {
		b.Closing = b.Opening.Add(b.Credit).Sub(b.Debit)
	} else {
		b.Closing = b.Opening.Add(b.Debit).Sub(b.Credit)
	}
	b.UpdatedAt = time.Now()
}

// CarryForward produces the successor-period bucket for this balance:
// same account and dimensions, opening equal to this period's closing,
// zero movement. The caller merges it with any existing successor bucket.
func (b *Balance) CarryForward(nextPeriod string) *Balance {
	key := b.Key
	key.Period = nextPeriod
	next := NewBalance(key)
	next.Opening = b.Closing
	next.Closing = b.Closing
	return next
}
