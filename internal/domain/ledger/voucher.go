package ledger

import (
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum debit/credit mismatch treated as equal.
// Amounts are currency units, so this is one cent.
var Tolerance = decimal.NewFromFloat(0.01)

// VoucherStatus is the lifecycle state of a journal voucher
type VoucherStatus string

const (
	VoucherStatusDraft     VoucherStatus = "DRAFT"
	VoucherStatusReviewed  VoucherStatus = "REVIEWED"
	VoucherStatusConfirmed VoucherStatus = "CONFIRMED" // posted, terminal
	VoucherStatusRejected  VoucherStatus = "REJECTED"  // terminal
)

// IsValid checks if the status is a valid VoucherStatus
func (s VoucherStatus) IsValid() bool {
	switch s {
	case VoucherStatusDraft, VoucherStatusReviewed, VoucherStatusConfirmed, VoucherStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of VoucherStatus
func (s VoucherStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s VoucherStatus) IsTerminal() bool {
	return s == VoucherStatusConfirmed || s == VoucherStatusRejected
}

// DimensionRef carries the optional analytic dimensions of a voucher entry.
// A zero ID means the entry is not tagged on that axis.
type DimensionRef struct {
	DepartmentID int64 `json:"department_id,omitempty"`
	ProjectID    int64 `json:"project_id,omitempty"`
	CustomerID   int64 `json:"customer_id,omitempty"`
	SupplierID   int64 `json:"supplier_id,omitempty"`
	EmployeeID   int64 `json:"employee_id,omitempty"`
}

// IsZero returns true if the entry carries no dimensions
func (r DimensionRef) IsZero() bool {
	return r == DimensionRef{}
}

// VoucherEntry is a single debit or credit line of a voucher.
// Exactly one of Debit/Credit is non-zero.
type VoucherEntry struct {
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Dimensions  DimensionRef    `json:"dimensions"`
	Description string          `json:"description,omitempty"`
}

// Validate checks the single-sided invariant of the entry
func (e VoucherEntry) Validate() error {
	if e.AccountCode == "" {
		return shared.NewDomainError(shared.CodeAccountNotFound, "Entry account code cannot be empty")
	}
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return shared.NewDomainError(shared.CodeUnbalancedEntry,
			fmt.Sprintf("Entry on account %s has a negative amount", e.AccountCode))
	}
	hasDebit := e.Debit.GreaterThan(decimal.Zero)
	hasCredit := e.Credit.GreaterThan(decimal.Zero)
	if hasDebit == hasCredit {
		return shared.NewDomainError(shared.CodeUnbalancedEntry,
			fmt.Sprintf("Entry on account %s must have exactly one of debit/credit non-zero", e.AccountCode))
	}
	return nil
}

// Voucher is a journal entry grouping balanced debit/credit lines.
// It moves through draft -> reviewed -> confirmed, or to rejected.
// Only confirmed vouchers have touched the balance ledger.
type Voucher struct {
	shared.BaseAggregateRoot
	VoucherNo   string
	Date        time.Time
	Period      string
	Description string
	Status      VoucherStatus
	Entries     []VoucherEntry
}

// NewVoucher creates a draft voucher for the given entries.
// The period is derived from the voucher date. Entry-level validation
// happens here; balance is only enforced at confirm time.
func NewVoucher(voucherNo string, date time.Time, description string, entries []VoucherEntry) (*Voucher, error) {
	if voucherNo == "" {
		return nil, shared.NewDomainError("INVALID_VOUCHER_NO", "Voucher number cannot be empty")
	}
	if len(entries) == 0 {
		return nil, shared.NewDomainError(shared.CodeUnbalancedEntry, "Voucher must have at least one entry")
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherNo:         voucherNo,
		Date:              date,
		Period:            PeriodOf(date),
		Description:       description,
		Status:            VoucherStatusDraft,
		Entries:           entries,
	}, nil
}

// TotalDebit returns the sum of all debit amounts
func (v *Voucher) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v.Entries {
		total = total.Add(e.Debit)
	}
	return total
}

// TotalCredit returns the sum of all credit amounts
func (v *Voucher) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v.Entries {
		total = total.Add(e.Credit)
	}
	return total
}

// IsBalanced returns true if |total debit - total credit| is within tolerance
func (v *Voucher) IsBalanced() bool {
	return v.TotalDebit().Sub(v.TotalCredit()).Abs().LessThan(Tolerance)
}

// Review transitions the voucher from draft to reviewed
func (v *Voucher) Review() error {
	if v.Status != VoucherStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot review voucher %s in %s status", v.VoucherNo, v.Status))
	}
	v.Status = VoucherStatusReviewed
	v.Touch()
	return nil
}

// Confirm transitions the voucher from reviewed to confirmed.
// The voucher must be balanced; the open-period check and the balance
// application are the voucher service's responsibility, since they
// require the store.
func (v *Voucher) Confirm() error {
	if v.Status != VoucherStatusReviewed {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot confirm voucher %s in %s status", v.VoucherNo, v.Status))
	}
	if !v.IsBalanced() {
		return shared.NewDomainError(shared.CodeVoucherUnbalanced,
			fmt.Sprintf("Voucher %s is unbalanced: debit %s, credit %s",
				v.VoucherNo, v.TotalDebit().StringFixed(2), v.TotalCredit().StringFixed(2)))
	}
	v.Status = VoucherStatusConfirmed
	v.Touch()
	return nil
}

// Reject transitions the voucher from draft or reviewed to rejected
func (v *Voucher) Reject() error {
	if v.Status != VoucherStatusDraft && v.Status != VoucherStatusReviewed {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot reject voucher %s in %s status", v.VoucherNo, v.Status))
	}
	v.Status = VoucherStatusRejected
	v.Touch()
	return nil
}
