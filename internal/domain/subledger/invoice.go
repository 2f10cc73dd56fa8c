package subledger

import (
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes receivable invoices from payable bills
type InvoiceKind string

const (
	InvoiceKindReceivable InvoiceKind = "RECEIVABLE" // money owed by a customer
	InvoiceKindPayable    InvoiceKind = "PAYABLE"    // money owed to a supplier
)

// IsValid checks if the invoice kind is valid
func (k InvoiceKind) IsValid() bool {
	return k == InvoiceKindReceivable || k == InvoiceKindPayable
}

// String returns the string representation of InvoiceKind
func (k InvoiceKind) String() string {
	return string(k)
}

// PartyDimension returns the dimension type carrying the invoice's party
func (k InvoiceKind) PartyDimension() ledger.DimensionType {
	if k == InvoiceKindPayable {
		return ledger.DimensionSupplier
	}
	return ledger.DimensionCustomer
}

// Invoice is an AR invoice or AP bill: an amount owed by/to a party,
// tracked against the party's dimension. The invoice only influences the
// general ledger indirectly, through the voucher recorded at creation and
// at each settlement.
type Invoice struct {
	shared.BaseAggregateRoot
	Kind       InvoiceKind
	PartyID    int64 // customer or supplier dimension ID
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Date       time.Time
	Period     string
	VoucherID  uuid.UUID // voucher posted when the invoice was recorded
	Remark     string
}

// NewInvoice creates an unpaid invoice for the given party and amount
func NewInvoice(kind InvoiceKind, partyID int64, amount decimal.Decimal, date time.Time, remark string) (*Invoice, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_KIND", fmt.Sprintf("Unknown invoice kind %q", kind))
	}
	if partyID <= 0 {
		return nil, shared.NewDomainError("INVALID_PARTY", "Invoice party dimension is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		PartyID:           partyID,
		Amount:            amount,
		PaidAmount:        decimal.Zero,
		Date:              date,
		Period:            ledger.PeriodOf(date),
		Remark:            remark,
	}, nil
}

// Outstanding returns the unpaid portion of the invoice
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsSettled returns true if nothing remains unpaid
func (i *Invoice) IsSettled() bool {
	return i.Outstanding().LessThanOrEqual(decimal.Zero)
}

// Settle applies a payment against the invoice
func (i *Invoice) Settle(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Settlement amount must be positive")
	}
	if amount.GreaterThan(i.Outstanding()) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Settlement %s exceeds outstanding %s", amount.StringFixed(2), i.Outstanding().StringFixed(2)))
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Touch()
	return nil
}
