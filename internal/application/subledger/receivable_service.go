package subledger

import (
	"context"
	"fmt"
	"time"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableService manages AR invoices and their derived journal entries.
// Adding an invoice books receivable against revenue; settling books cash
// against receivable. Both postings carry the customer dimension so the
// general ledger can be reconciled per customer.
type ReceivableService struct {
	invoices   subledger.InvoiceRepository
	dimensions ledger.DimensionRepository
	balances   ledger.BalanceRepository
	vouchers   *ledgerapp.VoucherService
	store      ledger.LedgerStore
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(
	invoices subledger.InvoiceRepository,
	dimensions ledger.DimensionRepository,
	balances ledger.BalanceRepository,
	vouchers *ledgerapp.VoucherService,
	store ledger.LedgerStore,
) *ReceivableService {
	return &ReceivableService{
		invoices:   invoices,
		dimensions: dimensions,
		balances:   balances,
		vouchers:   vouchers,
		store:      store,
	}
}

// AddInvoiceRequest represents a request to record an AR invoice
type AddInvoiceRequest struct {
	PartyCode string          `json:"party_code" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Remark    string          `json:"remark"`
}

// SettleInvoiceRequest represents a request to settle against an invoice
type SettleInvoiceRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	PartyID     int64           `json:"party_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Date        time.Time       `json:"date"`
	Period      string          `json:"period"`
	VoucherID   uuid.UUID       `json:"voucher_id"`
	Remark      string          `json:"remark,omitempty"`
}

// ReconciliationResponse wraps a reconciliation result with its scope
type ReconciliationResponse struct {
	Scope  string                      `json:"scope"`
	Period string                      `json:"period"`
	Result ledger.ReconciliationResult `json:"result"`
}

// Add records an AR invoice and posts receivable against revenue
func (s *ReceivableService) Add(ctx context.Context, req AddInvoiceRequest) (*InvoiceResponse, error) {
	party, err := s.resolveParty(ctx, req.PartyCode)
	if err != nil {
		return nil, err
	}

	invoice, err := subledger.NewInvoice(subledger.InvoiceKindReceivable, party.ID, req.Amount, req.Date, req.Remark)
	if err != nil {
		return nil, err
	}

	dims := ledger.DimensionRef{CustomerID: party.ID}
	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("AR invoice %s", party.Code),
			Entries:     journalEntries(accountReceivable, dims, accountRevenue, dims, req.Amount, req.Remark),
		})
		if err != nil {
			return err
		}
		invoice.VoucherID = posted.ID
		return s.invoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Settle applies a payment against an invoice and posts cash against
// receivable
func (s *ReceivableService) Settle(ctx context.Context, req SettleInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Kind != subledger.InvoiceKindReceivable {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Invoice %s is not a receivable", req.InvoiceID))
	}
	if err := invoice.Settle(req.Amount); err != nil {
		return nil, err
	}

	dims := ledger.DimensionRef{CustomerID: invoice.PartyID}
	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("AR settlement %s", req.InvoiceID),
			Entries:     journalEntries(accountCash, ledger.DimensionRef{}, accountReceivable, dims, req.Amount, ""),
		}); err != nil {
			return err
		}
		return s.invoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Outstanding returns the customer's unsettled invoices, oldest first
func (s *ReceivableService) Outstanding(ctx context.Context, partyCode string) ([]InvoiceResponse, error) {
	party, err := s.resolveParty(ctx, partyCode)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.FindOutstanding(ctx, subledger.InvoiceKindReceivable, party.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(invoices), nil
}

// Reconcile compares the customer's total outstanding against the closing
// balance of the receivable bucket tagged with the customer dimension.
// The comparison is exact when every invoice and settlement voucher of the
// customer was posted in or before the given period.
func (s *ReceivableService) Reconcile(ctx context.Context, partyCode, period string) (*ReconciliationResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	party, err := s.resolveParty(ctx, partyCode)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoices.FindOutstanding(ctx, subledger.InvoiceKindReceivable, party.ID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range invoices {
		total = total.Add(invoices[i].Outstanding())
	}

	key := ledger.NewBalanceKey(accountReceivable, period, ledger.DimensionRef{CustomerID: party.ID})
	bucket, err := s.balances.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResponse{
		Scope:  fmt.Sprintf("AR %s", party.Code),
		Period: period,
		Result: ledger.Reconcile(total, bucket.Closing),
	}, nil
}

func (s *ReceivableService) resolveParty(ctx context.Context, code string) (*ledger.Dimension, error) {
	party, err := s.dimensions.FindByTypeAndCode(ctx, ledger.DimensionCustomer, code)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("DIMENSION_NOT_FOUND",
				fmt.Sprintf("Customer %s does not exist", code))
		}
		return nil, err
	}
	return party, nil
}

func toInvoiceResponse(i *subledger.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          i.ID,
		Kind:        i.Kind.String(),
		PartyID:     i.PartyID,
		Amount:      i.Amount,
		PaidAmount:  i.PaidAmount,
		Outstanding: i.Outstanding(),
		Date:        i.Date,
		Period:      i.Period,
		VoucherID:   i.VoucherID,
		Remark:      i.Remark,
	}
}

func toInvoiceResponses(invoices []subledger.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *toInvoiceResponse(&invoices[i])
	}
	return responses
}
