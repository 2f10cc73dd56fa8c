package subledger

import (
	"context"
	"fmt"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/shopspring/decimal"
)

// PayableService manages AP bills, mirroring the receivable side: adding a
// bill books expense against payable, settling books payable against cash.
// Postings carry the supplier dimension.
type PayableService struct {
	invoices   subledger.InvoiceRepository
	dimensions ledger.DimensionRepository
	balances   ledger.BalanceRepository
	vouchers   *ledgerapp.VoucherService
	store      ledger.LedgerStore
}

// NewPayableService creates a new PayableService
func NewPayableService(
	invoices subledger.InvoiceRepository,
	dimensions ledger.DimensionRepository,
	balances ledger.BalanceRepository,
	vouchers *ledgerapp.VoucherService,
	store ledger.LedgerStore,
) *PayableService {
	return &PayableService{
		invoices:   invoices,
		dimensions: dimensions,
		balances:   balances,
		vouchers:   vouchers,
		store:      store,
	}
}

// Add records an AP bill and posts expense against payable
func (s *PayableService) Add(ctx context.Context, req AddInvoiceRequest) (*InvoiceResponse, error) {
	party, err := s.resolveParty(ctx, req.PartyCode)
	if err != nil {
		return nil, err
	}

	bill, err := subledger.NewInvoice(subledger.InvoiceKindPayable, party.ID, req.Amount, req.Date, req.Remark)
	if err != nil {
		return nil, err
	}

	dims := ledger.DimensionRef{SupplierID: party.ID}
	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("AP bill %s", party.Code),
			Entries:     journalEntries(accountExpense, dims, accountPayable, dims, req.Amount, req.Remark),
		})
		if err != nil {
			return err
		}
		bill.VoucherID = posted.ID
		return s.invoices.Save(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(bill), nil
}

// Settle applies a payment against a bill and posts payable against cash
func (s *PayableService) Settle(ctx context.Context, req SettleInvoiceRequest) (*InvoiceResponse, error) {
	bill, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if bill.Kind != subledger.InvoiceKindPayable {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Invoice %s is not a payable", req.InvoiceID))
	}
	if err := bill.Settle(req.Amount); err != nil {
		return nil, err
	}

	dims := ledger.DimensionRef{SupplierID: bill.PartyID}
	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("AP settlement %s", req.InvoiceID),
			Entries:     journalEntries(accountPayable, dims, accountCash, ledger.DimensionRef{}, req.Amount, ""),
		}); err != nil {
			return err
		}
		return s.invoices.Save(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(bill), nil
}

// Outstanding returns the supplier's unsettled bills, oldest first
func (s *PayableService) Outstanding(ctx context.Context, partyCode string) ([]InvoiceResponse, error) {
	party, err := s.resolveParty(ctx, partyCode)
	if err != nil {
		return nil, err
	}
	bills, err := s.invoices.FindOutstanding(ctx, subledger.InvoiceKindPayable, party.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(bills), nil
}

// Reconcile compares the supplier's total outstanding against the closing
// balance of the payable bucket tagged with the supplier dimension
func (s *PayableService) Reconcile(ctx context.Context, partyCode, period string) (*ReconciliationResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	party, err := s.resolveParty(ctx, partyCode)
	if err != nil {
		return nil, err
	}

	bills, err := s.invoices.FindOutstanding(ctx, subledger.InvoiceKindPayable, party.ID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range bills {
		total = total.Add(bills[i].Outstanding())
	}

	key := ledger.NewBalanceKey(accountPayable, period, ledger.DimensionRef{SupplierID: party.ID})
	bucket, err := s.balances.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResponse{
		Scope:  fmt.Sprintf("AP %s", party.Code),
		Period: period,
		Result: ledger.Reconcile(total, bucket.Closing),
	}, nil
}

func (s *PayableService) resolveParty(ctx context.Context, code string) (*ledger.Dimension, error) {
	party, err := s.dimensions.FindByTypeAndCode(ctx, ledger.DimensionSupplier, code)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("DIMENSION_NOT_FOUND",
				fmt.Sprintf("Supplier %s does not exist", code))
		}
		return nil, err
	}
	return party, nil
}
