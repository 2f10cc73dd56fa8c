package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherService drives the voucher lifecycle: recording drafts, the
// review/confirm/reject transitions and posting confirmed vouchers to the
// balance ledger through the store.
type VoucherService struct {
	vouchers   ledger.VoucherRepository
	accounts   ledger.AccountRepository
	periods    ledger.PeriodRepository
	dimensions ledger.DimensionRepository
	store      ledger.LedgerStore
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(
	vouchers ledger.VoucherRepository,
	accounts ledger.AccountRepository,
	periods ledger.PeriodRepository,
	dimensions ledger.DimensionRepository,
	store ledger.LedgerStore,
) *VoucherService {
	return &VoucherService{
		vouchers:   vouchers,
		accounts:   accounts,
		periods:    periods,
		dimensions: dimensions,
		store:      store,
	}
}

// EntryRequest is one debit or credit line of a voucher request
type EntryRequest struct {
	AccountCode string              `json:"account_code" binding:"required"`
	Debit       decimal.Decimal     `json:"debit"`
	Credit      decimal.Decimal     `json:"credit"`
	Dimensions  ledger.DimensionRef `json:"dimensions"`
	Description string              `json:"description"`
}

// RecordVoucherRequest represents a request to record a draft voucher
type RecordVoucherRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Description string         `json:"description"`
	Entries     []EntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// EntryResponse represents one voucher line in API responses
type EntryResponse struct {
	AccountCode string              `json:"account_code"`
	Debit       decimal.Decimal     `json:"debit"`
	Credit      decimal.Decimal     `json:"credit"`
	Dimensions  ledger.DimensionRef `json:"dimensions,omitempty"`
	Description string              `json:"description,omitempty"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID          uuid.UUID       `json:"id"`
	VoucherNo   string          `json:"voucher_no"`
	Date        time.Time       `json:"date"`
	Period      string          `json:"period"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Entries     []EntryResponse `json:"entries"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Record validates and persists a draft voucher. Accounts must exist and be
// enabled, referenced dimensions must exist on the right axis, and the
// voucher's period must be open. The period comes into existence on first
// reference.
func (s *VoucherService) Record(ctx context.Context, req RecordVoucherRequest) (*VoucherResponse, error) {
	entries := make([]ledger.VoucherEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = ledger.VoucherEntry{
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Dimensions:  e.Dimensions,
			Description: e.Description,
		}
	}

	for _, entry := range entries {
		if err := s.checkAccount(ctx, entry.AccountCode); err != nil {
			return nil, err
		}
		if err := s.checkDimensions(ctx, entry.Dimensions); err != nil {
			return nil, err
		}
	}

	periodName := ledger.PeriodOf(req.Date)
	period, err := s.periods.FindOrCreate(ctx, periodName)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, shared.NewDomainError(shared.CodePeriodClosed,
			fmt.Sprintf("Period %s is closed", periodName))
	}

	voucherNo, err := s.vouchers.NextVoucherNo(ctx, periodName)
	if err != nil {
		return nil, err
	}

	voucher, err := ledger.NewVoucher(voucherNo, req.Date, req.Description, entries)
	if err != nil {
		return nil, err
	}
	if err := s.vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// Review transitions a draft voucher to reviewed
func (s *VoucherService) Review(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := voucher.Review(); err != nil {
		return nil, err
	}
	if err := s.vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// Confirm transitions a reviewed voucher to confirmed and applies its
// entries to the balance ledger in one transaction
func (s *VoucherService) Confirm(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := voucher.Confirm(); err != nil {
		return nil, err
	}
	if err := s.store.PostVoucher(ctx, voucher); err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// Reject transitions a draft or reviewed voucher to rejected
func (s *VoucherService) Reject(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := voucher.Reject(); err != nil {
		return nil, err
	}
	if err := s.vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// Post records a voucher and walks it straight through review and confirm.
// The subledgers use this for their derived journal entries.
func (s *VoucherService) Post(ctx context.Context, req RecordVoucherRequest) (*VoucherResponse, error) {
	recorded, err := s.Record(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Review(ctx, recorded.ID); err != nil {
		return nil, err
	}
	return s.Confirm(ctx, recorded.ID)
}

// Get returns a voucher by ID
func (s *VoucherService) Get(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	voucher, err := s.vouchers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// ListByPeriod returns the period's vouchers ordered by voucher number
func (s *VoucherService) ListByPeriod(ctx context.Context, period string) ([]VoucherResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	vouchers, err := s.vouchers.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	responses := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = *toVoucherResponse(&vouchers[i])
	}
	return responses, nil
}

// checkAccount verifies the account exists and accepts postings. A
// disabled account reads the same as an unknown one.
func (s *VoucherService) checkAccount(ctx context.Context, code string) error {
	account, err := s.accounts.FindByCode(ctx, code)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError(shared.CodeAccountNotFound,
				fmt.Sprintf("Account %s does not exist", code))
		}
		return err
	}
	if !account.IsPostable() {
		return shared.NewDomainError(shared.CodeAccountNotFound,
			fmt.Sprintf("Account %s is disabled", code))
	}
	return nil
}

// checkDimensions verifies every referenced dimension exists on its axis
func (s *VoucherService) checkDimensions(ctx context.Context, dims ledger.DimensionRef) error {
	refs := []struct {
		id           int64
		expectedType ledger.DimensionType
	}{
		{dims.DepartmentID, ledger.DimensionDepartment},
		{dims.ProjectID, ledger.DimensionProject},
		{dims.CustomerID, ledger.DimensionCustomer},
		{dims.SupplierID, ledger.DimensionSupplier},
		{dims.EmployeeID, ledger.DimensionEmployee},
	}
	for _, ref := range refs {
		if ref.id == 0 {
			continue
		}
		dimension, err := s.dimensions.FindByID(ctx, ref.id)
		if err != nil {
			if err == shared.ErrNotFound {
				return shared.NewDomainError("DIMENSION_NOT_FOUND",
					fmt.Sprintf("Dimension %d does not exist", ref.id))
			}
			return err
		}
		if dimension.Type != ref.expectedType {
			return shared.NewDomainError("INVALID_DIMENSION_TYPE",
				fmt.Sprintf("Dimension %d is a %s, expected %s", ref.id, dimension.Type, ref.expectedType))
		}
		if !dimension.IsEnabled {
			return shared.NewDomainError("DIMENSION_DISABLED",
				fmt.Sprintf("Dimension %d is disabled", ref.id))
		}
	}
	return nil
}

func toVoucherResponse(v *ledger.Voucher) *VoucherResponse {
	entries := make([]EntryResponse, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = EntryResponse{
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Dimensions:  e.Dimensions,
			Description: e.Description,
		}
	}
	return &VoucherResponse{
		ID:          v.ID,
		VoucherNo:   v.VoucherNo,
		Date:        v.Date,
		Period:      v.Period,
		Description: v.Description,
		Status:      v.Status.String(),
		TotalDebit:  v.TotalDebit(),
		TotalCredit: v.TotalCredit(),
		Entries:     entries,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
