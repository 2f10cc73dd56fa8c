package ledger

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists the chart of accounts
type AccountRepository interface {
	FindByCode(ctx context.Context, code string) (*Account, error)
	FindAll(ctx context.Context) ([]Account, error)
	Save(ctx context.Context, account *Account) error
	Delete(ctx context.Context, code string) error
}

// DimensionRepository persists analytic dimensions
type DimensionRepository interface {
	FindByID(ctx context.Context, id int64) (*Dimension, error)
	FindByTypeAndCode(ctx context.Context, dimensionType DimensionType, code string) (*Dimension, error)
	FindByType(ctx context.Context, dimensionType DimensionType) ([]Dimension, error)
	Save(ctx context.Context, dimension *Dimension) error
}

// PeriodRepository persists accounting periods
type PeriodRepository interface {
	FindByName(ctx context.Context, name string) (*Period, error)
	// FindOrCreate returns the period, creating it open when absent.
	// Periods come into existence lazily on first reference.
	FindOrCreate(ctx context.Context, name string) (*Period, error)
	FindAll(ctx context.Context) ([]Period, error)
	Save(ctx context.Context, period *Period) error
}

// VoucherRepository persists journal vouchers and their entries
type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)
	FindByPeriod(ctx context.Context, period string) ([]Voucher, error)
	// NextVoucherNo allocates the next sequential voucher number for a period
	NextVoucherNo(ctx context.Context, period string) (string, error)
	Save(ctx context.Context, voucher *Voucher) error
}

// BalanceRepository reads materialized balance buckets. Writes go through
// the LedgerStore so they stay inside a posting transaction.
type BalanceRepository interface {
	// Get returns the bucket for the key. An absent bucket reads as a
	// bucket with no movement whose opening and closing carry the latest
	// prior period's closing, zero when no prior bucket exists either.
	Get(ctx context.Context, key BalanceKey) (*Balance, error)
	FindByPeriod(ctx context.Context, period string) ([]Balance, error)
	FindByAccountAndPeriod(ctx context.Context, accountCode, period string) ([]Balance, error)
}

// LedgerStore is the transactional boundary for general-ledger writes.
// Each method executes as a single all-or-nothing unit of work; a failure
// partway rolls back every balance mutation.
type LedgerStore interface {
	// PostVoucher persists the confirmed voucher and applies every entry to
	// the balance ledger: debit increases the bucket's debit movement,
	// credit the credit movement, creating absent buckets with the opening
	// carried from the latest prior period's closing for the same key,
	// then recomputes closing balances. The voucher's period is
	// re-checked inside the transaction and PERIOD_CLOSED is returned if it
	// closed in the meantime. A voucher is applied at most once; re-posting
	// a confirmed voucher fails with INVALID_STATE.
	PostVoucher(ctx context.Context, voucher *Voucher) error

	// ClosePeriod recomputes closing balances for every bucket of the
	// period, carries them forward as opening balances of the next period
	// (created lazily), re-propagates through consecutive already-closed
	// successor periods, and marks the period closed. Fails with
	// PERIOD_ALREADY_CLOSED when the period is closed.
	ClosePeriod(ctx context.Context, name string) error

	// ReopenPeriod marks a closed period open again. Carry-forward already
	// pushed into successors is left as snapshotted; the next close
	// re-propagates it.
	ReopenPeriod(ctx context.Context, name string) error

	// InTransaction runs fn as one unit of work. Repository and store
	// calls made with the context passed to fn share the same transaction;
	// an error from fn rolls back everything written inside it. Subledger
	// services use this to keep a voucher posting and the matching
	// subledger detail write atomic.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
