package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerStore implements LedgerStore. Each method runs as one GORM
// transaction so voucher posting and period close are all-or-nothing.
// Methods called inside InTransaction join the surrounding transaction
// through the context instead of opening their own.
type GormLedgerStore struct {
	db *gorm.DB
}

// NewGormLedgerStore creates a new GormLedgerStore
func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

// InTransaction runs fn as one unit of work. Repository and store calls
// made with the context passed to fn share the same transaction; an error
// from fn rolls back everything written inside it.
func (s *GormLedgerStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFrom(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

// PostVoucher persists the confirmed voucher and applies its entries to the
// balance ledger. The stored voucher must still be REVIEWED and its period
// still open; both are re-checked inside the transaction.
func (s *GormLedgerStore) PostVoucher(ctx context.Context, voucher *ledger.Voucher) error {
	if voucher.Status != ledger.VoucherStatusConfirmed {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Voucher %s is %s, expected CONFIRMED", voucher.VoucherNo, voucher.Status))
	}

	return dbFrom(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var stored models.VoucherModel
		if err := tx.First(&stored, "id = ?", voucher.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if stored.Status != ledger.VoucherStatusReviewed {
			return shared.NewDomainError(shared.CodeInvalidState,
				fmt.Sprintf("Voucher %s is %s, only reviewed vouchers can be posted", stored.VoucherNo, stored.Status))
		}

		var periodRow models.PeriodModel
		if err := tx.First(&periodRow, "name = ?", voucher.Period).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if periodRow.Status != ledger.PeriodStatusOpen {
			return shared.NewDomainError(shared.CodePeriodClosed,
				fmt.Sprintf("Period %s is closed", voucher.Period))
		}

		directions, err := entryDirections(tx, voucher.Entries)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.VoucherModel{}).
			Where("id = ?", voucher.ID).
			Updates(map[string]any{
				"status":     voucher.Status,
				"version":    voucher.Version,
				"updated_at": voucher.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		// Group entries per bucket so each key is loaded and saved once
		buckets := make(map[ledger.BalanceKey]*ledger.Balance)
		order := make([]ledger.BalanceKey, 0, len(voucher.Entries))
		for _, entry := range voucher.Entries {
			key := ledger.NewBalanceKey(entry.AccountCode, voucher.Period, entry.Dimensions)
			bucket, ok := buckets[key]
			if !ok {
				bucket, err = loadBalance(tx, key)
				if err != nil {
					return err
				}
				buckets[key] = bucket
				order = append(order, key)
			}
			bucket.Apply(entry)
		}

		for _, key := range order {
			bucket := buckets[key]
			bucket.Recompute(directions[key.AccountCode])
			if err := saveBalance(tx, bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClosePeriod recomputes and carries forward the period's balances, then
// marks it closed. When the successor period is itself already closed, the
// carry-forward is re-propagated through the consecutive closed run so
// downstream openings stay consistent after a reopen-and-adjust cycle.
func (s *GormLedgerStore) ClosePeriod(ctx context.Context, name string) error {
	if err := ledger.ValidatePeriodName(name); err != nil {
		return err
	}

	return dbFrom(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		period, err := findOrCreatePeriod(tx, name)
		if err != nil {
			return err
		}
		if period.Status != ledger.PeriodStatusOpen {
			return shared.NewDomainError(shared.CodePeriodAlreadyClosed,
				fmt.Sprintf("Period %s is already closed", name))
		}

		directions, err := allAccountDirections(tx)
		if err != nil {
			return err
		}

		current := name
		for {
			next, err := ledger.NextPeriod(current)
			if err != nil {
				return err
			}

			var rows []models.BalanceModel
			if err := tx.Where("period = ?", current).Find(&rows).Error; err != nil {
				return err
			}

			for i := range rows {
				bucket := rows[i].ToDomain()
				direction, ok := directions[bucket.Key.AccountCode]
				if !ok {
					return shared.NewDomainError(shared.CodeAccountNotFound,
						fmt.Sprintf("Account %s does not exist", bucket.Key.AccountCode))
				}
				bucket.Recompute(direction)
				if err := saveBalance(tx, bucket); err != nil {
					return err
				}

				nextKey := bucket.Key
				nextKey.Period = next
				successor, err := loadBalance(tx, nextKey)
				if err != nil {
					return err
				}
				successor.Opening = bucket.Closing
				successor.Recompute(direction)
				if err := saveBalance(tx, successor); err != nil {
					return err
				}
			}

			if len(rows) > 0 {
				if _, err := findOrCreatePeriod(tx, next); err != nil {
					return err
				}
			}

			// Re-propagate only through successors that are already closed
			var nextRow models.PeriodModel
			if err := tx.First(&nextRow, "name = ?", next).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					break
				}
				return err
			}
			if nextRow.Status != ledger.PeriodStatusClosed {
				break
			}
			current = next
		}

		now := time.Now()
		return tx.Model(&models.PeriodModel{}).
			Where("name = ?", name).
			Updates(map[string]any{
				"status":     ledger.PeriodStatusClosed,
				"closed_at":  now,
				"updated_at": now,
			}).Error
	})
}

// ReopenPeriod marks a closed period open again
func (s *GormLedgerStore) ReopenPeriod(ctx context.Context, name string) error {
	return dbFrom(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		var row models.PeriodModel
		if err := tx.First(&row, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		period := row.ToDomain()
		if err := period.Reopen(); err != nil {
			return err
		}

		row.FromDomain(period)
		return tx.Save(&row).Error
	})
}

// loadBalance returns the bucket for the key. An absent bucket is created
// with its opening carried from the latest prior period's closing, so
// cross-period continuity holds as soon as a posting touches the key, not
// only after the prior period is formally closed.
func loadBalance(tx *gorm.DB, key ledger.BalanceKey) (*ledger.Balance, error) {
	model, err := findBalanceModel(tx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return seedBalance(tx, key)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// seedBalance builds a fresh bucket whose opening and closing equal the
// latest prior period's closing for the same (account, dimensions) key
func seedBalance(db *gorm.DB, key ledger.BalanceKey) (*ledger.Balance, error) {
	opening, err := latestClosingBefore(db, key)
	if err != nil {
		return nil, err
	}
	bucket := ledger.NewBalance(key)
	bucket.Opening = opening
	bucket.Closing = opening
	return bucket, nil
}

// saveBalance upserts a bucket by its full key
func saveBalance(tx *gorm.DB, balance *ledger.Balance) error {
	model, err := findBalanceModel(tx, balance.Key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		model = &models.BalanceModel{}
	}
	model.FromDomain(balance)
	return tx.Save(model).Error
}

// findOrCreatePeriod loads the period row, creating it open when absent
func findOrCreatePeriod(tx *gorm.DB, name string) (*models.PeriodModel, error) {
	var row models.PeriodModel
	err := tx.First(&row, "name = ?", name).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	period, err := ledger.NewPeriod(name)
	if err != nil {
		return nil, err
	}
	row.FromDomain(period)
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// entryDirections resolves the natural direction for each account code
// referenced by the entries, failing on unknown accounts
func entryDirections(tx *gorm.DB, entries []ledger.VoucherEntry) (map[string]ledger.Direction, error) {
	directions := make(map[string]ledger.Direction)
	for _, entry := range entries {
		if _, ok := directions[entry.AccountCode]; ok {
			continue
		}
		var account models.AccountModel
		if err := tx.First(&account, "code = ?", entry.AccountCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.NewDomainError(shared.CodeAccountNotFound,
					fmt.Sprintf("Account %s does not exist", entry.AccountCode))
			}
			return nil, err
		}
		directions[entry.AccountCode] = account.Direction
	}
	return directions, nil
}

// allAccountDirections loads the direction of every account
func allAccountDirections(tx *gorm.DB) (map[string]ledger.Direction, error) {
	var accounts []models.AccountModel
	if err := tx.Find(&accounts).Error; err != nil {
		return nil, err
	}
	directions := make(map[string]ledger.Direction, len(accounts))
	for _, account := range accounts {
		directions[account.Code] = account.Direction
	}
	return directions, nil
}

// Ensure GormLedgerStore implements LedgerStore
var _ ledger.LedgerStore = (*GormLedgerStore)(nil)
