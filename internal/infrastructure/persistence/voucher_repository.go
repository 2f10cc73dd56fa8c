package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher with its entries by ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	var model models.VoucherModel
	if err := dbFrom(ctx, r.db).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns the period's vouchers with entries, by voucher number
func (r *GormVoucherRepository) FindByPeriod(ctx context.Context, period string) ([]ledger.Voucher, error) {
	var rows []models.VoucherModel
	if err := dbFrom(ctx, r.db).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("period = ?", period).
		Order("voucher_no ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	vouchers := make([]ledger.Voucher, len(rows))
	for i := range rows {
		vouchers[i] = *rows[i].ToDomain()
	}
	return vouchers, nil
}

// NextVoucherNo allocates the next sequential voucher number for a period,
// formatted V-YYYY-MM-NNNN. The store's single connection serializes
// concurrent allocations.
func (r *GormVoucherRepository) NextVoucherNo(ctx context.Context, period string) (string, error) {
	var count int64
	if err := dbFrom(ctx, r.db).
		Model(&models.VoucherModel{}).
		Where("period = ?", period).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("V-%s-%04d", period, count+1), nil
}

// Save creates or updates a voucher and its entries. Entries are replaced
// wholesale since they are immutable lines of the aggregate.
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *ledger.Voucher) error {
	var model models.VoucherModel
	model.FromDomain(voucher)

	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("voucher_id = ?", voucher.ID).
			Delete(&models.VoucherEntryModel{}).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// Ensure GormVoucherRepository implements VoucherRepository
var _ ledger.VoucherRepository = (*GormVoucherRepository)(nil)
