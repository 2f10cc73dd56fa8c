package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFixedAssetRepository implements FixedAssetRepository using GORM
type GormFixedAssetRepository struct {
	db *gorm.DB
}

// NewGormFixedAssetRepository creates a new GormFixedAssetRepository
func NewGormFixedAssetRepository(db *gorm.DB) *GormFixedAssetRepository {
	return &GormFixedAssetRepository{db: db}
}

// FindByID finds an asset by its ID
func (r *GormFixedAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*subledger.FixedAsset, error) {
	var model models.FixedAssetModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every asset ordered by acquisition date
func (r *GormFixedAssetRepository) FindAll(ctx context.Context) ([]subledger.FixedAsset, error) {
	var rows []models.FixedAssetModel
	if err := dbFrom(ctx, r.db).
		Order("acquisition_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	assets := make([]subledger.FixedAsset, len(rows))
	for i := range rows {
		assets[i] = *rows[i].ToDomain()
	}
	return assets, nil
}

// Save creates or updates an asset
func (r *GormFixedAssetRepository) Save(ctx context.Context, asset *subledger.FixedAsset) error {
	var model models.FixedAssetModel
	model.FromDomain(asset)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// FindCharge returns the charge for (asset, period), or ErrNotFound
func (r *GormFixedAssetRepository) FindCharge(ctx context.Context, assetID uuid.UUID, period string) (*subledger.DepreciationCharge, error) {
	var model models.DepreciationChargeModel
	if err := dbFrom(ctx, r.db).
		Where("asset_id = ? AND period = ?", assetID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindChargesThrough returns all charges for periods up to and including
// the given one
func (r *GormFixedAssetRepository) FindChargesThrough(ctx context.Context, period string) ([]subledger.DepreciationCharge, error) {
	var rows []models.DepreciationChargeModel
	if err := dbFrom(ctx, r.db).
		Where("period <= ?", period).
		Order("period ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	charges := make([]subledger.DepreciationCharge, len(rows))
	for i := range rows {
		charges[i] = *rows[i].ToDomain()
	}
	return charges, nil
}

// SaveCharge creates a depreciation charge record
func (r *GormFixedAssetRepository) SaveCharge(ctx context.Context, charge *subledger.DepreciationCharge) error {
	var model models.DepreciationChargeModel
	model.FromDomain(charge)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// Ensure GormFixedAssetRepository implements FixedAssetRepository
var _ subledger.FixedAssetRepository = (*GormFixedAssetRepository)(nil)
