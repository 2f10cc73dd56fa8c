package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDimensionRepository implements DimensionRepository using GORM
type GormDimensionRepository struct {
	db *gorm.DB
}

// NewGormDimensionRepository creates a new GormDimensionRepository
func NewGormDimensionRepository(db *gorm.DB) *GormDimensionRepository {
	return &GormDimensionRepository{db: db}
}

// FindByID finds a dimension by its ID
func (r *GormDimensionRepository) FindByID(ctx context.Context, id int64) (*ledger.Dimension, error) {
	var model models.DimensionModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTypeAndCode finds a dimension by its type and code
func (r *GormDimensionRepository) FindByTypeAndCode(ctx context.Context, dimensionType ledger.DimensionType, code string) (*ledger.Dimension, error) {
	var model models.DimensionModel
	if err := dbFrom(ctx, r.db).
		Where("type = ? AND code = ?", dimensionType, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByType returns all dimensions of one type ordered by code
func (r *GormDimensionRepository) FindByType(ctx context.Context, dimensionType ledger.DimensionType) ([]ledger.Dimension, error) {
	var rows []models.DimensionModel
	if err := dbFrom(ctx, r.db).
		Where("type = ?", dimensionType).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	dimensions := make([]ledger.Dimension, len(rows))
	for i := range rows {
		dimensions[i] = *rows[i].ToDomain()
	}
	return dimensions, nil
}

// Save creates or updates a dimension. On create the autoincrement ID is
// written back into the domain object.
func (r *GormDimensionRepository) Save(ctx context.Context, dimension *ledger.Dimension) error {
	var model models.DimensionModel
	model.FromDomain(dimension)
	if err := dbFrom(ctx, r.db).Save(&model).Error; err != nil {
		return err
	}
	dimension.ID = model.ID
	return nil
}

// Ensure GormDimensionRepository implements DimensionRepository
var _ ledger.DimensionRepository = (*GormDimensionRepository)(nil)
