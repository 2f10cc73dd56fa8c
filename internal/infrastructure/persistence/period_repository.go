package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindByName finds a period by its YYYY-MM label
func (r *GormPeriodRepository) FindByName(ctx context.Context, name string) (*ledger.Period, error) {
	var model models.PeriodModel
	if err := dbFrom(ctx, r.db).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreate returns the period, creating it open when absent
func (r *GormPeriodRepository) FindOrCreate(ctx context.Context, name string) (*ledger.Period, error) {
	period, err := r.FindByName(ctx, name)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	period, err = ledger.NewPeriod(name)
	if err != nil {
		return nil, err
	}
	if err := r.Save(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// FindAll returns every period ordered by label
func (r *GormPeriodRepository) FindAll(ctx context.Context) ([]ledger.Period, error) {
	var rows []models.PeriodModel
	if err := dbFrom(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	periods := make([]ledger.Period, len(rows))
	for i := range rows {
		periods[i] = *rows[i].ToDomain()
	}
	return periods, nil
}

// Save creates or updates a period
func (r *GormPeriodRepository) Save(ctx context.Context, period *ledger.Period) error {
	var model models.PeriodModel
	model.FromDomain(period)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ ledger.PeriodRepository = (*GormPeriodRepository)(nil)
