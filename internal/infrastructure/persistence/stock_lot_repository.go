package persistence

import (
	"context"

	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockLotRepository implements StockLotRepository using GORM
type GormStockLotRepository struct {
	db *gorm.DB
}

// NewGormStockLotRepository creates a new GormStockLotRepository
func NewGormStockLotRepository(db *gorm.DB) *GormStockLotRepository {
	return &GormStockLotRepository{db: db}
}

// FindOpenLots returns IN lots of the SKU with remaining quantity, in FIFO
// order (date, then creation time)
func (r *GormStockLotRepository) FindOpenLots(ctx context.Context, sku string) ([]*subledger.StockLot, error) {
	var rows []models.StockLotModel
	if err := dbFrom(ctx, r.db).
		Where("sku = ? AND direction = ? AND remaining > 0", sku, subledger.MovementIn).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLots(rows), nil
}

// FindAllOpenLots returns every IN lot with remaining quantity
func (r *GormStockLotRepository) FindAllOpenLots(ctx context.Context) ([]*subledger.StockLot, error) {
	var rows []models.StockLotModel
	if err := dbFrom(ctx, r.db).
		Where("direction = ? AND remaining > 0", subledger.MovementIn).
		Order("sku ASC, date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLots(rows), nil
}

// Save creates or updates a lot
func (r *GormStockLotRepository) Save(ctx context.Context, lot *subledger.StockLot) error {
	var model models.StockLotModel
	model.FromDomain(lot)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// SaveAll persists a set of lots in one transaction. FIFO consumption draws
// down several IN lots and records the OUT movement as one unit of work.
func (r *GormStockLotRepository) SaveAll(ctx context.Context, lots []*subledger.StockLot) error {
	if len(lots) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, lot := range lots {
			var model models.StockLotModel
			model.FromDomain(lot)
			if err := tx.Save(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toDomainLots(rows []models.StockLotModel) []*subledger.StockLot {
	lots := make([]*subledger.StockLot, len(rows))
	for i := range rows {
		lots[i] = rows[i].ToDomain()
	}
	return lots
}

// Ensure GormStockLotRepository implements StockLotRepository
var _ subledger.StockLotRepository = (*GormStockLotRepository)(nil)
