package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBalanceRepository implements BalanceRepository using GORM. It is
// read-only: balance writes happen inside the GormLedgerStore transactions.
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// Get returns the bucket for the key. When no bucket has been materialized
// yet, the result carries the latest prior period's closing as both opening
// and closing, so reads across unclosed periods stay continuous.
func (r *GormBalanceRepository) Get(ctx context.Context, key ledger.BalanceKey) (*ledger.Balance, error) {
	db := dbFrom(ctx, r.db)
	model, err := findBalanceModel(db, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return seedBalance(db, key)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns every bucket of the period
func (r *GormBalanceRepository) FindByPeriod(ctx context.Context, period string) ([]ledger.Balance, error) {
	var rows []models.BalanceModel
	if err := dbFrom(ctx, r.db).
		Where("period = ?", period).
		Order("account_code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBalances(rows), nil
}

// FindByAccountAndPeriod returns the account's buckets for the period,
// one per dimension combination
func (r *GormBalanceRepository) FindByAccountAndPeriod(ctx context.Context, accountCode, period string) ([]ledger.Balance, error) {
	var rows []models.BalanceModel
	if err := dbFrom(ctx, r.db).
		Where("account_code = ? AND period = ?", accountCode, period).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBalances(rows), nil
}

// findBalanceModel loads the bucket row matching the full balance key
func findBalanceModel(db *gorm.DB, key ledger.BalanceKey) (*models.BalanceModel, error) {
	var model models.BalanceModel
	err := db.
		Where("account_code = ? AND period = ? AND department_id = ? AND project_id = ? AND customer_id = ? AND supplier_id = ? AND employee_id = ?",
			key.AccountCode, key.Period,
			key.DepartmentID, key.ProjectID, key.CustomerID, key.SupplierID, key.EmployeeID).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// latestClosingBefore returns the closing balance of the most recent period
// before key.Period holding a bucket for the same account and dimensions.
// Period labels sort lexicographically in chronological order.
func latestClosingBefore(db *gorm.DB, key ledger.BalanceKey) (decimal.Decimal, error) {
	var model models.BalanceModel
	err := db.
		Where("account_code = ? AND period < ? AND department_id = ? AND project_id = ? AND customer_id = ? AND supplier_id = ? AND employee_id = ?",
			key.AccountCode, key.Period,
			key.DepartmentID, key.ProjectID, key.CustomerID, key.SupplierID, key.EmployeeID).
		Order("period DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return model.Closing, nil
}

func toDomainBalances(rows []models.BalanceModel) []ledger.Balance {
	balances := make([]ledger.Balance, len(rows))
	for i := range rows {
		balances[i] = *rows[i].ToDomain()
	}
	return balances
}

// Ensure GormBalanceRepository implements BalanceRepository
var _ ledger.BalanceRepository = (*GormBalanceRepository)(nil)
