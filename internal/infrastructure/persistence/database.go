package persistence

import (
	"context"
	"fmt"

	"github.com/glbooks/backend/internal/infrastructure/config"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the ledger store connection and provides methods for
// database operations. The store is a single SQLite file; SQLite's
// transaction isolation serializes concurrent writers.
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new ledger store connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithLogger(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithLogger creates a new ledger store connection with a custom
// GORM logger (e.g. the zap adapter)
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// One connection: posting and period close serialize through the store.
	sqlDB.SetMaxOpenConns(1)

	return &Database{DB: db}, nil
}

// Migrate creates or updates the ledger schema
func (d *Database) Migrate(ctx context.Context) error {
	return d.DB.WithContext(ctx).AutoMigrate(
		&models.AccountModel{},
		&models.DimensionModel{},
		&models.PeriodModel{},
		&models.VoucherModel{},
		&models.VoucherEntryModel{},
		&models.BalanceModel{},
		&models.InvoiceModel{},
		&models.StockLotModel{},
		&models.FixedAssetModel{},
		&models.DepreciationChargeModel{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
