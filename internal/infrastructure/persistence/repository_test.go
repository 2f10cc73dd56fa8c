package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	return db
}

func TestGormAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by code", func(t *testing.T) {
		a, err := ledger.NewAccount("1001", "Cash on hand", 1, "", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowOperating)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByCode(ctx, "1001")
		require.NoError(t, err)
		assert.Equal(t, "Cash on hand", found.Name)
		assert.Equal(t, ledger.DirectionDebit, found.Direction)
	})

	t.Run("missing account yields not found", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, "4711")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, SeedChartOfAccounts(ctx, repo))
		require.NoError(t, SeedChartOfAccounts(ctx, repo))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, len(systemAccounts))
	})
}

func TestGormDimensionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDimensionRepository(db)
	ctx := context.Background()

	t.Run("save assigns autoincrement ID", func(t *testing.T) {
		d, err := ledger.NewDimension(ledger.DimensionCustomer, "C001", "Acme Ltd", 0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, d))
		assert.Greater(t, d.ID, int64(0))

		found, err := repo.FindByTypeAndCode(ctx, ledger.DimensionCustomer, "C001")
		require.NoError(t, err)
		assert.Equal(t, d.ID, found.ID)
		assert.Equal(t, "Acme Ltd", found.Name)
	})

	t.Run("same code allowed across types", func(t *testing.T) {
		d, err := ledger.NewDimension(ledger.DimensionSupplier, "C001", "Acme as supplier", 0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, d))

		byType, err := repo.FindByType(ctx, ledger.DimensionSupplier)
		require.NoError(t, err)
		assert.Len(t, byType, 1)
	})
}

func TestGormVoucherRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoucherRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []ledger.VoucherEntry{
		{AccountCode: "1001", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{AccountCode: "6001", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}

	t.Run("voucher numbers are sequential per period", func(t *testing.T) {
		no, err := repo.NextVoucherNo(ctx, "2025-03")
		require.NoError(t, err)
		assert.Equal(t, "V-2025-03-0001", no)

		v, err := ledger.NewVoucher(no, date, "first", entries)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, v))

		no, err = repo.NextVoucherNo(ctx, "2025-03")
		require.NoError(t, err)
		assert.Equal(t, "V-2025-03-0002", no)
	})

	t.Run("round-trips entries in order", func(t *testing.T) {
		v, err := ledger.NewVoucher("V-2025-03-0002", date, "second", entries)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, v))

		found, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		require.Len(t, found.Entries, 2)
		assert.Equal(t, "1001", found.Entries[0].AccountCode)
		assert.Equal(t, "6001", found.Entries[1].AccountCode)
		assert.True(t, found.Entries[0].Debit.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, ledger.VoucherStatusDraft, found.Status)
	})
}

func TestGormBalanceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBalanceRepository(db)
	ctx := context.Background()

	t.Run("absent bucket reads as zero-valued", func(t *testing.T) {
		key := ledger.NewBalanceKey("1001", "2025-03", ledger.DimensionRef{DepartmentID: 3})
		b, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, key, b.Key)
		assert.True(t, b.Opening.IsZero())
		assert.True(t, b.Closing.IsZero())
	})
}

func TestGormInvoiceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("outstanding excludes settled invoices", func(t *testing.T) {
		paid, err := subledger.NewInvoice(subledger.InvoiceKindReceivable, 7, decimal.NewFromInt(100), date, "settled")
		require.NoError(t, err)
		require.NoError(t, paid.Settle(decimal.NewFromInt(100)))
		require.NoError(t, repo.Save(ctx, paid))

		open, err := subledger.NewInvoice(subledger.InvoiceKindReceivable, 7, decimal.NewFromInt(250), date.AddDate(0, 0, 2), "open")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, open))

		outstanding, err := repo.FindOutstanding(ctx, subledger.InvoiceKindReceivable, 7)
		require.NoError(t, err)
		require.Len(t, outstanding, 1)
		assert.True(t, outstanding[0].Outstanding().Equal(decimal.NewFromInt(250)))
	})

	t.Run("find by party scopes kind and period", func(t *testing.T) {
		bill, err := subledger.NewInvoice(subledger.InvoiceKindPayable, 7, decimal.NewFromInt(80), date, "bill")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, bill))

		receivables, err := repo.FindByParty(ctx, subledger.InvoiceKindReceivable, 7, "2025-03")
		require.NoError(t, err)
		assert.Len(t, receivables, 2)

		payables, err := repo.FindByParty(ctx, subledger.InvoiceKindPayable, 7, "2025-03")
		require.NoError(t, err)
		assert.Len(t, payables, 1)
	})
}

func TestGormStockLotRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockLotRepository(db)
	ctx := context.Background()

	t.Run("open lots come back oldest first", func(t *testing.T) {
		newer, err := subledger.NewInboundLot("SKU-1", decimal.NewFromInt(5), decimal.NewFromInt(60), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		older, err := subledger.NewInboundLot("SKU-1", decimal.NewFromInt(10), decimal.NewFromInt(50), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.SaveAll(ctx, []*subledger.StockLot{newer, older}))

		lots, err := repo.FindOpenLots(ctx, "SKU-1")
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.True(t, lots[0].Date.Before(lots[1].Date))
		assert.True(t, lots[0].UnitCost.Equal(decimal.NewFromInt(50)))
	})

	t.Run("drained lots drop out of open set", func(t *testing.T) {
		lots, err := repo.FindOpenLots(ctx, "SKU-1")
		require.NoError(t, err)

		_, err = subledger.ConsumeFIFO(lots, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, repo.SaveAll(ctx, lots))

		remaining, err := repo.FindOpenLots(ctx, "SKU-1")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.True(t, remaining[0].UnitCost.Equal(decimal.NewFromInt(60)))
	})
}

func TestGormFixedAssetRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFixedAssetRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("round-trips asset and charge", func(t *testing.T) {
		asset, err := subledger.NewFixedAsset("Delivery van", decimal.NewFromInt(12000), decimal.NewFromInt(2000), 3, date)
		require.NoError(t, err)
		charge := asset.Depreciate()
		require.NoError(t, repo.Save(ctx, asset))

		record, err := subledger.NewDepreciationCharge(asset.ID, "2025-01", charge)
		require.NoError(t, err)
		require.NoError(t, repo.SaveCharge(ctx, record))

		found, err := repo.FindByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.PeriodsCharged)
		assert.True(t, found.Accumulated.Equal(charge))

		existing, err := repo.FindCharge(ctx, asset.ID, "2025-01")
		require.NoError(t, err)
		assert.True(t, existing.Amount.Equal(charge))

		_, err = repo.FindCharge(ctx, asset.ID, "2025-02")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
