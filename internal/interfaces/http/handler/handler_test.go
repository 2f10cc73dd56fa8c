package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/glbooks/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEngine(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

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

	accountRepo := persistence.NewGormAccountRepository(db)
	require.NoError(t, persistence.SeedChartOfAccounts(context.Background(), accountRepo))

	dimensionRepo := persistence.NewGormDimensionRepository(db)
	periodRepo := persistence.NewGormPeriodRepository(db)
	voucherRepo := persistence.NewGormVoucherRepository(db)
	balanceRepo := persistence.NewGormBalanceRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	lotRepo := persistence.NewGormStockLotRepository(db)
	assetRepo := persistence.NewGormFixedAssetRepository(db)
	store := persistence.NewGormLedgerStore(db)

	vouchers := ledgerapp.NewVoucherService(voucherRepo, accountRepo, periodRepo, dimensionRepo, store)

	engine := gin.New()
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(NewAccountHandler(ledgerapp.NewAccountService(accountRepo)))
	r.Register(NewDimensionHandler(ledgerapp.NewDimensionService(dimensionRepo)))
	r.Register(NewVoucherHandler(vouchers))
	r.Register(NewPeriodHandler(ledgerapp.NewPeriodService(periodRepo, store), ledgerapp.NewBalanceService(balanceRepo)))
	r.Register(NewReceivableHandler(subledgerapp.NewReceivableService(invoiceRepo, dimensionRepo, balanceRepo, vouchers, store)))
	r.Register(NewPayableHandler(subledgerapp.NewPayableService(invoiceRepo, dimensionRepo, balanceRepo, vouchers, store)))
	r.Register(NewInventoryHandler(subledgerapp.NewInventoryService(lotRepo, balanceRepo, vouchers, store)))
	r.Register(NewFixedAssetHandler(subledgerapp.NewFixedAssetService(assetRepo, balanceRepo, vouchers, store)))
	r.Setup()

	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func voucherBody(amount int) map[string]any {
	return map[string]any{
		"date":        "2025-03-05T00:00:00Z",
		"description": "Cash sale",
		"entries": []map[string]any{
			{"account_code": "1001", "debit": amount},
			{"account_code": "6001", "credit": amount},
		},
	}
}

func TestVoucherEndpoints(t *testing.T) {
	t.Run("record review confirm", func(t *testing.T) {
		engine := setupEngine(t)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", voucherBody(500))
		require.Equal(t, http.StatusCreated, status)
		require.True(t, env.Success)

		var voucher struct {
			ID        string `json:"id"`
			VoucherNo string `json:"voucher_no"`
			Status    string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &voucher))
		assert.Equal(t, "V-2025-03-0001", voucher.VoucherNo)
		assert.Equal(t, "DRAFT", voucher.Status)

		status, env = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/vouchers/%s/review", voucher.ID), nil)
		require.Equal(t, http.StatusOK, status)
		require.True(t, env.Success)

		status, env = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/vouchers/%s/confirm", voucher.ID), nil)
		require.Equal(t, http.StatusOK, status)
		require.True(t, env.Success)

		status, env = doJSON(t, engine, http.MethodGet, "/api/v1/balances?period=2025-03&account=1001", nil)
		require.Equal(t, http.StatusOK, status)
		var balances []struct {
			Debit string `json:"debit"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &balances))
		require.Len(t, balances, 1)
		assert.Equal(t, "500", balances[0].Debit)
	})

	t.Run("unknown account maps to 404", func(t *testing.T) {
		engine := setupEngine(t)

		body := voucherBody(100)
		body["entries"].([]map[string]any)[0]["account_code"] = "9999"
		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", body)

		assert.Equal(t, http.StatusNotFound, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ACCOUNT_NOT_FOUND", env.Error.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		engine := setupEngine(t)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", map[string]any{"entries": []any{}})

		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestPeriodEndpoints(t *testing.T) {
	t.Run("posting into a closed period maps to 422", func(t *testing.T) {
		engine := setupEngine(t)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", voucherBody(500))
		require.Equal(t, http.StatusCreated, status)
		require.True(t, env.Success)

		status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/periods/2025-03/close", nil)
		require.Equal(t, http.StatusOK, status)

		status, env = doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", voucherBody(100))
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "PERIOD_CLOSED", env.Error.Code)

		status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/periods/2025-03/reopen", nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, engine, http.MethodPost, "/api/v1/vouchers", voucherBody(100))
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("closing twice maps to 422", func(t *testing.T) {
		engine := setupEngine(t)

		status, _ := doJSON(t, engine, http.MethodPost, "/api/v1/periods/2025-03/close", nil)
		require.Equal(t, http.StatusOK, status)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/periods/2025-03/close", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "PERIOD_ALREADY_CLOSED", env.Error.Code)
	})
}

func TestSubledgerEndpoints(t *testing.T) {
	t.Run("receivable round trip", func(t *testing.T) {
		engine := setupEngine(t)

		status, _ := doJSON(t, engine, http.MethodPost, "/api/v1/dimensions", map[string]any{
			"type": "CUSTOMER", "code": "C001", "name": "Acme Ltd",
		})
		require.Equal(t, http.StatusCreated, status)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/receivables", map[string]any{
			"party_code": "C001", "amount": 1000, "date": "2025-03-05T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, status)
		require.True(t, env.Success)

		status, env = doJSON(t, engine, http.MethodGet, "/api/v1/receivables/reconciliation?party=C001&period=2025-03", nil)
		require.Equal(t, http.StatusOK, status)
		var recon struct {
			Result struct {
				Pass bool `json:"pass"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &recon))
		assert.True(t, recon.Result.Pass)
	})

	t.Run("stock out beyond availability maps to 422", func(t *testing.T) {
		engine := setupEngine(t)

		status, _ := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/in", map[string]any{
			"sku": "WIDGET", "quantity": 5, "unit_cost": 10, "date": "2025-03-05T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, status)

		status, env := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/out", map[string]any{
			"sku": "WIDGET", "quantity": 8, "date": "2025-03-06T00:00:00Z",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INSUFFICIENT_INVENTORY", env.Error.Code)
	})
}
