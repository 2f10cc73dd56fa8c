package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/glbooks/backend/internal/infrastructure/config"
	"github.com/glbooks/backend/internal/infrastructure/logger"
	"github.com/glbooks/backend/internal/infrastructure/persistence"
	"github.com/glbooks/backend/internal/interfaces/http/handler"
	"github.com/glbooks/backend/internal/interfaces/http/middleware"
	"github.com/glbooks/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.HTTP.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open ledger store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing ledger store", zap.Error(err))
		}
	}()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate ledger store", zap.Error(err))
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	dimensionRepo := persistence.NewGormDimensionRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	lotRepo := persistence.NewGormStockLotRepository(db.DB)
	assetRepo := persistence.NewGormFixedAssetRepository(db.DB)
	store := persistence.NewGormLedgerStore(db.DB)

	if err := persistence.SeedChartOfAccounts(ctx, accountRepo); err != nil {
		log.Fatal("Failed to seed chart of accounts", zap.Error(err))
	}

	// Application services
	accountService := ledgerapp.NewAccountService(accountRepo)
	dimensionService := ledgerapp.NewDimensionService(dimensionRepo)
	voucherService := ledgerapp.NewVoucherService(voucherRepo, accountRepo, periodRepo, dimensionRepo, store)
	periodService := ledgerapp.NewPeriodService(periodRepo, store)
	balanceService := ledgerapp.NewBalanceService(balanceRepo)
	receivableService := subledgerapp.NewReceivableService(invoiceRepo, dimensionRepo, balanceRepo, voucherService, store)
	payableService := subledgerapp.NewPayableService(invoiceRepo, dimensionRepo, balanceRepo, voucherService, store)
	inventoryService := subledgerapp.NewInventoryService(lotRepo, balanceRepo, voucherService, store)
	fixedAssetService := subledgerapp.NewFixedAssetService(assetRepo, balanceRepo, voucherService, store)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAccountHandler(accountService))
	r.Register(handler.NewDimensionHandler(dimensionService))
	r.Register(handler.NewVoucherHandler(voucherService))
	r.Register(handler.NewPeriodHandler(periodService, balanceService))
	r.Register(handler.NewReceivableHandler(receivableService))
	r.Register(handler.NewPayableHandler(payableService))
	r.Register(handler.NewInventoryHandler(inventoryService))
	r.Register(handler.NewFixedAssetHandler(fixedAssetService))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports store reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "ok",
		})
	}
}
