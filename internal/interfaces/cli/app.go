// Package cli implements the ledger command line interface. Commands read
// JSON requests from stdin, write JSON results to stdout and log to stderr;
// failures print a {"code","message"} body and exit non-zero.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/infrastructure/config"
	"github.com/glbooks/backend/internal/infrastructure/logger"
	"github.com/glbooks/backend/internal/infrastructure/persistence"
	"github.com/go-playground/validator/v10"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register registers every ledger command on the commander
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "store")

	c.Register(&recordCmd{}, "vouchers")
	c.Register(&reviewCmd{}, "vouchers")
	c.Register(&confirmCmd{}, "vouchers")
	c.Register(&rejectCmd{}, "vouchers")
	c.Register(&vouchersCmd{}, "vouchers")

	c.Register(&closeCmd{}, "periods")
	c.Register(&reopenCmd{}, "periods")
	c.Register(&periodsCmd{}, "periods")
	c.Register(&balancesCmd{}, "periods")

	c.Register(&accountsCmd{}, "registry")
	c.Register(&dimensionsCmd{}, "registry")

	c.Register(&arCmd{}, "subledgers")
	c.Register(&apCmd{}, "subledgers")
	c.Register(&inventoryCmd{}, "subledgers")
	c.Register(&fixedAssetCmd{}, "subledgers")
}

// app bundles the wired services for one command execution. CLI processes
// are short lived; everything is built per invocation and torn down after.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *persistence.Database
	closer func()

	accounts    *ledgerapp.AccountService
	dimensions  *ledgerapp.DimensionService
	periods     *ledgerapp.PeriodService
	vouchers    *ledgerapp.VoucherService
	balances    *ledgerapp.BalanceService
	receivables *subledgerapp.ReceivableService
	payables    *subledgerapp.PayableService
	inventory   *subledgerapp.InventoryService
	fixedAssets *subledgerapp.FixedAssetService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		return nil, err
	}

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	dimensionRepo := persistence.NewGormDimensionRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	lotRepo := persistence.NewGormStockLotRepository(db.DB)
	assetRepo := persistence.NewGormFixedAssetRepository(db.DB)
	store := persistence.NewGormLedgerStore(db.DB)

	vouchers := ledgerapp.NewVoucherService(voucherRepo, accountRepo, periodRepo, dimensionRepo, store)

	return &app{
		cfg: cfg,
		log: log,
		db:  db,
		closer: func() {
			_ = db.Close()
			_ = log.Sync()
		},
		accounts:    ledgerapp.NewAccountService(accountRepo),
		dimensions:  ledgerapp.NewDimensionService(dimensionRepo),
		periods:     ledgerapp.NewPeriodService(periodRepo, store),
		vouchers:    vouchers,
		balances:    ledgerapp.NewBalanceService(balanceRepo),
		receivables: subledgerapp.NewReceivableService(invoiceRepo, dimensionRepo, balanceRepo, vouchers, store),
		payables:    subledgerapp.NewPayableService(invoiceRepo, dimensionRepo, balanceRepo, vouchers, store),
		inventory:   subledgerapp.NewInventoryService(lotRepo, balanceRepo, vouchers, store),
		fixedAssets: subledgerapp.NewFixedAssetService(assetRepo, balanceRepo, vouchers, store),
	}, nil
}

// validate checks request DTOs against the same binding tags the HTTP API
// enforces
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// run wires the app, executes fn and renders its result or error as JSON
func run(ctx context.Context, fn func(ctx context.Context, a *app) (any, error)) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.closer()

	result, err := fn(ctx, a)
	if err != nil {
		a.log.Error("command failed", zap.Error(err))
		return fail(err)
	}
	return emit(result)
}

// decodeStdin reads and validates a JSON request body from stdin
func decodeStdin(req any) error {
	if err := json.NewDecoder(os.Stdin).Decode(req); err != nil {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Cannot parse request: %v", err))
	}
	if err := validate.Struct(req); err != nil {
		return shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	return nil
}

// emit writes the result JSON to stdout
func emit(result any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// fail writes a {"code","message"} body to stdout and exits non-zero
func fail(err error) subcommands.ExitStatus {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = shared.NewDomainError("INTERNAL_ERROR", err.Error())
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(domainErr)
	return subcommands.ExitFailure
}
