package cli

import (
	"context"
	"flag"

	"github.com/glbooks/backend/internal/infrastructure/persistence"
	"github.com/google/subcommands"
)

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the ledger store and seed the chart of accounts" }
func (*initCmd) Usage() string {
	return `glbooks init

  Creates the SQLite ledger store (schema migration) and seeds the system
  chart of accounts. Safe to run repeatedly.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {}

func (c *initCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		if err := a.db.Migrate(ctx); err != nil {
			return nil, err
		}
		accountRepo := persistence.NewGormAccountRepository(a.db.DB)
		if err := persistence.SeedChartOfAccounts(ctx, accountRepo); err != nil {
			return nil, err
		}
		return map[string]string{"status": "initialized", "store": a.cfg.Database.Path}, nil
	})
}
