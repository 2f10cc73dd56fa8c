package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type closeCmd struct {
	period string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close a period and carry balances forward" }
func (*closeCmd) Usage() string {
	return `glbooks close -period <YYYY-MM>

  Recomputes the period's closing balances, carries them forward as the
  opening balances of the next period and marks the period closed.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.periods.Close(ctx, c.period)
	})
}

type reopenCmd struct {
	period string
}

func (*reopenCmd) Name() string     { return "reopen" }
func (*reopenCmd) Synopsis() string { return "reopen a closed period for posting" }
func (*reopenCmd) Usage() string {
	return `glbooks reopen -period <YYYY-MM>
`
}

func (c *reopenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *reopenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.periods.Reopen(ctx, c.period)
	})
}

type periodsCmd struct{}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "list all known periods" }
func (*periodsCmd) Usage() string {
	return `glbooks periods
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {}

func (c *periodsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.periods.List(ctx)
	})
}

type balancesCmd struct {
	period  string
	account string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "list the balance buckets of a period" }
func (*balancesCmd) Usage() string {
	return `glbooks balances -period <YYYY-MM> [-account <code>]

  Lists opening, movement and closing per (account, dimension) bucket.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
	f.StringVar(&c.account, "account", "", "Restrict to one account code.")
}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		if c.account != "" {
			return a.balances.ListByAccount(ctx, c.account, c.period)
		}
		return a.balances.ListByPeriod(ctx, c.period)
	})
}
