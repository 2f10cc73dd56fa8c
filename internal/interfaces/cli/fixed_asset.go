package cli

import (
	"context"
	"flag"

	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/google/subcommands"
)

// fixedAssetCmd is a container for fixed-asset subcommands
type fixedAssetCmd struct{}

func (*fixedAssetCmd) Name() string     { return "fixed-asset" }
func (*fixedAssetCmd) Synopsis() string { return "fixed asset subledger" }
func (*fixedAssetCmd) Usage() string {
	return `glbooks fixed-asset <subcommand> [args]

Commands:
  add        - Acquire a fixed asset.
  depreciate - Charge straight-line depreciation for a period.
  list       - List assets with their accumulated depreciation.
  reconcile  - Compare the asset register against the general ledger.
`
}

func (c *fixedAssetCmd) SetFlags(f *flag.FlagSet) {}
func (c *fixedAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "fixed-asset")
	commander.Register(&fixedAssetAddCmd{}, "")
	commander.Register(&fixedAssetDepreciateCmd{}, "")
	commander.Register(&fixedAssetListCmd{}, "")
	commander.Register(&fixedAssetReconcileCmd{}, "")
	return commander.Execute(ctx, args...)
}

type fixedAssetAddCmd struct {
	name    string
	cost    string
	life    int
	salvage string
	date    string
}

func (*fixedAssetAddCmd) Name() string     { return "add" }
func (*fixedAssetAddCmd) Synopsis() string { return "acquire a fixed asset" }
func (*fixedAssetAddCmd) Usage() string {
	return `glbooks fixed-asset add -name <name> -cost <cost> -life <periods> [-salvage <value>] -date <YYYY-MM-DD>

  Records the asset and posts fixed assets against cash.
`
}

func (c *fixedAssetAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Asset name.")
	f.StringVar(&c.cost, "cost", "", "Acquisition cost.")
	f.IntVar(&c.life, "life", 0, "Useful life in periods.")
	f.StringVar(&c.salvage, "salvage", "0", "Salvage value.")
	f.StringVar(&c.date, "date", "", "Acquisition date, YYYY-MM-DD.")
}

func (c *fixedAssetAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		cost, err := parseDecimal("cost", c.cost)
		if err != nil {
			return nil, err
		}
		salvage, err := parseDecimal("salvage", c.salvage)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.fixedAssets.Add(ctx, subledgerapp.AddAssetRequest{
			Name:        c.name,
			Cost:        cost,
			Salvage:     salvage,
			LifePeriods: c.life,
			Date:        date,
		})
	})
}

type fixedAssetDepreciateCmd struct {
	id     string
	period string
}

func (*fixedAssetDepreciateCmd) Name() string     { return "depreciate" }
func (*fixedAssetDepreciateCmd) Synopsis() string { return "charge a period's depreciation" }
func (*fixedAssetDepreciateCmd) Usage() string {
	return `glbooks fixed-asset depreciate -period <YYYY-MM> [-id <asset-id>]

  Charges the straight-line amount for the period and posts depreciation
  expense against accumulated depreciation, at most once per asset and
  period. Without -id every asset with remaining depreciable base is
  charged; already-charged and fully depreciated assets are skipped.
`
}

func (c *fixedAssetDepreciateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
	f.StringVar(&c.id, "id", "", "Asset ID; omit to charge every asset.")
}

func (c *fixedAssetDepreciateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		if c.id == "" {
			return a.fixedAssets.DepreciatePeriod(ctx, c.period)
		}
		id, err := parseID(c.id)
		if err != nil {
			return nil, err
		}
		return a.fixedAssets.Depreciate(ctx, subledgerapp.DepreciateRequest{
			AssetID: id,
			Period:  c.period,
		})
	})
}

type fixedAssetListCmd struct {
	period string
}

func (*fixedAssetListCmd) Name() string     { return "list" }
func (*fixedAssetListCmd) Synopsis() string { return "list assets" }
func (*fixedAssetListCmd) Usage() string {
	return `glbooks fixed-asset list [-period <YYYY-MM>]

  With -period, accumulated depreciation and net book value are reported
  as of that period.
`
}

func (c *fixedAssetListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *fixedAssetListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.fixedAssets.List(ctx, c.period)
	})
}

type fixedAssetReconcileCmd struct {
	period string
}

func (*fixedAssetReconcileCmd) Name() string     { return "reconcile" }
func (*fixedAssetReconcileCmd) Synopsis() string { return "reconcile fixed assets against the general ledger" }
func (*fixedAssetReconcileCmd) Usage() string {
	return `glbooks fixed-asset reconcile -period <YYYY-MM>

  Compares total asset cost against the fixed-asset account and the sum of
  depreciation charges against accumulated depreciation.
`
}

func (c *fixedAssetReconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *fixedAssetReconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.fixedAssets.Reconcile(ctx, c.period)
	})
}
