package cli

import (
	"context"
	"flag"

	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/google/subcommands"
)

// inventoryCmd is a container for inventory subcommands
type inventoryCmd struct{}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "FIFO inventory subledger" }
func (*inventoryCmd) Usage() string {
	return `glbooks inventory <subcommand> [args]

Commands:
  in        - Record an inbound lot.
  out       - Issue stock at FIFO cost.
  lots      - List a SKU's unconsumed lots in FIFO order.
  reconcile - Compare lot values against the general ledger.
`
}

func (c *inventoryCmd) SetFlags(f *flag.FlagSet) {}
func (c *inventoryCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "inventory")
	commander.Register(&inventoryInCmd{}, "")
	commander.Register(&inventoryOutCmd{}, "")
	commander.Register(&inventoryLotsCmd{}, "")
	commander.Register(&inventoryReconcileCmd{}, "")
	return commander.Execute(ctx, args...)
}

type inventoryInCmd struct {
	sku      string
	qty      string
	unitCost string
	date     string
}

func (*inventoryInCmd) Name() string     { return "in" }
func (*inventoryInCmd) Synopsis() string { return "record an inbound lot" }
func (*inventoryInCmd) Usage() string {
	return `glbooks inventory in -sku <sku> -qty <quantity> -unit-cost <cost> -date <YYYY-MM-DD>

  Records the lot and posts inventory against cash.
`
}

func (c *inventoryInCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sku, "sku", "", "Stock keeping unit.")
	f.StringVar(&c.qty, "qty", "", "Quantity received.")
	f.StringVar(&c.unitCost, "unit-cost", "", "Cost per unit.")
	f.StringVar(&c.date, "date", "", "Movement date, YYYY-MM-DD.")
}

func (c *inventoryInCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		qty, err := parseDecimal("qty", c.qty)
		if err != nil {
			return nil, err
		}
		unitCost, err := parseDecimal("unit-cost", c.unitCost)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.inventory.In(ctx, subledgerapp.StockInRequest{
			SKU:      c.sku,
			Quantity: qty,
			UnitCost: unitCost,
			Date:     date,
		})
	})
}

type inventoryOutCmd struct {
	sku  string
	qty  string
	date string
}

func (*inventoryOutCmd) Name() string     { return "out" }
func (*inventoryOutCmd) Synopsis() string { return "issue stock at FIFO cost" }
func (*inventoryOutCmd) Usage() string {
	return `glbooks inventory out -sku <sku> -qty <quantity> -date <YYYY-MM-DD>

  Consumes open lots earliest first and posts cost of goods sold against
  inventory at the consumed cost. Fails if availability falls short.
`
}

func (c *inventoryOutCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sku, "sku", "", "Stock keeping unit.")
	f.StringVar(&c.qty, "qty", "", "Quantity issued.")
	f.StringVar(&c.date, "date", "", "Movement date, YYYY-MM-DD.")
}

func (c *inventoryOutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		qty, err := parseDecimal("qty", c.qty)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.inventory.Out(ctx, subledgerapp.StockOutRequest{
			SKU:      c.sku,
			Quantity: qty,
			Date:     date,
		})
	})
}

type inventoryLotsCmd struct {
	sku string
}

func (*inventoryLotsCmd) Name() string     { return "lots" }
func (*inventoryLotsCmd) Synopsis() string { return "list a SKU's unconsumed lots" }
func (*inventoryLotsCmd) Usage() string {
	return `glbooks inventory lots -sku <sku>
`
}

func (c *inventoryLotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sku, "sku", "", "Stock keeping unit.")
}

func (c *inventoryLotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.inventory.OpenLots(ctx, c.sku)
	})
}

type inventoryReconcileCmd struct {
	period string
}

func (*inventoryReconcileCmd) Name() string     { return "reconcile" }
func (*inventoryReconcileCmd) Synopsis() string { return "reconcile inventory against the general ledger" }
func (*inventoryReconcileCmd) Usage() string {
	return `glbooks inventory reconcile -period <YYYY-MM>
`
}

func (c *inventoryReconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *inventoryReconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.inventory.Reconcile(ctx, c.period)
	})
}
