package cli

import (
	"context"
	"flag"

	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/google/subcommands"
)

// apCmd is a container for accounts-payable subcommands
type apCmd struct{}

func (*apCmd) Name() string     { return "ap" }
func (*apCmd) Synopsis() string { return "accounts payable subledger" }
func (*apCmd) Usage() string {
	return `glbooks ap <subcommand> [args]

Commands:
  add       - Record a supplier bill.
  settle    - Settle against a bill.
  list      - List a supplier's outstanding bills.
  reconcile - Compare outstanding payables against the general ledger.
`
}

func (c *apCmd) SetFlags(f *flag.FlagSet) {}
func (c *apCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "ap")
	commander.Register(&apAddCmd{}, "")
	commander.Register(&apSettleCmd{}, "")
	commander.Register(&apListCmd{}, "")
	commander.Register(&apReconcileCmd{}, "")
	return commander.Execute(ctx, args...)
}

type apAddCmd struct {
	supplier string
	amount   string
	date     string
	remark   string
}

func (*apAddCmd) Name() string     { return "add" }
func (*apAddCmd) Synopsis() string { return "record a supplier bill" }
func (*apAddCmd) Usage() string {
	return `glbooks ap add -supplier <code> -amount <amount> -date <YYYY-MM-DD> [-remark <text>]

  Records the bill and posts expense against payable tagged with the
  supplier dimension.
`
}

func (c *apAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Supplier dimension code.")
	f.StringVar(&c.amount, "amount", "", "Bill amount.")
	f.StringVar(&c.date, "date", "", "Bill date, YYYY-MM-DD.")
	f.StringVar(&c.remark, "remark", "", "Optional remark.")
}

func (c *apAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		amount, err := parseDecimal("amount", c.amount)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.payables.Add(ctx, subledgerapp.AddInvoiceRequest{
			PartyCode: c.supplier,
			Amount:    amount,
			Date:      date,
			Remark:    c.remark,
		})
	})
}

type apSettleCmd struct {
	id     string
	amount string
	date   string
}

func (*apSettleCmd) Name() string     { return "settle" }
func (*apSettleCmd) Synopsis() string { return "settle against a supplier bill" }
func (*apSettleCmd) Usage() string {
	return `glbooks ap settle -id <invoice-id> -amount <amount> -date <YYYY-MM-DD>

  Applies the payment and posts payable against cash.
`
}

func (c *apSettleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Invoice ID.")
	f.StringVar(&c.amount, "amount", "", "Settlement amount.")
	f.StringVar(&c.date, "date", "", "Settlement date, YYYY-MM-DD.")
}

func (c *apSettleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		id, err := parseID(c.id)
		if err != nil {
			return nil, err
		}
		amount, err := parseDecimal("amount", c.amount)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.payables.Settle(ctx, subledgerapp.SettleInvoiceRequest{
			InvoiceID: id,
			Amount:    amount,
			Date:      date,
		})
	})
}

type apListCmd struct {
	supplier string
}

func (*apListCmd) Name() string     { return "list" }
func (*apListCmd) Synopsis() string { return "list a supplier's outstanding bills" }
func (*apListCmd) Usage() string {
	return `glbooks ap list -supplier <code>
`
}

func (c *apListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Supplier dimension code.")
}

func (c *apListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.payables.Outstanding(ctx, c.supplier)
	})
}

type apReconcileCmd struct {
	supplier string
	period   string
}

func (*apReconcileCmd) Name() string     { return "reconcile" }
func (*apReconcileCmd) Synopsis() string { return "reconcile payables against the general ledger" }
func (*apReconcileCmd) Usage() string {
	return `glbooks ap reconcile -supplier <code> -period <YYYY-MM>
`
}

func (c *apReconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Supplier dimension code.")
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *apReconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.payables.Reconcile(ctx, c.supplier, c.period)
	})
}
