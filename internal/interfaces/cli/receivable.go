package cli

import (
	"context"
	"flag"

	subledgerapp "github.com/glbooks/backend/internal/application/subledger"
	"github.com/google/subcommands"
)

// arCmd is a container for accounts-receivable subcommands
type arCmd struct{}

func (*arCmd) Name() string     { return "ar" }
func (*arCmd) Synopsis() string { return "accounts receivable subledger" }
func (*arCmd) Usage() string {
	return `glbooks ar <subcommand> [args]

Commands:
  add       - Record a customer invoice.
  settle    - Settle against an invoice.
  list      - List a customer's outstanding invoices.
  reconcile - Compare outstanding receivables against the general ledger.
`
}

func (c *arCmd) SetFlags(f *flag.FlagSet) {}
func (c *arCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "ar")
	commander.Register(&arAddCmd{}, "")
	commander.Register(&arSettleCmd{}, "")
	commander.Register(&arListCmd{}, "")
	commander.Register(&arReconcileCmd{}, "")
	return commander.Execute(ctx, args...)
}

type arAddCmd struct {
	customer string
	amount   string
	date     string
	remark   string
}

func (*arAddCmd) Name() string     { return "add" }
func (*arAddCmd) Synopsis() string { return "record a customer invoice" }
func (*arAddCmd) Usage() string {
	return `glbooks ar add -customer <code> -amount <amount> -date <YYYY-MM-DD> [-remark <text>]

  Records the invoice and posts receivable against revenue tagged with the
  customer dimension.
`
}

func (c *arAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Customer dimension code.")
	f.StringVar(&c.amount, "amount", "", "Invoice amount.")
	f.StringVar(&c.date, "date", "", "Invoice date, YYYY-MM-DD.")
	f.StringVar(&c.remark, "remark", "", "Optional remark.")
}

func (c *arAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		amount, err := parseDecimal("amount", c.amount)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(c.date)
		if err != nil {
			return nil, err
		}
		return a.receivables.Add(ctx, subledgerapp.AddInvoiceRequest{
			PartyCode: c.customer,
			Amount:    amount,
			Date:      date,
			Remark:    c.remark,
		})
	})
}

type arSettleCmd struct {
	id     string
	amount string
	date   string
}

func (*arSettleCmd) Name() string     { return "settle" }
func (*arSettleCmd) Synopsis() string { return "settle against a customer invoice" }
func (*arSettleCmd) Usage() string {
	return `glbooks ar settle -id <invoice-id> -amount <amount> -date <YYYY-MM-DD>

  Applies the payment and posts cash against receivable.
`
}

func (c *arSettleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Invoice ID.")
	f.StringVar(&c.amount, "amount", "", "Settlement amount.")
	f.StringVar(&c.date, "date", "", "Settlement date, YYYY-MM-DD.")
}

func (c *arSettleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		return a.receivables.Settle(ctx, subledgerapp.SettleInvoiceRequest{
			InvoiceID: id,
			Amount:    amount,
			Date:      date,
		})
	})
}

type arListCmd struct {
	customer string
}

func (*arListCmd) Name() string     { return "list" }
func (*arListCmd) Synopsis() string { return "list a customer's outstanding invoices" }
func (*arListCmd) Usage() string {
	return `glbooks ar list -customer <code>
`
}

func (c *arListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Customer dimension code.")
}

func (c *arListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.receivables.Outstanding(ctx, c.customer)
	})
}

type arReconcileCmd struct {
	customer string
	period   string
}

func (*arReconcileCmd) Name() string     { return "reconcile" }
func (*arReconcileCmd) Synopsis() string { return "reconcile receivables against the general ledger" }
func (*arReconcileCmd) Usage() string {
	return `glbooks ar reconcile -customer <code> -period <YYYY-MM>
`
}

func (c *arReconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Customer dimension code.")
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *arReconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.receivables.Reconcile(ctx, c.customer, c.period)
	})
}
