package cli

import (
	"context"
	"flag"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/google/subcommands"
)

// accountsCmd is a container for chart-of-accounts subcommands
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "manage the chart of accounts" }
func (*accountsCmd) Usage() string {
	return `glbooks accounts <subcommand> [args]

Commands:
  add     - Add an account from a JSON request on stdin.
  list    - List the full chart of accounts.
  disable - Block postings against an account.
  enable  - Allow postings against an account again.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}
func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "accounts")
	commander.Register(&accountAddCmd{}, "")
	commander.Register(&accountListCmd{}, "")
	commander.Register(&accountToggleCmd{enable: false}, "")
	commander.Register(&accountToggleCmd{enable: true}, "")
	return commander.Execute(ctx, args...)
}

type accountAddCmd struct{}

func (*accountAddCmd) Name() string     { return "add" }
func (*accountAddCmd) Synopsis() string { return "add an account" }
func (*accountAddCmd) Usage() string {
	return `glbooks accounts add < account.json

  Reads {"code","name","level","parent_code","type","direction","cash_flow"}
  from stdin.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		var req ledgerapp.CreateAccountRequest
		if err := decodeStdin(&req); err != nil {
			return nil, err
		}
		return a.accounts.Create(ctx, req)
	})
}

type accountListCmd struct{}

func (*accountListCmd) Name() string     { return "list" }
func (*accountListCmd) Synopsis() string { return "list the chart of accounts" }
func (*accountListCmd) Usage() string {
	return `glbooks accounts list
`
}

func (c *accountListCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.accounts.List(ctx)
	})
}

type accountToggleCmd struct {
	enable bool
	code   string
}

func (c *accountToggleCmd) Name() string {
	if c.enable {
		return "enable"
	}
	return "disable"
}

func (c *accountToggleCmd) Synopsis() string {
	if c.enable {
		return "allow postings against an account"
	}
	return "block postings against an account"
}

func (c *accountToggleCmd) Usage() string {
	return `glbooks accounts ` + c.Name() + ` -code <account-code>
`
}

func (c *accountToggleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "Account code.")
}

func (c *accountToggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		if c.enable {
			return a.accounts.Enable(ctx, c.code)
		}
		return a.accounts.Disable(ctx, c.code)
	})
}

// dimensionsCmd is a container for dimension subcommands
type dimensionsCmd struct{}

func (*dimensionsCmd) Name() string     { return "dimensions" }
func (*dimensionsCmd) Synopsis() string { return "manage analytic dimensions" }
func (*dimensionsCmd) Usage() string {
	return `glbooks dimensions <subcommand> [args]

Commands:
  add  - Add a dimension from a JSON request on stdin.
  list - List dimensions of one type.
`
}

func (c *dimensionsCmd) SetFlags(f *flag.FlagSet) {}
func (c *dimensionsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "dimensions")
	commander.Register(&dimensionAddCmd{}, "")
	commander.Register(&dimensionListCmd{}, "")
	return commander.Execute(ctx, args...)
}

type dimensionAddCmd struct{}

func (*dimensionAddCmd) Name() string     { return "add" }
func (*dimensionAddCmd) Synopsis() string { return "add a dimension" }
func (*dimensionAddCmd) Usage() string {
	return `glbooks dimensions add < dimension.json

  Reads {"type","code","name","parent_id"} from stdin. Type is one of
  DEPARTMENT, PROJECT, CUSTOMER, SUPPLIER, EMPLOYEE.
`
}

func (c *dimensionAddCmd) SetFlags(f *flag.FlagSet) {}

func (c *dimensionAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		var req ledgerapp.CreateDimensionRequest
		if err := decodeStdin(&req); err != nil {
			return nil, err
		}
		return a.dimensions.Create(ctx, req)
	})
}

type dimensionListCmd struct {
	dimensionType string
}

func (*dimensionListCmd) Name() string     { return "list" }
func (*dimensionListCmd) Synopsis() string { return "list dimensions of one type" }
func (*dimensionListCmd) Usage() string {
	return `glbooks dimensions list -type <TYPE>
`
}

func (c *dimensionListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dimensionType, "type", "", "Dimension type (DEPARTMENT, PROJECT, CUSTOMER, SUPPLIER, EMPLOYEE).")
}

func (c *dimensionListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.dimensions.ListByType(ctx, c.dimensionType)
	})
}
