package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parseID parses a -id flag value as a UUID
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "Flag -id must be a UUID")
	}
	return id, nil
}

// parseDate parses a -date flag value as YYYY-MM-DD
func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_INPUT", "Flag -date must be a YYYY-MM-DD date")
	}
	return date, nil
}

// parseDecimal parses a decimal-valued flag
func parseDecimal(name, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Flag -%s must be a decimal number", name))
	}
	return value, nil
}

type recordCmd struct{}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a draft voucher from a JSON request on stdin" }
func (*recordCmd) Usage() string {
	return `glbooks record < voucher.json

  Reads {"date","description","entries":[{"account_code","debit","credit",
  "dimensions"}]} from stdin and records a draft voucher in the open period
  of the date.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {}

func (c *recordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		var req ledgerapp.RecordVoucherRequest
		if err := decodeStdin(&req); err != nil {
			return nil, err
		}
		return a.vouchers.Record(ctx, req)
	})
}

type reviewCmd struct {
	id string
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "mark a draft voucher as reviewed" }
func (*reviewCmd) Usage() string {
	return `glbooks review -id <voucher-id>
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Voucher ID.")
}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		id, err := parseID(c.id)
		if err != nil {
			return nil, err
		}
		return a.vouchers.Review(ctx, id)
	})
}

type confirmCmd struct {
	id string
}

func (*confirmCmd) Name() string     { return "confirm" }
func (*confirmCmd) Synopsis() string { return "confirm a reviewed voucher and post it to the ledger" }
func (*confirmCmd) Usage() string {
	return `glbooks confirm -id <voucher-id>

  Confirms a reviewed, balanced voucher and applies its entries to the
  balance ledger in one transaction.
`
}

func (c *confirmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Voucher ID.")
}

func (c *confirmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		id, err := parseID(c.id)
		if err != nil {
			return nil, err
		}
		return a.vouchers.Confirm(ctx, id)
	})
}

type rejectCmd struct {
	id string
}

func (*rejectCmd) Name() string     { return "reject" }
func (*rejectCmd) Synopsis() string { return "reject a draft or reviewed voucher" }
func (*rejectCmd) Usage() string {
	return `glbooks reject -id <voucher-id>
`
}

func (c *rejectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Voucher ID.")
}

func (c *rejectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		id, err := parseID(c.id)
		if err != nil {
			return nil, err
		}
		return a.vouchers.Reject(ctx, id)
	})
}

type vouchersCmd struct {
	period string
}

func (*vouchersCmd) Name() string     { return "vouchers" }
func (*vouchersCmd) Synopsis() string { return "list the vouchers of a period" }
func (*vouchersCmd) Usage() string {
	return `glbooks vouchers -period <YYYY-MM>
`
}

func (c *vouchersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Accounting period, YYYY-MM.")
}

func (c *vouchersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, a *app) (any, error) {
		return a.vouchers.ListByPeriod(ctx, c.period)
	})
}
