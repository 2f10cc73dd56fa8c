package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
)

// seedAccount describes one system account created at store initialization
type seedAccount struct {
	Code      string
	Name      string
	Type      ledger.AccountType
	Direction ledger.Direction
	CashFlow  ledger.CashFlowClass
}

// systemAccounts is the minimal chart of accounts the posting policies of
// the subledgers rely on
var systemAccounts = []seedAccount{
	{"1001", "Cash on hand", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"1002", "Bank deposits", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"1122", "Accounts receivable", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"1405", "Inventory", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"1601", "Fixed assets", ledger.AccountTypeAsset, ledger.DirectionDebit, ledger.CashFlowInvesting},
	{"1602", "Accumulated depreciation", ledger.AccountTypeAsset, ledger.DirectionCredit, ledger.CashFlowNone},
	{"2202", "Accounts payable", ledger.AccountTypeLiability, ledger.DirectionCredit, ledger.CashFlowOperating},
	{"6001", "Operating revenue", ledger.AccountTypeRevenue, ledger.DirectionCredit, ledger.CashFlowOperating},
	{"6401", "Cost of goods sold", ledger.AccountTypeExpense, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"6601", "Operating expenses", ledger.AccountTypeExpense, ledger.DirectionDebit, ledger.CashFlowOperating},
	{"6602", "Depreciation expense", ledger.AccountTypeExpense, ledger.DirectionDebit, ledger.CashFlowNone},
}

// SeedChartOfAccounts creates the system accounts, skipping any that already
// exist so repeated initialization is harmless
func SeedChartOfAccounts(ctx context.Context, accounts ledger.AccountRepository) error {
	for _, seed := range systemAccounts {
		_, err := accounts.FindByCode(ctx, seed.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		account, err := ledger.NewAccount(seed.Code, seed.Name, 1, "", seed.Type, seed.Direction, seed.CashFlow)
		if err != nil {
			return err
		}
		account.IsSystem = true
		if err := accounts.Save(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
