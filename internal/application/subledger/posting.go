package subledger

import (
	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Control accounts the subledger posting policies book against. They are
// seeded as system accounts at store initialization.
const (
	accountCash         = "1001" // cash on hand
	accountReceivable   = "1122" // accounts receivable
	accountInventory    = "1405" // inventory
	accountFixedAsset   = "1601" // fixed assets
	accountAccumDepr    = "1602" // accumulated depreciation (credit direction)
	accountPayable      = "2202" // accounts payable
	accountRevenue      = "6001" // operating revenue
	accountCOGS         = "6401" // cost of goods sold
	accountExpense      = "6601" // operating expenses
	accountDepreciation = "6602" // depreciation expense
)

// journalEntries builds the two-line debit/credit pair every subledger
// posting reduces to
func journalEntries(debitAccount string, debitDims ledger.DimensionRef, creditAccount string, creditDims ledger.DimensionRef, amount decimal.Decimal, description string) []ledgerapp.EntryRequest {
	return []ledgerapp.EntryRequest{
		{
			AccountCode: debitAccount,
			Debit:       amount,
			Credit:      decimal.Zero,
			Dimensions:  debitDims,
			Description: description,
		},
		{
			AccountCode: creditAccount,
			Debit:       decimal.Zero,
			Credit:      amount,
			Dimensions:  creditDims,
			Description: description,
		},
	}
}
