package ledger

import "github.com/shopspring/decimal"

// ReconciliationResult compares an independently computed subledger total
// against the general-ledger balance for the same economic event. It is a
// pure function of current state; nothing is persisted.
type ReconciliationResult struct {
	SubledgerTotal decimal.Decimal `json:"subledger_total"`
	GLBalance      decimal.Decimal `json:"gl_balance"`
	Difference     decimal.Decimal `json:"difference"`
	Pass           bool            `json:"pass"`
}

// Reconcile builds the comparison result. A difference within tolerance
// (0.01) is a pass.
func Reconcile(subledgerTotal, glBalance decimal.Decimal) ReconciliationResult {
	diff := subledgerTotal.Sub(glBalance)
	return ReconciliationResult{
		SubledgerTotal: subledgerTotal,
		GLBalance:      glBalance,
		Difference:     diff,
		Pass:           diff.Abs().LessThan(Tolerance),
	}
}
