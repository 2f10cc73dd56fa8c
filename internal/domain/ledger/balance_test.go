package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance_Recompute(t *testing.T) {
	key := NewBalanceKey("1001", "2025-01", DimensionRef{})

	t.Run("debit direction", func(t *testing.T) {
		b := NewBalance(key)
		b.Opening = decimal.NewFromInt(50)
		b.Debit = decimal.NewFromInt(100)
		b.Credit = decimal.NewFromInt(30)
		b.Recompute(DirectionDebit)
		assert.True(t, b.Closing.Equal(decimal.NewFromInt(120)), "closing = 50 + 100 - 30")
	})

	t.Run("credit direction mirrors the formula", func(t *testing.T) {
		b := NewBalance(key)
		b.Opening = decimal.NewFromInt(50)
		b.Debit = decimal.NewFromInt(100)
		b.Credit = decimal.NewFromInt(30)
		b.Recompute(DirectionCredit)
		assert.True(t, b.Closing.Equal(decimal.NewFromInt(-20)), "closing = 50 + 30 - 100")
	})
}

func TestBalance_Apply(t *testing.T) {
	b := NewBalance(NewBalanceKey("1001", "2025-01", DimensionRef{}))
	b.Apply(VoucherEntry{AccountCode: "1001", Debit: decimal.NewFromInt(100)})
	b.Apply(VoucherEntry{AccountCode: "1001", Credit: decimal.NewFromInt(40)})
	assert.True(t, b.Debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, b.Credit.Equal(decimal.NewFromInt(40)))
}

func TestBalance_CarryForward(t *testing.T) {
	dims := DimensionRef{CustomerID: 7}
	b := NewBalance(NewBalanceKey("1122", "2025-01", dims))
	b.Debit = decimal.NewFromInt(300)
	b.Recompute(DirectionDebit)

	next := b.CarryForward("2025-02")
	assert.Equal(t, "2025-02", next.Key.Period)
	assert.Equal(t, "1122", next.Key.AccountCode)
	assert.Equal(t, dims, next.Key.Dimensions())
	assert.True(t, next.Opening.Equal(b.Closing), "opening of N+1 equals closing of N")
	assert.True(t, next.Debit.IsZero())
	assert.True(t, next.Credit.IsZero())
	assert.True(t, next.Closing.Equal(b.Closing))
}

func TestPeriodHelpers(t *testing.T) {
	next, err := NextPeriod("2025-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-01", next)

	_, err = NextPeriod("2025/12")
	assert.Error(t, err)

	assert.NoError(t, ValidatePeriodName("2025-01"))
	assert.Error(t, ValidatePeriodName("January"))
}

func TestReconcile(t *testing.T) {
	t.Run("zero difference passes", func(t *testing.T) {
		r := Reconcile(decimal.NewFromFloat(200.004), decimal.NewFromInt(200))
		assert.True(t, r.Pass)
	})

	t.Run("difference beyond tolerance fails", func(t *testing.T) {
		r := Reconcile(decimal.NewFromFloat(200.02), decimal.NewFromInt(200))
		assert.False(t, r.Pass)
		assert.True(t, r.Difference.Equal(decimal.NewFromFloat(0.02)))
	})
}
