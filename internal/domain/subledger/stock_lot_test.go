package subledger

import (
	"testing"
	"time"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lotDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return date
}

func TestConsumeFIFO_SingleLot(t *testing.T) {
	// Lots [(qty=10, cost=50)], consuming 4 units yields COGS 200 and a
	// remaining lot of qty 6 at cost 50.
	lot, err := NewInboundLot("WIDGET", decimal.NewFromInt(10), decimal.NewFromInt(50), lotDate(t, "2025-01-05"))
	require.NoError(t, err)

	result, err := ConsumeFIFO([]*StockLot{lot}, decimal.NewFromInt(4))
	require.NoError(t, err)

	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(200)))
	assert.True(t, lot.Remaining.Equal(decimal.NewFromInt(6)))
	assert.True(t, lot.UnitCost.Equal(decimal.NewFromInt(50)))
	require.Len(t, result.Consumptions, 1)
	assert.True(t, result.Consumptions[0].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestConsumeFIFO_EarliestLotFirst(t *testing.T) {
	older, err := NewInboundLot("WIDGET", decimal.NewFromInt(5), decimal.NewFromInt(10), lotDate(t, "2025-01-03"))
	require.NoError(t, err)
	newer, err := NewInboundLot("WIDGET", decimal.NewFromInt(5), decimal.NewFromInt(20), lotDate(t, "2025-01-10"))
	require.NoError(t, err)

	// Pass newest first to prove sorting is by date, not input order.
	result, err := ConsumeFIFO([]*StockLot{newer, older}, decimal.NewFromInt(7))
	require.NoError(t, err)

	// 5 units at 10 from the older lot, 2 units at 20 from the newer one.
	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(90)))
	assert.True(t, older.Remaining.IsZero())
	assert.True(t, newer.Remaining.Equal(decimal.NewFromInt(3)))
	require.Len(t, result.Consumptions, 2)
	assert.Equal(t, older.ID, result.Consumptions[0].LotID)
	assert.Equal(t, newer.ID, result.Consumptions[1].LotID)
}

func TestConsumeFIFO_InsufficientInventory(t *testing.T) {
	lot, err := NewInboundLot("WIDGET", decimal.NewFromInt(3), decimal.NewFromInt(50), lotDate(t, "2025-01-05"))
	require.NoError(t, err)

	_, err = ConsumeFIFO([]*StockLot{lot}, decimal.NewFromInt(4))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeInsufficientInventory, domainErr.Code)
	// Fail closed: nothing was consumed.
	assert.True(t, lot.Remaining.Equal(decimal.NewFromInt(3)))
}

func TestConsumeFIFO_IgnoresOutboundRows(t *testing.T) {
	in, err := NewInboundLot("WIDGET", decimal.NewFromInt(5), decimal.NewFromInt(10), lotDate(t, "2025-01-03"))
	require.NoError(t, err)
	out := NewOutboundLot("WIDGET", decimal.NewFromInt(2), decimal.NewFromInt(10), lotDate(t, "2025-01-04"))

	result, err := ConsumeFIFO([]*StockLot{in, out}, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(50)))
}

func TestStockLot_RemainingValue(t *testing.T) {
	lot, err := NewInboundLot("WIDGET", decimal.NewFromInt(10), decimal.NewFromFloat(2.5), lotDate(t, "2025-01-05"))
	require.NoError(t, err)
	lot.Remaining = decimal.NewFromInt(4)
	assert.True(t, lot.RemainingValue().Equal(decimal.NewFromInt(10)))
}
