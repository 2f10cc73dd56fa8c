package subledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	date, err := time.Parse("2006-01-02", "2025-03-10")
	require.NoError(t, err)

	inv, err := NewInvoice(InvoiceKindReceivable, 3, decimal.NewFromInt(500), date, "march order")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", inv.Period)
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(500)))
	assert.False(t, inv.IsSettled())

	_, err = NewInvoice(InvoiceKindReceivable, 0, decimal.NewFromInt(500), date, "")
	assert.Error(t, err, "party dimension is required")

	_, err = NewInvoice(InvoiceKindPayable, 3, decimal.Zero, date, "")
	assert.Error(t, err)

	_, err = NewInvoice(InvoiceKind("MEMO"), 3, decimal.NewFromInt(1), date, "")
	assert.Error(t, err)
}

func TestInvoice_Settle(t *testing.T) {
	inv, err := NewInvoice(InvoiceKindPayable, 9, decimal.NewFromInt(300), time.Now(), "")
	require.NoError(t, err)

	require.NoError(t, inv.Settle(decimal.NewFromInt(120)))
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(180)))

	assert.Error(t, inv.Settle(decimal.NewFromInt(200)), "cannot exceed outstanding")
	assert.Error(t, inv.Settle(decimal.Zero))

	require.NoError(t, inv.Settle(decimal.NewFromInt(180)))
	assert.True(t, inv.IsSettled())
}

func TestInvoiceKind_PartyDimension(t *testing.T) {
	assert.Equal(t, "CUSTOMER", InvoiceKindReceivable.PartyDimension().String())
	assert.Equal(t, "SUPPLIER", InvoiceKindPayable.PartyDimension().String())
}
