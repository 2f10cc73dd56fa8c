package subledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedAsset_StraightLine(t *testing.T) {
	// cost=12000, life=3, salvage=2000 depreciates (12000-2000)/3 = 3333.33
	// per period; after 3 periods accumulated depreciation caps at 10000.
	acquired, err := time.Parse("2006-01-02", "2025-01-01")
	require.NoError(t, err)
	asset, err := NewFixedAsset("forklift", decimal.NewFromInt(12000), decimal.NewFromInt(2000), 3, acquired)
	require.NoError(t, err)

	first := asset.Depreciate()
	assert.True(t, first.Equal(decimal.NewFromFloat(3333.33)), "got %s", first)

	second := asset.Depreciate()
	assert.True(t, second.Equal(decimal.NewFromFloat(3333.33)))

	third := asset.Depreciate()
	assert.True(t, third.Equal(decimal.NewFromFloat(3333.34)), "final period absorbs the remainder, got %s", third)

	assert.True(t, asset.Accumulated.Equal(decimal.NewFromInt(10000)))
	assert.True(t, asset.IsFullyDepreciated())
	assert.True(t, asset.NetBookValue().Equal(decimal.NewFromInt(2000)))

	// Further depreciation charges nothing.
	assert.True(t, asset.Depreciate().IsZero())
	assert.True(t, asset.Accumulated.Equal(decimal.NewFromInt(10000)))
}

func TestFixedAsset_Validation(t *testing.T) {
	acquired := time.Now()

	_, err := NewFixedAsset("", decimal.NewFromInt(1000), decimal.Zero, 5, acquired)
	assert.Error(t, err)

	_, err = NewFixedAsset("x", decimal.Zero, decimal.Zero, 5, acquired)
	assert.Error(t, err)

	_, err = NewFixedAsset("x", decimal.NewFromInt(1000), decimal.NewFromInt(2000), 5, acquired)
	assert.Error(t, err, "salvage above cost")

	_, err = NewFixedAsset("x", decimal.NewFromInt(1000), decimal.Zero, 0, acquired)
	assert.Error(t, err)
}

func TestNewDepreciationCharge(t *testing.T) {
	asset, err := NewFixedAsset("forklift", decimal.NewFromInt(1200), decimal.Zero, 12, time.Now())
	require.NoError(t, err)

	charge, err := NewDepreciationCharge(asset.ID, "2025-02", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, asset.ID, charge.AssetID)

	_, err = NewDepreciationCharge(asset.ID, "bad-period", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewDepreciationCharge(asset.ID, "2025-02", decimal.Zero)
	assert.Error(t, err)
}
