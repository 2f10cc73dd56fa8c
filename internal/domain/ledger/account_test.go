package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("valid account", func(t *testing.T) {
		a, err := NewAccount("1001", "Cash", 1, "", AccountTypeAsset, DirectionDebit, CashFlowOperating)
		require.NoError(t, err)
		assert.True(t, a.IsEnabled)
		assert.True(t, a.IsPostable())
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := NewAccount("1001", "Cash", 1, "", AccountType("CASH"), DirectionDebit, CashFlowNone)
		assert.Error(t, err)
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, err := NewAccount("1001", "Cash", 1, "", AccountTypeAsset, Direction("BOTH"), CashFlowNone)
		assert.Error(t, err)
	})
}

func TestAccount_ValidateParent(t *testing.T) {
	parent, err := NewAccount("1001", "Cash", 1, "", AccountTypeAsset, DirectionDebit, CashFlowNone)
	require.NoError(t, err)
	child, err := NewAccount("100101", "Petty cash", 2, "1001", AccountTypeAsset, DirectionDebit, CashFlowNone)
	require.NoError(t, err)

	assert.NoError(t, child.ValidateParent(parent))

	t.Run("missing parent", func(t *testing.T) {
		assert.Error(t, child.ValidateParent(nil))
	})

	t.Run("parent must be shallower", func(t *testing.T) {
		sameLevel, err := NewAccount("1002", "Bank", 1, "1001", AccountTypeAsset, DirectionDebit, CashFlowNone)
		require.NoError(t, err)
		assert.Error(t, sameLevel.ValidateParent(parent), "level 1 parent cannot own a level 1 child")
	})
}

func TestAccount_DisableEnable(t *testing.T) {
	a, err := NewAccount("1001", "Cash", 1, "", AccountTypeAsset, DirectionDebit, CashFlowNone)
	require.NoError(t, err)
	a.Disable()
	assert.False(t, a.IsPostable())
	a.Enable()
	assert.True(t, a.IsPostable())
}
