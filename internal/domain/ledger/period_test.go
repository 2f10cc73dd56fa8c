package ledger

import (
	"testing"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Lifecycle(t *testing.T) {
	p, err := NewPeriod("2025-01")
	require.NoError(t, err)
	assert.True(t, p.IsOpen())

	require.NoError(t, p.Close())
	assert.False(t, p.IsOpen())
	assert.NotNil(t, p.ClosedAt)

	err = p.Close()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodePeriodAlreadyClosed, domainErr.Code)

	require.NoError(t, p.Reopen())
	assert.True(t, p.IsOpen())
	assert.Nil(t, p.ClosedAt)

	assert.Error(t, p.Reopen())
}

func TestNewPeriod_RejectsBadLabel(t *testing.T) {
	_, err := NewPeriod("2025-13")
	assert.Error(t, err)
}
