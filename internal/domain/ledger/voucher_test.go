package ledger

import (
	"testing"
	"time"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", "2025-01-15")
	require.NoError(t, err)
	return date
}

func debitEntry(account string, amount float64) VoucherEntry {
	return VoucherEntry{AccountCode: account, Debit: decimal.NewFromFloat(amount), Credit: decimal.Zero}
}

func creditEntry(account string, amount float64) VoucherEntry {
	return VoucherEntry{AccountCode: account, Debit: decimal.Zero, Credit: decimal.NewFromFloat(amount)}
}

func TestVoucherEntry_Validate(t *testing.T) {
	t.Run("valid debit entry", func(t *testing.T) {
		assert.NoError(t, debitEntry("1001", 100).Validate())
	})

	t.Run("both sides set fails", func(t *testing.T) {
		entry := VoucherEntry{
			AccountCode: "1001",
			Debit:       decimal.NewFromInt(100),
			Credit:      decimal.NewFromInt(100),
		}
		err := entry.Validate()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeUnbalancedEntry, domainErr.Code)
	})

	t.Run("neither side set fails", func(t *testing.T) {
		entry := VoucherEntry{AccountCode: "1001"}
		err := entry.Validate()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeUnbalancedEntry, domainErr.Code)
	})

	t.Run("negative amount fails", func(t *testing.T) {
		entry := VoucherEntry{AccountCode: "1001", Debit: decimal.NewFromInt(-5)}
		assert.Error(t, entry.Validate())
	})

	t.Run("missing account code fails", func(t *testing.T) {
		entry := VoucherEntry{Debit: decimal.NewFromInt(5)}
		err := entry.Validate()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAccountNotFound, domainErr.Code)
	})
}

func TestNewVoucher(t *testing.T) {
	date := testDate(t)

	t.Run("creates draft with period derived from date", func(t *testing.T) {
		v, err := NewVoucher("V-202501-0001", date, "opening entry",
			[]VoucherEntry{debitEntry("1001", 100), creditEntry("1002", 100)})
		require.NoError(t, err)
		assert.Equal(t, VoucherStatusDraft, v.Status)
		assert.Equal(t, "2025-01", v.Period)
		assert.Len(t, v.Entries, 2)
	})

	t.Run("rejects empty entry list", func(t *testing.T) {
		_, err := NewVoucher("V-202501-0001", date, "", nil)
		assert.Error(t, err)
	})

	t.Run("unbalanced entries still draft", func(t *testing.T) {
		// Balance is only enforced at confirm time.
		v, err := NewVoucher("V-202501-0002", date, "",
			[]VoucherEntry{debitEntry("1001", 100), debitEntry("1002", 100)})
		require.NoError(t, err)
		assert.False(t, v.IsBalanced())
	})
}

func TestVoucher_IsBalanced(t *testing.T) {
	date := testDate(t)

	t.Run("equal totals within tolerance", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "",
			[]VoucherEntry{debitEntry("1001", 99.999), creditEntry("1002", 100.00)})
		require.NoError(t, err)
		assert.True(t, v.IsBalanced())
	})

	t.Run("mismatch of exactly one cent fails", func(t *testing.T) {
		v, err := NewVoucher("V-2", date, "",
			[]VoucherEntry{debitEntry("1001", 100.01), creditEntry("1002", 100.00)})
		require.NoError(t, err)
		assert.False(t, v.IsBalanced())
	})
}

func TestVoucher_Transitions(t *testing.T) {
	date := testDate(t)
	balanced := []VoucherEntry{debitEntry("1001", 100), creditEntry("1002", 100)}

	t.Run("draft review confirm", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "", balanced)
		require.NoError(t, err)
		require.NoError(t, v.Review())
		assert.Equal(t, VoucherStatusReviewed, v.Status)
		require.NoError(t, v.Confirm())
		assert.Equal(t, VoucherStatusConfirmed, v.Status)
	})

	t.Run("confirm without review fails", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "", balanced)
		require.NoError(t, err)
		err = v.Confirm()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})

	t.Run("confirm unbalanced fails with VOUCHER_UNBALANCED", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "",
			[]VoucherEntry{debitEntry("1001", 100), debitEntry("1002", 100)})
		require.NoError(t, err)
		require.NoError(t, v.Review())
		err = v.Confirm()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeVoucherUnbalanced, domainErr.Code)
		assert.Equal(t, VoucherStatusReviewed, v.Status)
	})

	t.Run("re-confirming a confirmed voucher fails", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "", balanced)
		require.NoError(t, err)
		require.NoError(t, v.Review())
		require.NoError(t, v.Confirm())
		err = v.Confirm()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
	})

	t.Run("reject from draft and reviewed", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "", balanced)
		require.NoError(t, err)
		require.NoError(t, v.Reject())
		assert.Equal(t, VoucherStatusRejected, v.Status)

		v2, err := NewVoucher("V-2", date, "", balanced)
		require.NoError(t, err)
		require.NoError(t, v2.Review())
		require.NoError(t, v2.Reject())
	})

	t.Run("reject confirmed fails", func(t *testing.T) {
		v, err := NewVoucher("V-1", date, "", balanced)
		require.NoError(t, err)
		require.NoError(t, v.Review())
		require.NoError(t, v.Confirm())
		assert.Error(t, v.Reject())
	})
}
