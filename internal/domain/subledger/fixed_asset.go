package subledger

import (
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedAsset is a depreciable asset on a straight-line schedule:
// (cost - salvage) / life per period, with the final period absorbing the
// rounding remainder so accumulated depreciation lands exactly on
// cost - salvage and never exceeds it.
type FixedAsset struct {
	shared.BaseAggregateRoot
	Name            string
	Cost            decimal.Decimal
	Salvage         decimal.Decimal
	LifePeriods     int
	AcquisitionDate time.Time
	Period          string // acquisition period
	Accumulated     decimal.Decimal
	PeriodsCharged  int
	VoucherID       uuid.UUID // voucher posted at acquisition
}

// NewFixedAsset creates an asset with no depreciation charged yet
func NewFixedAsset(name string, cost, salvage decimal.Decimal, lifePeriods int, acquisitionDate time.Time) (*FixedAsset, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ASSET_NAME", "Asset name cannot be empty")
	}
	if cost.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Asset cost must be positive")
	}
	if salvage.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Salvage value cannot be negative")
	}
	if salvage.GreaterThan(cost) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Salvage value cannot exceed cost")
	}
	if lifePeriods < 1 {
		return nil, shared.NewDomainError("INVALID_LIFE", "Asset life must be at least one period")
	}

	return &FixedAsset{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Cost:              cost,
		Salvage:           salvage,
		LifePeriods:       lifePeriods,
		AcquisitionDate:   acquisitionDate,
		Period:            ledger.PeriodOf(acquisitionDate),
		Accumulated:       decimal.Zero,
	}, nil
}

// DepreciableBase returns cost - salvage, the cap on accumulated depreciation
func (a *FixedAsset) DepreciableBase() decimal.Decimal {
	return a.Cost.Sub(a.Salvage)
}

// NetBookValue returns cost - accumulated depreciation
func (a *FixedAsset) NetBookValue() decimal.Decimal {
	return a.Cost.Sub(a.Accumulated)
}

// IsFullyDepreciated returns true once the depreciable base is exhausted
func (a *FixedAsset) IsFullyDepreciated() bool {
	return a.Accumulated.GreaterThanOrEqual(a.DepreciableBase())
}

// PeriodCharge computes the straight-line charge for the next period:
// the per-period amount rounded to cents, with the final life period
// charged the exact remainder. Returns zero when nothing is left.
func (a *FixedAsset) PeriodCharge() decimal.Decimal {
	remaining := a.DepreciableBase().Sub(a.Accumulated)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if a.PeriodsCharged >= a.LifePeriods-1 {
		return remaining
	}
	charge := a.DepreciableBase().Div(decimal.NewFromInt(int64(a.LifePeriods))).Round(2)
	return decimal.Min(charge, remaining)
}

// Depreciate applies the period charge to the asset and returns the amount
// charged. A fully depreciated asset charges zero.
func (a *FixedAsset) Depreciate() decimal.Decimal {
	charge := a.PeriodCharge()
	if charge.IsZero() {
		return decimal.Zero
	}
	a.Accumulated = a.Accumulated.Add(charge)
	a.PeriodsCharged++
	a.Touch()
	return charge
}

// DepreciationCharge is one period's depreciation for one asset.
// At most one charge exists per (asset, period).
type DepreciationCharge struct {
	ID        uuid.UUID
	AssetID   uuid.UUID
	Period    string
	Amount    decimal.Decimal
	VoucherID uuid.UUID
	CreatedAt time.Time
}

// NewDepreciationCharge records a period charge for an asset
func NewDepreciationCharge(assetID uuid.UUID, period string, amount decimal.Decimal) (*DepreciationCharge, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Depreciation charge must be positive, got %s", amount.String()))
	}
	return &DepreciationCharge{
		ID:        uuid.New(),
		AssetID:   assetID,
		Period:    period,
		Amount:    amount,
		CreatedAt: time.Now(),
	}, nil
}
