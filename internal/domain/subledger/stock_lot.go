package subledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDirection distinguishes inventory inflows from outflows
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// IsValid checks if the movement direction is valid
func (d MovementDirection) IsValid() bool {
	return d == MovementIn || d == MovementOut
}

// String returns the string representation of MovementDirection
func (d MovementDirection) String() string {
	return string(d)
}

// StockLot is one inventory movement. IN lots carry a unit cost and a
// remaining quantity that FIFO consumption draws down; OUT lots record the
// consumed quantity at the weighted cost of the lots they drew from.
type StockLot struct {
	shared.BaseAggregateRoot
	SKU       string
	Direction MovementDirection
	Quantity  decimal.Decimal
	Remaining decimal.Decimal // unconsumed quantity, IN lots only
	UnitCost  decimal.Decimal
	Date      time.Time
	Period    string
	VoucherID uuid.UUID
}

// NewInboundLot creates an IN lot with its full quantity remaining
func NewInboundLot(sku string, quantity, unitCost decimal.Decimal, date time.Time) (*StockLot, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Lot quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}

	return &StockLot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Direction:         MovementIn,
		Quantity:          quantity,
		Remaining:         quantity,
		UnitCost:          unitCost,
		Date:              date,
		Period:            ledger.PeriodOf(date),
	}, nil
}

// NewOutboundLot records an OUT movement at the given weighted unit cost
func NewOutboundLot(sku string, quantity, unitCost decimal.Decimal, date time.Time) *StockLot {
	return &StockLot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Direction:         MovementOut,
		Quantity:          quantity,
		Remaining:         decimal.Zero,
		UnitCost:          unitCost,
		Date:              date,
		Period:            ledger.PeriodOf(date),
	}
}

// RemainingValue returns the value of the unconsumed quantity
func (l *StockLot) RemainingValue() decimal.Decimal {
	return l.Remaining.Mul(l.UnitCost)
}

// LotConsumption is the slice taken from one lot during FIFO consumption
type LotConsumption struct {
	LotID    uuid.UUID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
	Cost     decimal.Decimal
}

// FIFOResult is the outcome of consuming inventory FIFO: the per-lot
// slices, the total cost of goods issued and the weighted unit cost.
type FIFOResult struct {
	Consumptions []LotConsumption
	TotalCost    decimal.Decimal
	UnitCost     decimal.Decimal
}

// ConsumeFIFO draws the requested quantity from the given IN lots, earliest
// lot first, partial lot consumption allowed. The outflow is valued at the
// consumed lots' unit costs, not the latest cost. Lot remainders are
// mutated in place. Fails with INSUFFICIENT_INVENTORY before touching any
// lot if availability falls short.
func ConsumeFIFO(lots []*StockLot, quantity decimal.Decimal) (*FIFOResult, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	available := decimal.Zero
	for _, lot := range lots {
		if lot.Direction == MovementIn {
			available = available.Add(lot.Remaining)
		}
	}
	if available.LessThan(quantity) {
		return nil, shared.NewDomainError(shared.CodeInsufficientInventory,
			fmt.Sprintf("Requested %s exceeds available %s", quantity.String(), available.String()))
	}

	sorted := make([]*StockLot, 0, len(lots))
	for _, lot := range lots {
		if lot.Direction == MovementIn && lot.Remaining.GreaterThan(decimal.Zero) {
			sorted = append(sorted, lot)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	remaining := quantity
	result := &FIFOResult{
		Consumptions: make([]LotConsumption, 0, len(sorted)),
		TotalCost:    decimal.Zero,
	}
	for _, lot := range sorted {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(remaining, lot.Remaining)
		cost := take.Mul(lot.UnitCost)

		lot.Remaining = lot.Remaining.Sub(take)
		lot.UpdatedAt = time.Now()

		result.Consumptions = append(result.Consumptions, LotConsumption{
			LotID:    lot.ID,
			Quantity: take,
			UnitCost: lot.UnitCost,
			Cost:     cost,
		})
		result.TotalCost = result.TotalCost.Add(cost)
		remaining = remaining.Sub(take)
	}

	result.UnitCost = result.TotalCost.Div(quantity).Round(4)
	return result, nil
}
