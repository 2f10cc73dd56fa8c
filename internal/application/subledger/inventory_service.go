package subledger

import (
	"context"
	"fmt"
	"time"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryService manages FIFO stock lots and their derived journal
// entries. Inbound movements book inventory against cash; outbound
// movements book cost of goods sold against inventory at the FIFO cost of
// the consumed lots.
type InventoryService struct {
	lots     subledger.StockLotRepository
	balances ledger.BalanceRepository
	vouchers *ledgerapp.VoucherService
	store    ledger.LedgerStore
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	lots subledger.StockLotRepository,
	balances ledger.BalanceRepository,
	vouchers *ledgerapp.VoucherService,
	store ledger.LedgerStore,
) *InventoryService {
	return &InventoryService{
		lots:     lots,
		balances: balances,
		vouchers: vouchers,
		store:    store,
	}
}

// StockInRequest represents an inbound inventory movement
type StockInRequest struct {
	SKU      string          `json:"sku" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
	Date     time.Time       `json:"date" binding:"required"`
}

// StockOutRequest represents an outbound inventory movement
type StockOutRequest struct {
	SKU      string          `json:"sku" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Date     time.Time       `json:"date" binding:"required"`
}

// StockLotResponse represents a lot in API responses
type StockLotResponse struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Date      time.Time       `json:"date"`
	Period    string          `json:"period"`
	VoucherID uuid.UUID       `json:"voucher_id"`
}

// StockOutResponse carries the movement and its FIFO costing
type StockOutResponse struct {
	Lot       StockLotResponse `json:"lot"`
	TotalCost decimal.Decimal  `json:"total_cost"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
}

// In records an inbound lot and posts inventory against cash
func (s *InventoryService) In(ctx context.Context, req StockInRequest) (*StockLotResponse, error) {
	lot, err := subledger.NewInboundLot(req.SKU, req.Quantity, req.UnitCost, req.Date)
	if err != nil {
		return nil, err
	}

	amount := req.Quantity.Mul(req.UnitCost)
	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("Stock in %s", req.SKU),
			Entries:     journalEntries(accountInventory, ledger.DimensionRef{}, accountCash, ledger.DimensionRef{}, amount, ""),
		})
		if err != nil {
			return err
		}
		lot.VoucherID = posted.ID
		return s.lots.Save(ctx, lot)
	})
	if err != nil {
		return nil, err
	}
	return toStockLotResponse(lot), nil
}

// Out consumes the SKU's open lots FIFO, records the outbound movement at
// the consumed cost and posts cost of goods sold against inventory. Fails
// with INSUFFICIENT_INVENTORY before any mutation when availability falls
// short.
func (s *InventoryService) Out(ctx context.Context, req StockOutRequest) (*StockOutResponse, error) {
	open, err := s.lots.FindOpenLots(ctx, req.SKU)
	if err != nil {
		return nil, err
	}

	result, err := subledger.ConsumeFIFO(open, req.Quantity)
	if err != nil {
		return nil, err
	}

	out := subledger.NewOutboundLot(req.SKU, req.Quantity, result.UnitCost, req.Date)

	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("Stock out %s", req.SKU),
			Entries:     journalEntries(accountCOGS, ledger.DimensionRef{}, accountInventory, ledger.DimensionRef{}, result.TotalCost, ""),
		})
		if err != nil {
			return err
		}
		out.VoucherID = posted.ID
		return s.lots.SaveAll(ctx, append(open, out))
	})
	if err != nil {
		return nil, err
	}

	return &StockOutResponse{
		Lot:       *toStockLotResponse(out),
		TotalCost: result.TotalCost,
		UnitCost:  result.UnitCost,
	}, nil
}

// OpenLots returns the SKU's unconsumed lots in FIFO order
func (s *InventoryService) OpenLots(ctx context.Context, sku string) ([]StockLotResponse, error) {
	lots, err := s.lots.FindOpenLots(ctx, sku)
	if err != nil {
		return nil, err
	}
	responses := make([]StockLotResponse, len(lots))
	for i, lot := range lots {
		responses[i] = *toStockLotResponse(lot)
	}
	return responses, nil
}

// Reconcile compares the value of all unconsumed lots against the closing
// balance of the inventory account for the period
func (s *InventoryService) Reconcile(ctx context.Context, period string) (*ReconciliationResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}

	lots, err := s.lots.FindAllOpenLots(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.RemainingValue())
	}

	key := ledger.NewBalanceKey(accountInventory, period, ledger.DimensionRef{})
	bucket, err := s.balances.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResponse{
		Scope:  "INVENTORY",
		Period: period,
		Result: ledger.Reconcile(total, bucket.Closing),
	}, nil
}

func toStockLotResponse(l *subledger.StockLot) *StockLotResponse {
	return &StockLotResponse{
		ID:        l.ID,
		SKU:       l.SKU,
		Direction: l.Direction.String(),
		Quantity:  l.Quantity,
		Remaining: l.Remaining,
		UnitCost:  l.UnitCost,
		Date:      l.Date,
		Period:    l.Period,
		VoucherID: l.VoucherID,
	}
}
