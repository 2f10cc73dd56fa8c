package subledger

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository persists AR invoices and AP bills
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// FindByParty returns the party's invoices of one kind for a period
	FindByParty(ctx context.Context, kind InvoiceKind, partyID int64, period string) ([]Invoice, error)
	// FindOutstanding returns the party's unsettled invoices, oldest first
	FindOutstanding(ctx context.Context, kind InvoiceKind, partyID int64) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// StockLotRepository persists inventory movements
type StockLotRepository interface {
	// FindOpenLots returns IN lots of the SKU with remaining quantity,
	// oldest first (FIFO order)
	FindOpenLots(ctx context.Context, sku string) ([]*StockLot, error)
	// FindAllOpenLots returns every IN lot with remaining quantity
	FindAllOpenLots(ctx context.Context) ([]*StockLot, error)
	Save(ctx context.Context, lot *StockLot) error
	// SaveAll persists a set of lots in one transaction (FIFO consumption
	// touches several lots plus the OUT movement)
	SaveAll(ctx context.Context, lots []*StockLot) error
}

// FixedAssetRepository persists assets and their depreciation charges
type FixedAssetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FixedAsset, error)
	FindAll(ctx context.Context) ([]FixedAsset, error)
	Save(ctx context.Context, asset *FixedAsset) error
	// FindCharge returns the charge for (asset, period), or nil when absent
	FindCharge(ctx context.Context, assetID uuid.UUID, period string) (*DepreciationCharge, error)
	FindChargesThrough(ctx context.Context, period string) ([]DepreciationCharge, error)
	SaveCharge(ctx context.Context, charge *DepreciationCharge) error
}
