package models

import (
	"time"

	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for AR invoices and AP bills
type InvoiceModel struct {
	AggregateModel
	Kind       subledger.InvoiceKind `gorm:"type:varchar(12);not null;index:idx_invoice_party,priority:1"`
	PartyID    int64                 `gorm:"not null;index:idx_invoice_party,priority:2"`
	Amount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaidAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Date       time.Time             `gorm:"not null"`
	Period     string                `gorm:"type:varchar(7);not null;index"`
	VoucherID  uuid.UUID             `gorm:"type:uuid"`
	Remark     string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *subledger.Invoice {
	return &subledger.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              m.Kind,
		PartyID:           m.PartyID,
		Amount:            m.Amount,
		PaidAmount:        m.PaidAmount,
		Date:              m.Date,
		Period:            m.Period,
		VoucherID:         m.VoucherID,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(i *subledger.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Kind = i.Kind
	m.PartyID = i.PartyID
	m.Amount = i.Amount
	m.PaidAmount = i.PaidAmount
	m.Date = i.Date
	m.Period = i.Period
	m.VoucherID = i.VoucherID
	m.Remark = i.Remark
}

// StockLotModel is the persistence model for inventory movements
type StockLotModel struct {
	AggregateModel
	SKU       string                      `gorm:"type:varchar(50);not null;index:idx_lot_sku,priority:1"`
	Direction subledger.MovementDirection `gorm:"type:varchar(5);not null;index:idx_lot_sku,priority:2"`
	Quantity  decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Remaining decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	UnitCost  decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Date      time.Time                   `gorm:"not null;index"`
	Period    string                      `gorm:"type:varchar(7);not null;index"`
	VoucherID uuid.UUID                   `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockLotModel) TableName() string {
	return "stock_lots"
}

// ToDomain converts the persistence model to a domain StockLot
func (m *StockLotModel) ToDomain() *subledger.StockLot {
	return &subledger.StockLot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SKU:               m.SKU,
		Direction:         m.Direction,
		Quantity:          m.Quantity,
		Remaining:         m.Remaining,
		UnitCost:          m.UnitCost,
		Date:              m.Date,
		Period:            m.Period,
		VoucherID:         m.VoucherID,
	}
}

// FromDomain populates the persistence model from a domain StockLot
func (m *StockLotModel) FromDomain(l *subledger.StockLot) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.SKU = l.SKU
	m.Direction = l.Direction
	m.Quantity = l.Quantity
	m.Remaining = l.Remaining
	m.UnitCost = l.UnitCost
	m.Date = l.Date
	m.Period = l.Period
	m.VoucherID = l.VoucherID
}

// FixedAssetModel is the persistence model for depreciable assets
type FixedAssetModel struct {
	AggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	Cost            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Salvage         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LifePeriods     int             `gorm:"not null"`
	AcquisitionDate time.Time       `gorm:"not null"`
	Period          string          `gorm:"type:varchar(7);not null;index"`
	Accumulated     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PeriodsCharged  int             `gorm:"not null;default:0"`
	VoucherID       uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (FixedAssetModel) TableName() string {
	return "fixed_assets"
}

// ToDomain converts the persistence model to a domain FixedAsset
func (m *FixedAssetModel) ToDomain() *subledger.FixedAsset {
	return &subledger.FixedAsset{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Cost:              m.Cost,
		Salvage:           m.Salvage,
		LifePeriods:       m.LifePeriods,
		AcquisitionDate:   m.AcquisitionDate,
		Period:            m.Period,
		Accumulated:       m.Accumulated,
		PeriodsCharged:    m.PeriodsCharged,
		VoucherID:         m.VoucherID,
	}
}

// FromDomain populates the persistence model from a domain FixedAsset
func (m *FixedAssetModel) FromDomain(a *subledger.FixedAsset) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Cost = a.Cost
	m.Salvage = a.Salvage
	m.LifePeriods = a.LifePeriods
	m.AcquisitionDate = a.AcquisitionDate
	m.Period = a.Period
	m.Accumulated = a.Accumulated
	m.PeriodsCharged = a.PeriodsCharged
	m.VoucherID = a.VoucherID
}

// DepreciationChargeModel records one period's depreciation for one asset.
// The unique index enforces at most one charge per (asset, period).
type DepreciationChargeModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	AssetID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_charge_asset_period,priority:1"`
	Period    string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_charge_asset_period,priority:2"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VoucherID uuid.UUID       `gorm:"type:uuid"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DepreciationChargeModel) TableName() string {
	return "depreciation_charges"
}

// ToDomain converts the persistence model to a domain DepreciationCharge
func (m *DepreciationChargeModel) ToDomain() *subledger.DepreciationCharge {
	return &subledger.DepreciationCharge{
		ID:        m.ID,
		AssetID:   m.AssetID,
		Period:    m.Period,
		Amount:    m.Amount,
		VoucherID: m.VoucherID,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain DepreciationCharge
func (m *DepreciationChargeModel) FromDomain(c *subledger.DepreciationCharge) {
	m.ID = c.ID
	m.AssetID = c.AssetID
	m.Period = c.Period
	m.Amount = c.Amount
	m.VoucherID = c.VoucherID
	m.CreatedAt = c.CreatedAt
}
