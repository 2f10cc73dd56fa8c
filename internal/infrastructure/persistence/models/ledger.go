package models

import (
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for chart-of-accounts entries
type AccountModel struct {
	BaseModel
	Code       string               `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name       string               `gorm:"type:varchar(200);not null"`
	Level      int                  `gorm:"not null"`
	ParentCode string               `gorm:"type:varchar(20);index"`
	Type       ledger.AccountType   `gorm:"type:varchar(20);not null"`
	Direction  ledger.Direction     `gorm:"type:varchar(10);not null"`
	CashFlow   ledger.CashFlowClass `gorm:"type:varchar(20)"`
	IsEnabled  bool                 `gorm:"not null;default:true"`
	IsSystem   bool                 `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Level:      m.Level,
		ParentCode: m.ParentCode,
		Type:       m.Type,
		Direction:  m.Direction,
		CashFlow:   m.CashFlow,
		IsEnabled:  m.IsEnabled,
		IsSystem:   m.IsSystem,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Code = a.Code
	m.Name = a.Name
	m.Level = a.Level
	m.ParentCode = a.ParentCode
	m.Type = a.Type
	m.Direction = a.Direction
	m.CashFlow = a.CashFlow
	m.IsEnabled = a.IsEnabled
	m.IsSystem = a.IsSystem
}

// DimensionModel is the persistence model for analytic dimensions
type DimensionModel struct {
	ID        int64                `gorm:"primaryKey;autoIncrement"`
	Type      ledger.DimensionType `gorm:"type:varchar(20);not null;uniqueIndex:idx_dimension_type_code,priority:1"`
	Code      string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_dimension_type_code,priority:2"`
	Name      string               `gorm:"type:varchar(200);not null"`
	ParentID  int64                `gorm:"not null;default:0;index"`
	IsEnabled bool                 `gorm:"not null;default:true"`
	CreatedAt time.Time            `gorm:"not null"`
	UpdatedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DimensionModel) TableName() string {
	return "dimensions"
}

// ToDomain converts the persistence model to a domain Dimension
func (m *DimensionModel) ToDomain() *ledger.Dimension {
	return &ledger.Dimension{
		ID:        m.ID,
		Type:      m.Type,
		Code:      m.Code,
		Name:      m.Name,
		ParentID:  m.ParentID,
		IsEnabled: m.IsEnabled,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Dimension
func (m *DimensionModel) FromDomain(d *ledger.Dimension) {
	m.ID = d.ID
	m.Type = d.Type
	m.Code = d.Code
	m.Name = d.Name
	m.ParentID = d.ParentID
	m.IsEnabled = d.IsEnabled
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}

// PeriodModel is the persistence model for accounting periods
type PeriodModel struct {
	Name      string              `gorm:"type:varchar(7);primaryKey"`
	Status    ledger.PeriodStatus `gorm:"type:varchar(10);not null;default:'OPEN'"`
	ClosedAt  *time.Time
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PeriodModel) TableName() string {
	return "periods"
}

// ToDomain converts the persistence model to a domain Period
func (m *PeriodModel) ToDomain() *ledger.Period {
	return &ledger.Period{
		Name:      m.Name,
		Status:    m.Status,
		ClosedAt:  m.ClosedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Period
func (m *PeriodModel) FromDomain(p *ledger.Period) {
	m.Name = p.Name
	m.Status = p.Status
	m.ClosedAt = p.ClosedAt
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// VoucherModel is the persistence model for the Voucher aggregate root
type VoucherModel struct {
	AggregateModel
	VoucherNo   string               `gorm:"type:varchar(30);not null;uniqueIndex"`
	Date        time.Time            `gorm:"not null;index"`
	Period      string               `gorm:"type:varchar(7);not null;index"`
	Description string               `gorm:"type:text"`
	Status      ledger.VoucherStatus `gorm:"type:varchar(10);not null;default:'DRAFT';index"`
	Entries     []VoucherEntryModel  `gorm:"foreignKey:VoucherID;references:ID"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts the persistence model to a domain Voucher
func (m *VoucherModel) ToDomain() *ledger.Voucher {
	v := &ledger.Voucher{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VoucherNo:         m.VoucherNo,
		Date:              m.Date,
		Period:            m.Period,
		Description:       m.Description,
		Status:            m.Status,
		Entries:           make([]ledger.VoucherEntry, len(m.Entries)),
	}
	for i, e := range m.Entries {
		v.Entries[i] = e.ToDomain()
	}
	return v
}

// FromDomain populates the persistence model from a domain Voucher
func (m *VoucherModel) FromDomain(v *ledger.Voucher) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.VoucherNo = v.VoucherNo
	m.Date = v.Date
	m.Period = v.Period
	m.Description = v.Description
	m.Status = v.Status
	m.Entries = make([]VoucherEntryModel, len(v.Entries))
	for i, e := range v.Entries {
		m.Entries[i].FromDomain(v.ID, i, e)
	}
}

// VoucherEntryModel is one debit/credit line of a voucher
type VoucherEntryModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	VoucherID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq          int             `gorm:"not null"`
	AccountCode  string          `gorm:"type:varchar(20);not null;index"`
	Debit        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DepartmentID int64           `gorm:"not null;default:0"`
	ProjectID    int64           `gorm:"not null;default:0"`
	CustomerID   int64           `gorm:"not null;default:0"`
	SupplierID   int64           `gorm:"not null;default:0"`
	EmployeeID   int64           `gorm:"not null;default:0"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VoucherEntryModel) TableName() string {
	return "voucher_entries"
}

// ToDomain converts the persistence model to a domain VoucherEntry
func (m *VoucherEntryModel) ToDomain() ledger.VoucherEntry {
	return ledger.VoucherEntry{
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Dimensions: ledger.DimensionRef{
			DepartmentID: m.DepartmentID,
			ProjectID:    m.ProjectID,
			CustomerID:   m.CustomerID,
			SupplierID:   m.SupplierID,
			EmployeeID:   m.EmployeeID,
		},
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain VoucherEntry
func (m *VoucherEntryModel) FromDomain(voucherID uuid.UUID, seq int, e ledger.VoucherEntry) {
	m.VoucherID = voucherID
	m.Seq = seq
	m.AccountCode = e.AccountCode
	m.Debit = e.Debit
	m.Credit = e.Credit
	m.DepartmentID = e.Dimensions.DepartmentID
	m.ProjectID = e.Dimensions.ProjectID
	m.CustomerID = e.Dimensions.CustomerID
	m.SupplierID = e.Dimensions.SupplierID
	m.EmployeeID = e.Dimensions.EmployeeID
	m.Description = e.Description
}

// BalanceModel is one materialized balance bucket, keyed by account, period
// and the full dimension combination (zero IDs mean "no dimension")
type BalanceModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	AccountCode  string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_balance_key,priority:1"`
	Period       string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_balance_key,priority:2"`
	DepartmentID int64           `gorm:"not null;default:0;uniqueIndex:idx_balance_key,priority:3"`
	ProjectID    int64           `gorm:"not null;default:0;uniqueIndex:idx_balance_key,priority:4"`
	CustomerID   int64           `gorm:"not null;default:0;uniqueIndex:idx_balance_key,priority:5"`
	SupplierID   int64           `gorm:"not null;default:0;uniqueIndex:idx_balance_key,priority:6"`
	EmployeeID   int64           `gorm:"not null;default:0;uniqueIndex:idx_balance_key,priority:7"`
	Opening      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Debit        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Closing      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BalanceModel) TableName() string {
	return "balances"
}

// ToDomain converts the persistence model to a domain Balance
func (m *BalanceModel) ToDomain() *ledger.Balance {
	return &ledger.Balance{
		Key: ledger.BalanceKey{
			AccountCode:  m.AccountCode,
			Period:       m.Period,
			DepartmentID: m.DepartmentID,
			ProjectID:    m.ProjectID,
			CustomerID:   m.CustomerID,
			SupplierID:   m.SupplierID,
			EmployeeID:   m.EmployeeID,
		},
		Opening:   m.Opening,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Closing:   m.Closing,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Balance.
// The surrogate ID is left alone so updates hit the existing row.
func (m *BalanceModel) FromDomain(b *ledger.Balance) {
	m.AccountCode = b.Key.AccountCode
	m.Period = b.Key.Period
	m.DepartmentID = b.Key.DepartmentID
	m.ProjectID = b.Key.ProjectID
	m.CustomerID = b.Key.CustomerID
	m.SupplierID = b.Key.SupplierID
	m.EmployeeID = b.Key.EmployeeID
	m.Opening = b.Opening
	m.Debit = b.Debit
	m.Credit = b.Credit
	m.Closing = b.Closing
	m.CreatedAt = b.CreatedAt
	m.UpdatedAt = b.UpdatedAt
}
