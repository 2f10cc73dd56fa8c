package persistence

import (
	"context"
	"errors"

	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/glbooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*subledger.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByParty returns the party's invoices of one kind for a period
func (r *GormInvoiceRepository) FindByParty(ctx context.Context, kind subledger.InvoiceKind, partyID int64, period string) ([]subledger.Invoice, error) {
	var rows []models.InvoiceModel
	if err := dbFrom(ctx, r.db).
		Where("kind = ? AND party_id = ? AND period = ?", kind, partyID, period).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// FindOutstanding returns the party's unsettled invoices, oldest first
func (r *GormInvoiceRepository) FindOutstanding(ctx context.Context, kind subledger.InvoiceKind, partyID int64) ([]subledger.Invoice, error) {
	var rows []models.InvoiceModel
	if err := dbFrom(ctx, r.db).
		Where("kind = ? AND party_id = ? AND paid_amount < amount", kind, partyID).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *subledger.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	return dbFrom(ctx, r.db).Save(&model).Error
}

func toDomainInvoices(rows []models.InvoiceModel) []subledger.Invoice {
	invoices := make([]subledger.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ subledger.InvoiceRepository = (*GormInvoiceRepository)(nil)
