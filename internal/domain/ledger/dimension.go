package ledger

import (
	"fmt"
	"time"

	"github.com/glbooks/backend/internal/domain/shared"
)

// DimensionType identifies the analytic axis a dimension belongs to
type DimensionType string

const (
	DimensionDepartment DimensionType = "DEPARTMENT"
	DimensionProject    DimensionType = "PROJECT"
	DimensionCustomer   DimensionType = "CUSTOMER"
	DimensionSupplier   DimensionType = "SUPPLIER"
	DimensionEmployee   DimensionType = "EMPLOYEE"
)

// IsValid checks if the dimension type is valid
func (t DimensionType) IsValid() bool {
	switch t {
	case DimensionDepartment, DimensionProject, DimensionCustomer,
		DimensionSupplier, DimensionEmployee:
		return true
	}
	return false
}

// String returns the string representation of DimensionType
func (t DimensionType) String() string {
	return string(t)
}

// AllDimensionTypes returns every valid dimension type
func AllDimensionTypes() []DimensionType {
	return []DimensionType{
		DimensionDepartment,
		DimensionProject,
		DimensionCustomer,
		DimensionSupplier,
		DimensionEmployee,
	}
}

// Dimension is an auxiliary analytic key attachable to voucher entries
// (department, project, customer, supplier, employee). Dimensions are
// hierarchical via ParentID; ID 0 means "no dimension" in balance keys.
type Dimension struct {
	ID        int64
	Type      DimensionType
	Code      string
	Name      string
	ParentID  int64 // 0 for root dimensions
	IsEnabled bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDimension creates a new dimension after validating its shape
func NewDimension(dimensionType DimensionType, code, name string, parentID int64) (*Dimension, error) {
	if !dimensionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIMENSION_TYPE", fmt.Sprintf("Unknown dimension type %q", dimensionType))
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_DIMENSION_CODE", "Dimension code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DIMENSION_NAME", "Dimension name cannot be empty")
	}
	if parentID < 0 {
		return nil, shared.NewDomainError("INVALID_DIMENSION_PARENT", "Parent dimension ID cannot be negative")
	}

	now := time.Now()
	return &Dimension{
		Type:      dimensionType,
		Code:      code,
		Name:      name,
		ParentID:  parentID,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateParent checks that the parent dimension exists and shares the type
func (d *Dimension) ValidateParent(parent *Dimension) error {
	if d.ParentID == 0 {
		return nil
	}
	if parent == nil {
		return shared.NewDomainError("PARENT_NOT_FOUND", fmt.Sprintf("Parent dimension %d does not exist", d.ParentID))
	}
	if parent.Type != d.Type {
		return shared.NewDomainError("INVALID_DIMENSION_PARENT",
			fmt.Sprintf("Parent dimension %d has type %s, expected %s", parent.ID, parent.Type, d.Type))
	}
	return nil
}

// Disable marks the dimension unusable for new postings
func (d *Dimension) Disable() {
	d.IsEnabled = false
	d.UpdatedAt = time.Now()
}
