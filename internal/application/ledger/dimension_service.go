package ledger

import (
	"context"
	"fmt"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
)

// DimensionService manages analytic dimensions
type DimensionService struct {
	dimensions ledger.DimensionRepository
}

// NewDimensionService creates a new DimensionService
func NewDimensionService(dimensions ledger.DimensionRepository) *DimensionService {
	return &DimensionService{dimensions: dimensions}
}

// CreateDimensionRequest represents a request to add a dimension
type CreateDimensionRequest struct {
	Type     string `json:"type" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	ParentID int64  `json:"parent_id"`
}

// DimensionResponse represents a dimension in API responses
type DimensionResponse struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ParentID  int64  `json:"parent_id,omitempty"`
	IsEnabled bool   `json:"is_enabled"`
}

// Create adds a new dimension, unique by (type, code)
func (s *DimensionService) Create(ctx context.Context, req CreateDimensionRequest) (*DimensionResponse, error) {
	dimensionType := ledger.DimensionType(req.Type)

	if _, err := s.dimensions.FindByTypeAndCode(ctx, dimensionType, req.Code); err == nil {
		return nil, shared.NewDomainError("DIMENSION_EXISTS",
			fmt.Sprintf("Dimension %s/%s already exists", req.Type, req.Code))
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	dimension, err := ledger.NewDimension(dimensionType, req.Code, req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != 0 {
		parent, err := s.dimensions.FindByID(ctx, req.ParentID)
		if err != nil {
			if err == shared.ErrNotFound {
				parent = nil
			} else {
				return nil, err
			}
		}
		if err := dimension.ValidateParent(parent); err != nil {
			return nil, err
		}
	}

	if err := s.dimensions.Save(ctx, dimension); err != nil {
		return nil, err
	}
	return toDimensionResponse(dimension), nil
}

// ListByType returns all dimensions of one type
func (s *DimensionService) ListByType(ctx context.Context, dimensionType string) ([]DimensionResponse, error) {
	dt := ledger.DimensionType(dimensionType)
	if !dt.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIMENSION_TYPE",
			fmt.Sprintf("Unknown dimension type %q", dimensionType))
	}
	dimensions, err := s.dimensions.FindByType(ctx, dt)
	if err != nil {
		return nil, err
	}
	responses := make([]DimensionResponse, len(dimensions))
	for i := range dimensions {
		responses[i] = *toDimensionResponse(&dimensions[i])
	}
	return responses, nil
}

func toDimensionResponse(d *ledger.Dimension) *DimensionResponse {
	return &DimensionResponse{
		ID:        d.ID,
		Type:      d.Type.String(),
		Code:      d.Code,
		Name:      d.Name,
		ParentID:  d.ParentID,
		IsEnabled: d.IsEnabled,
	}
}
