package ledger

import (
	"context"
	"time"

	"github.com/glbooks/backend/internal/domain/ledger"
)

// PeriodService manages the open/closed lifecycle of accounting periods
type PeriodService struct {
	periods ledger.PeriodRepository
	store   ledger.LedgerStore
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(periods ledger.PeriodRepository, store ledger.LedgerStore) *PeriodService {
	return &PeriodService{periods: periods, store: store}
}

// PeriodResponse represents a period in API responses
type PeriodResponse struct {
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// Close carries forward the period's balances and marks it closed
func (s *PeriodService) Close(ctx context.Context, name string) (*PeriodResponse, error) {
	if err := s.store.ClosePeriod(ctx, name); err != nil {
		return nil, err
	}
	return s.Get(ctx, name)
}

// Reopen marks a closed period open for posting again
func (s *PeriodService) Reopen(ctx context.Context, name string) (*PeriodResponse, error) {
	if err := s.store.ReopenPeriod(ctx, name); err != nil {
		return nil, err
	}
	return s.Get(ctx, name)
}

// Get returns a period by its YYYY-MM label
func (s *PeriodService) Get(ctx context.Context, name string) (*PeriodResponse, error) {
	if err := ledger.ValidatePeriodName(name); err != nil {
		return nil, err
	}
	period, err := s.periods.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toPeriodResponse(period), nil
}

// List returns every known period ordered by label
func (s *PeriodService) List(ctx context.Context) ([]PeriodResponse, error) {
	periods, err := s.periods.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = *toPeriodResponse(&periods[i])
	}
	return responses, nil
}

func toPeriodResponse(p *ledger.Period) *PeriodResponse {
	return &PeriodResponse{
		Name:     p.Name,
		Status:   p.Status.String(),
		ClosedAt: p.ClosedAt,
	}
}
