package ledger

import (
	"context"

	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BalanceService reads materialized balance buckets
type BalanceService struct {
	balances ledger.BalanceRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(balances ledger.BalanceRepository) *BalanceService {
	return &BalanceService{balances: balances}
}

// BalanceResponse represents one balance bucket in API responses
type BalanceResponse struct {
	AccountCode string              `json:"account_code"`
	Period      string              `json:"period"`
	Dimensions  ledger.DimensionRef `json:"dimensions,omitempty"`
	Opening     decimal.Decimal     `json:"opening"`
	Debit       decimal.Decimal     `json:"debit"`
	Credit      decimal.Decimal     `json:"credit"`
	Closing     decimal.Decimal     `json:"closing"`
}

// ListByPeriod returns every bucket of the period
func (s *BalanceService) ListByPeriod(ctx context.Context, period string) ([]BalanceResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	balances, err := s.balances.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	return toBalanceResponses(balances), nil
}

// ListByAccount returns the account's buckets for the period, one per
// dimension combination
func (s *BalanceService) ListByAccount(ctx context.Context, accountCode, period string) ([]BalanceResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}
	balances, err := s.balances.FindByAccountAndPeriod(ctx, accountCode, period)
	if err != nil {
		return nil, err
	}
	return toBalanceResponses(balances), nil
}

func toBalanceResponses(balances []ledger.Balance) []BalanceResponse {
	responses := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = BalanceResponse{
			AccountCode: b.Key.AccountCode,
			Period:      b.Key.Period,
			Dimensions:  b.Key.Dimensions(),
			Opening:     b.Opening,
			Debit:       b.Debit,
			Credit:      b.Credit,
			Closing:     b.Closing,
		}
	}
	return responses
}
