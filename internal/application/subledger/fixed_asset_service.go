package subledger

import (
	"context"
	"fmt"
	"time"

	ledgerapp "github.com/glbooks/backend/internal/application/ledger"
	"github.com/glbooks/backend/internal/domain/ledger"
	"github.com/glbooks/backend/internal/domain/shared"
	"github.com/glbooks/backend/internal/domain/subledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedAssetService manages depreciable assets. Acquisition books fixed
// assets against cash; each period's straight-line charge books
// depreciation expense against accumulated depreciation, at most once per
// (asset, period).
type FixedAssetService struct {
	assets   subledger.FixedAssetRepository
	balances ledger.BalanceRepository
	vouchers *ledgerapp.VoucherService
	store    ledger.LedgerStore
}

// NewFixedAssetService creates a new FixedAssetService
func NewFixedAssetService(
	assets subledger.FixedAssetRepository,
	balances ledger.BalanceRepository,
	vouchers *ledgerapp.VoucherService,
	store ledger.LedgerStore,
) *FixedAssetService {
	return &FixedAssetService{
		assets:   assets,
		balances: balances,
		vouchers: vouchers,
		store:    store,
	}
}

// AddAssetRequest represents a request to acquire a fixed asset
type AddAssetRequest struct {
	Name        string          `json:"name" binding:"required"`
	Cost        decimal.Decimal `json:"cost" binding:"required"`
	Salvage     decimal.Decimal `json:"salvage"`
	LifePeriods int             `json:"life_periods" binding:"required,min=1"`
	Date        time.Time       `json:"date" binding:"required"`
}

// DepreciateRequest represents a request to charge one period's depreciation
type DepreciateRequest struct {
	AssetID uuid.UUID `json:"asset_id" binding:"required"`
	Period  string    `json:"period" binding:"required"`
}

// FixedAssetResponse represents an asset in API responses
type FixedAssetResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Cost            decimal.Decimal `json:"cost"`
	Salvage         decimal.Decimal `json:"salvage"`
	LifePeriods     int             `json:"life_periods"`
	AcquisitionDate time.Time       `json:"acquisition_date"`
	Period          string          `json:"period"`
	Accumulated     decimal.Decimal `json:"accumulated"`
	PeriodsCharged  int             `json:"periods_charged"`
	NetBookValue    decimal.Decimal `json:"net_book_value"`
	VoucherID       uuid.UUID       `json:"voucher_id"`
}

// DepreciationResponse carries the charge booked for one (asset, period)
type DepreciationResponse struct {
	AssetID   uuid.UUID          `json:"asset_id"`
	Period    string             `json:"period"`
	Amount    decimal.Decimal    `json:"amount"`
	VoucherID uuid.UUID          `json:"voucher_id"`
	Asset     FixedAssetResponse `json:"asset"`
}

// FixedAssetReconciliationResponse carries both fixed-asset comparisons:
// total asset cost against the fixed-asset account and the sum of
// depreciation charges against accumulated depreciation.
type FixedAssetReconciliationResponse struct {
	Scope                   string                      `json:"scope"`
	Period                  string                      `json:"period"`
	Cost                    ledger.ReconciliationResult `json:"cost"`
	AccumulatedDepreciation ledger.ReconciliationResult `json:"accumulated_depreciation"`
}

// Add acquires a fixed asset and posts it against cash
func (s *FixedAssetService) Add(ctx context.Context, req AddAssetRequest) (*FixedAssetResponse, error) {
	asset, err := subledger.NewFixedAsset(req.Name, req.Cost, req.Salvage, req.LifePeriods, req.Date)
	if err != nil {
		return nil, err
	}

	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        req.Date,
			Description: fmt.Sprintf("Asset acquisition %s", req.Name),
			Entries:     journalEntries(accountFixedAsset, ledger.DimensionRef{}, accountCash, ledger.DimensionRef{}, req.Cost, ""),
		})
		if err != nil {
			return err
		}
		asset.VoucherID = posted.ID
		return s.assets.Save(ctx, asset)
	})
	if err != nil {
		return nil, err
	}
	return toFixedAssetResponse(asset), nil
}

// Depreciate charges the asset's straight-line amount for the period and
// posts depreciation expense against accumulated depreciation. A second
// charge for the same (asset, period) is rejected. The voucher and the
// charge record are written in one unit of work.
func (s *FixedAssetService) Depreciate(ctx context.Context, req DepreciateRequest) (*DepreciationResponse, error) {
	// Post dated on the first day of the charged period
	date, err := ledger.PeriodStart(req.Period)
	if err != nil {
		return nil, err
	}

	asset, err := s.assets.FindByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.assets.FindCharge(ctx, req.AssetID, req.Period); err == nil {
		return nil, shared.NewDomainError("CHARGE_EXISTS",
			fmt.Sprintf("Asset %s already depreciated in %s", req.AssetID, req.Period))
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	amount := asset.Depreciate()
	if amount.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Asset %s is fully depreciated", req.AssetID))
	}

	charge, err := subledger.NewDepreciationCharge(asset.ID, req.Period, amount)
	if err != nil {
		return nil, err
	}

	err = s.store.InTransaction(ctx, func(ctx context.Context) error {
		posted, err := s.vouchers.Post(ctx, ledgerapp.RecordVoucherRequest{
			Date:        date,
			Description: fmt.Sprintf("Depreciation %s %s", asset.Name, req.Period),
			Entries:     journalEntries(accountDepreciation, ledger.DimensionRef{}, accountAccumDepr, ledger.DimensionRef{}, amount, ""),
		})
		if err != nil {
			return err
		}
		charge.VoucherID = posted.ID
		if err := s.assets.SaveCharge(ctx, charge); err != nil {
			return err
		}
		return s.assets.Save(ctx, asset)
	})
	if err != nil {
		return nil, err
	}

	return &DepreciationResponse{
		AssetID:   asset.ID,
		Period:    req.Period,
		Amount:    amount,
		VoucherID: charge.VoucherID,
		Asset:     *toFixedAssetResponse(asset),
	}, nil
}

// DepreciatePeriod charges every asset's straight-line amount for the
// period. Assets already charged in the period and fully depreciated
// assets are skipped.
func (s *FixedAssetService) DepreciatePeriod(ctx context.Context, period string) ([]DepreciationResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}

	assets, err := s.assets.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	charged := make([]DepreciationResponse, 0, len(assets))
	for i := range assets {
		asset := &assets[i]
		if asset.IsFullyDepreciated() {
			continue
		}
		if _, err := s.assets.FindCharge(ctx, asset.ID, period); err == nil {
			continue
		} else if err != shared.ErrNotFound {
			return nil, err
		}

		resp, err := s.Depreciate(ctx, DepreciateRequest{AssetID: asset.ID, Period: period})
		if err != nil {
			return nil, err
		}
		charged = append(charged, *resp)
	}
	return charged, nil
}

// List returns every asset. With a period, accumulated depreciation and
// net book value are reported as of that period instead of the latest
// charge.
func (s *FixedAssetService) List(ctx context.Context, period string) ([]FixedAssetResponse, error) {
	assets, err := s.assets.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var accumulated map[uuid.UUID]decimal.Decimal
	if period != "" {
		if err := ledger.ValidatePeriodName(period); err != nil {
			return nil, err
		}
		charges, err := s.assets.FindChargesThrough(ctx, period)
		if err != nil {
			return nil, err
		}
		accumulated = make(map[uuid.UUID]decimal.Decimal, len(assets))
		for i := range charges {
			accumulated[charges[i].AssetID] = accumulated[charges[i].AssetID].Add(charges[i].Amount)
		}
	}

	responses := make([]FixedAssetResponse, len(assets))
	for i := range assets {
		resp := toFixedAssetResponse(&assets[i])
		if accumulated != nil {
			resp.Accumulated = accumulated[assets[i].ID]
			resp.NetBookValue = assets[i].Cost.Sub(resp.Accumulated)
		}
		responses[i] = *resp
	}
	return responses, nil
}

// Reconcile compares the fixed-asset register against the general ledger
// on both sides: total asset cost against the fixed-asset account, and the
// sum of depreciation charges through the period against accumulated
// depreciation.
func (s *FixedAssetService) Reconcile(ctx context.Context, period string) (*FixedAssetReconciliationResponse, error) {
	if err := ledger.ValidatePeriodName(period); err != nil {
		return nil, err
	}

	assets, err := s.assets.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	costTotal := decimal.Zero
	for i := range assets {
		costTotal = costTotal.Add(assets[i].Cost)
	}

	charges, err := s.assets.FindChargesThrough(ctx, period)
	if err != nil {
		return nil, err
	}
	chargeTotal := decimal.Zero
	for i := range charges {
		chargeTotal = chargeTotal.Add(charges[i].Amount)
	}

	costBucket, err := s.balances.Get(ctx, ledger.NewBalanceKey(accountFixedAsset, period, ledger.DimensionRef{}))
	if err != nil {
		return nil, err
	}
	accumBucket, err := s.balances.Get(ctx, ledger.NewBalanceKey(accountAccumDepr, period, ledger.DimensionRef{}))
	if err != nil {
		return nil, err
	}

	return &FixedAssetReconciliationResponse{
		Scope:                   "FIXED_ASSET",
		Period:                  period,
		Cost:                    ledger.Reconcile(costTotal, costBucket.Closing),
		AccumulatedDepreciation: ledger.Reconcile(chargeTotal, accumBucket.Closing),
	}, nil
}

func toFixedAssetResponse(a *subledger.FixedAsset) *FixedAssetResponse {
	return &FixedAssetResponse{
		ID:              a.ID,
		Name:            a.Name,
		Cost:            a.Cost,
		Salvage:         a.Salvage,
		LifePeriods:     a.LifePeriods,
		AcquisitionDate: a.AcquisitionDate,
		Period:          a.Period,
		Accumulated:     a.Accumulated,
		PeriodsCharged:  a.PeriodsCharged,
		NetBookValue:    a.NetBookValue(),
		VoucherID:       a.VoucherID,
	}
}
