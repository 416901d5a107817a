// Package service orchestrates wallet data retrieval, analytics and roast
// generation on top of the adapter and storage layers.
package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/wallet-roaster/internal/analytics"
	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/types"
)

// WalletFetcher abstracts the upstream portfolio data source
type WalletFetcher interface {
	FetchWalletData(ctx context.Context, address string) (*types.WalletData, error)
	FetchTransactions(ctx context.Context, address string) ([]types.RawTransaction, error)
	FetchChart(ctx context.Context, address string) ([]types.ChartDataPoint, error)
}

// SnapshotCache abstracts snapshot caching
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, address string) (*types.WalletData, bool, error)
	SetSnapshot(ctx context.Context, snapshot *types.WalletData) error
	InvalidateAddress(ctx context.Context, address string) error
}

// WalletService builds complete wallet snapshots: upstream data enriched
// with transaction and chart analytics, cached under the wallet address.
type WalletService struct {
	fetcher WalletFetcher
	cache   SnapshotCache
	now     func() time.Time
	logger  *logging.Logger
}

// NewWalletService creates a new wallet service
func NewWalletService(fetcher WalletFetcher, cache SnapshotCache) *WalletService {
	return &WalletService{
		fetcher: fetcher,
		cache:   cache,
		now:     time.Now,
		logger:  logging.GetGlobalLogger().WithField("component", "WalletService"),
	}
}

// GetSnapshot returns the analytics-enriched snapshot for an address,
// serving from cache when a fresh snapshot exists.
func (s *WalletService) GetSnapshot(ctx context.Context, address string) (*types.WalletData, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.NewInvalidAddressError(address)
	}

	if s.cache != nil {
		cached, found, err := s.cache.GetSnapshot(ctx, address)
		if err != nil {
			// Cache trouble never blocks a fetch
			s.logger.WithError(err).Warn("Snapshot cache read failed")
		} else if found {
			s.logger.WithField("address", address).Debug("Snapshot cache hit")
			return cached, nil
		}
	}

	snapshot, err := s.buildSnapshot(ctx, address)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snapshot); err != nil {
			s.logger.WithError(err).Warn("Snapshot cache write failed")
		}
	}

	return snapshot, nil
}

// Refresh drops the cached snapshot and rebuilds it from upstream
func (s *WalletService) Refresh(ctx context.Context, address string) (*types.WalletData, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.NewInvalidAddressError(address)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAddress(ctx, address); err != nil {
			s.logger.WithError(err).Warn("Snapshot cache invalidation failed")
		}
	}

	return s.GetSnapshot(ctx, address)
}

// GetChart returns the wallet's value series with summary statistics,
// derived insights and rendering axis bounds
func (s *WalletService) GetChart(ctx context.Context, address string) (*ChartView, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.NewInvalidAddressError(address)
	}

	points, err := s.fetcher.FetchChart(ctx, address)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(points)
	view := &ChartView{
		Summary:  summary,
		Insights: analytics.ComputeChartInsights(points),
	}
	if len(points) > 0 {
		view.Axis = analytics.NiceAxis(summary.LowestValue, summary.HighestValue)
	}
	return view, nil
}

// ChartView is the chart payload returned to API clients
type ChartView struct {
	Summary  *types.ChartSummary     `json:"summary"`
	Insights analytics.ChartInsights `json:"insights"`
	Axis     analytics.Axis          `json:"axis"`
}

// buildSnapshot fetches upstream data and attaches derived analytics.
// Transaction and chart failures degrade the snapshot instead of failing it;
// the portfolio fetch itself is required.
func (s *WalletService) buildSnapshot(ctx context.Context, address string) (*types.WalletData, error) {
	snapshot, err := s.fetcher.FetchWalletData(ctx, address)
	if err != nil {
		return nil, err
	}

	txs, err := s.fetcher.FetchTransactions(ctx, address)
	if err != nil {
		s.logger.WithError(err).WithField("address", address).Warn("Transaction fetch failed, scoring without history")
	} else {
		snapshot.TransactionInsights = analytics.ComputeTransactionInsights(txs, s.now())
	}

	if snapshot.TransactionInsights != nil {
		snapshot.TradingFrequency = analytics.ClassifyTradingFrequency(
			snapshot.TransactionInsights.TotalTransactions,
			snapshot.TransactionInsights.RecentActivity,
		)
	} else {
		snapshot.TradingFrequency = types.FrequencyGhost
	}

	points, err := s.fetcher.FetchChart(ctx, address)
	if err != nil {
		s.logger.WithError(err).WithField("address", address).Warn("Chart fetch failed, scoring without series")
	} else if len(points) > 0 {
		snapshot.ChartData = analytics.Summarize(points)
	}

	snapshot.FetchedAt = s.now()
	return snapshot, nil
}
