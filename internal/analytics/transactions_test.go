package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallet-roaster/internal/types"
)

func TestComputeTransactionInsights(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty history", func(t *testing.T) {
		insights := ComputeTransactionInsights(nil, now)

		assert.Equal(t, 0, insights.TotalTransactions)
		assert.Equal(t, 0.0, insights.TotalFeesPaid)
		assert.Equal(t, 0.0, insights.AverageFeePerTransaction)
		assert.Empty(t, insights.TopTokensTraded)
		assert.Equal(t, types.RiskLow, insights.TradingPatterns.RiskLevel)
		assert.False(t, insights.TradingPatterns.IsActiveTrader)
	})

	t.Run("mixed history", func(t *testing.T) {
		txs := []types.RawTransaction{
			{
				Hash:          "0x1",
				OperationType: "trade",
				Status:        types.StatusConfirmed,
				Fee:           0.5,
				MinedAt:       now.AddDate(0, 0, -1),
				Transfers: []types.RawTransfer{
					{Symbol: "ETH", Name: "Ethereum", Value: 100},
				},
			},
			{
				Hash:          "0x2",
				OperationType: "trade",
				Status:        types.StatusFailed,
				Fee:           0.3,
				MinedAt:       now.AddDate(0, 0, -2),
				Transfers: []types.RawTransfer{
					{Symbol: "ETH", Name: "Ethereum", Value: 50},
					{Symbol: "USDC", Name: "USD Coin", Value: 50},
				},
			},
			{
				Hash:          "0x3",
				OperationType: "send",
				Status:        types.StatusConfirmed,
				Fee:           0.2,
				MinedAt:       now.AddDate(0, 0, -30),
				Transfers: []types.RawTransfer{
					{Symbol: "USDC", Name: "USD Coin", Value: 25},
				},
			},
		}

		insights := ComputeTransactionInsights(txs, now)

		assert.Equal(t, 3, insights.TotalTransactions)
		assert.Equal(t, 2, insights.SuccessfulTransactions)
		assert.Equal(t, 1, insights.FailedTransactions)
		assert.InDelta(t, 1.0, insights.TotalFeesPaid, 1e-9)
		assert.InDelta(t, 1.0/3.0, insights.AverageFeePerTransaction, 1e-9)
		assert.Equal(t, "trade", insights.MostUsedOperationType)
		assert.Equal(t, 2, insights.RecentActivity)

		require.Len(t, insights.TopTokensTraded, 2)
		assert.Equal(t, "ETH", insights.TopTokensTraded[0].Symbol)
		assert.Equal(t, 2, insights.TopTokensTraded[0].Count)
		assert.InDelta(t, 150.0, insights.TopTokensTraded[0].TotalValue, 1e-9)

		// 1 of 3 failed is above the 30% high-risk threshold
		assert.Equal(t, types.RiskHigh, insights.TradingPatterns.RiskLevel)
		assert.False(t, insights.TradingPatterns.IsActiveTrader)
		assert.Equal(t, []string{"trade", "send"}, insights.TradingPatterns.PreferredOperationTypes)
	})

	t.Run("pending counts toward totals but not success or failure", func(t *testing.T) {
		txs := []types.RawTransaction{
			{
				Hash:          "0x1",
				OperationType: "trade",
				Status:        types.StatusConfirmed,
				Fee:           0.2,
				MinedAt:       now.AddDate(0, 0, -1),
			},
			{
				Hash:          "0x2",
				OperationType: "trade",
				Status:        types.StatusOther,
				Fee:           0.1,
				MinedAt:       now.AddDate(0, 0, -1),
			},
		}

		insights := ComputeTransactionInsights(txs, now)

		assert.Equal(t, 2, insights.TotalTransactions)
		assert.Equal(t, 1, insights.SuccessfulTransactions)
		assert.Equal(t, 0, insights.FailedTransactions)
		// Fees and recency still accrue for non-terminal transactions
		assert.InDelta(t, 0.3, insights.TotalFeesPaid, 1e-9)
		assert.Equal(t, 2, insights.RecentActivity)
		assert.Equal(t, types.RiskLow, insights.TradingPatterns.RiskLevel)
	})

	t.Run("operation tie resolves to first encountered", func(t *testing.T) {
		txs := []types.RawTransaction{
			{Hash: "0x1", OperationType: "send", Status: types.StatusConfirmed, MinedAt: now},
			{Hash: "0x2", OperationType: "receive", Status: types.StatusConfirmed, MinedAt: now},
		}

		insights := ComputeTransactionInsights(txs, now)

		assert.Equal(t, "send", insights.MostUsedOperationType)
	})

	t.Run("recent activity window is trailing seven days", func(t *testing.T) {
		txs := []types.RawTransaction{
			{Hash: "0x1", Status: types.StatusConfirmed, MinedAt: now.Add(-6 * 24 * time.Hour)},
			{Hash: "0x2", Status: types.StatusConfirmed, MinedAt: now.Add(-7 * 24 * time.Hour)},
			{Hash: "0x3", Status: types.StatusConfirmed, MinedAt: now.Add(-8 * 24 * time.Hour)},
		}

		insights := ComputeTransactionInsights(txs, now)

		// The boundary transaction at exactly seven days still counts
		assert.Equal(t, 2, insights.RecentActivity)
	})

	t.Run("token ranking keeps the top five", func(t *testing.T) {
		txs := make([]types.RawTransaction, 0, 7)
		symbols := []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG"}
		for i, symbol := range symbols {
			// Later symbols trade more often
			for j := 0; j <= i; j++ {
				txs = append(txs, types.RawTransaction{
					Hash:    symbol,
					Status:  types.StatusConfirmed,
					MinedAt: now,
					Transfers: []types.RawTransfer{
						{Symbol: symbol, Value: 1},
					},
				})
			}
		}

		insights := ComputeTransactionInsights(txs, now)

		require.Len(t, insights.TopTokensTraded, 5)
		assert.Equal(t, "GGG", insights.TopTokensTraded[0].Symbol)
		assert.Equal(t, 7, insights.TopTokensTraded[0].Count)
		assert.Equal(t, "CCC", insights.TopTokensTraded[4].Symbol)
	})

	t.Run("transfers without a symbol are ignored", func(t *testing.T) {
		txs := []types.RawTransaction{
			{
				Hash:    "0x1",
				Status:  types.StatusConfirmed,
				MinedAt: now,
				Transfers: []types.RawTransfer{
					{Symbol: "", Value: 10},
				},
			},
		}

		insights := ComputeTransactionInsights(txs, now)

		assert.Empty(t, insights.TopTokensTraded)
	})
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, SuccessRate(nil))
	assert.Equal(t, 0.0, SuccessRate(&types.TransactionInsights{}))
	assert.InDelta(t, 50.0, SuccessRate(&types.TransactionInsights{
		TotalTransactions:      10,
		SuccessfulTransactions: 5,
	}), 1e-9)
	assert.InDelta(t, 100.0, SuccessRate(&types.TransactionInsights{
		TotalTransactions:      4,
		SuccessfulTransactions: 4,
	}), 1e-9)
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		failed   int
		total    int
		expected types.RiskLevel
	}{
		{"no transactions", 0, 0, types.RiskLow},
		{"no failures", 0, 10, types.RiskLow},
		{"exactly ten percent", 1, 10, types.RiskLow},
		{"above ten percent", 2, 10, types.RiskMedium},
		{"exactly thirty percent", 3, 10, types.RiskMedium},
		{"above thirty percent", 4, 10, types.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, riskLevel(tt.failed, tt.total))
		})
	}
}

func TestClassifyTradingFrequency(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		recent   int
		expected types.TradingFrequency
	}{
		{"no history", 0, 0, types.FrequencyGhost},
		{"heavy recent activity", 100, 25, types.FrequencyDegen},
		{"active recent", 50, 15, types.FrequencyActive},
		{"moderate recent", 20, 5, types.FrequencyModerate},
		{"old history only", 10, 0, types.FrequencyHodler},
		{"sparse and quiet", 3, 1, types.FrequencyGhost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTradingFrequency(tt.total, tt.recent))
		})
	}
}
