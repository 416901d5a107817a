package analytics

import (
	"sort"
	"time"

	"github.com/wallet-roaster/internal/types"
)

// recentWindow is the trailing window used for the recent-activity count
const recentWindow = 7 * 24 * time.Hour

// topTokensLimit caps the number of tokens reported in TopTokensTraded
const topTokensLimit = 5

// ComputeTransactionInsights derives aggregate statistics from a raw
// transaction history. The now parameter anchors the trailing-7-day
// recent-activity window to fetch time. An empty history yields zeroed
// insights, never an error.
func ComputeTransactionInsights(txs []types.RawTransaction, now time.Time) *types.TransactionInsights {
	insights := &types.TransactionInsights{
		TotalTransactions: len(txs),
		TopTokensTraded:   []types.TokenTradeStats{},
		TradingPatterns: types.TradingPatterns{
			RiskLevel:               types.RiskLow,
			PreferredOperationTypes: []string{},
		},
	}
	if len(txs) == 0 {
		return insights
	}

	opCounts := make(map[string]int)
	opOrder := make([]string, 0)
	tokenStats := make(map[string]*types.TokenTradeStats)
	tokenOrder := make([]string, 0)
	cutoff := now.Add(-recentWindow)

	for _, tx := range txs {
		switch tx.Status {
		case types.StatusConfirmed:
			insights.SuccessfulTransactions++
		case types.StatusFailed:
			insights.FailedTransactions++
		}

		insights.TotalFeesPaid += tx.Fee

		if tx.OperationType != "" {
			if _, seen := opCounts[tx.OperationType]; !seen {
				opOrder = append(opOrder, tx.OperationType)
			}
			opCounts[tx.OperationType]++
		}

		if !tx.MinedAt.Before(cutoff) {
			insights.RecentActivity++
		}

		for _, transfer := range tx.Transfers {
			if transfer.Symbol == "" {
				continue
			}
			stats, ok := tokenStats[transfer.Symbol]
			if !ok {
				stats = &types.TokenTradeStats{Symbol: transfer.Symbol, Name: transfer.Name}
				tokenStats[transfer.Symbol] = stats
				tokenOrder = append(tokenOrder, transfer.Symbol)
			}
			stats.Count++
			stats.TotalValue += transfer.Value
		}
	}

	insights.AverageFeePerTransaction = insights.TotalFeesPaid / float64(insights.TotalTransactions)
	insights.MostUsedOperationType = modeOperation(opCounts, opOrder)
	insights.TopTokensTraded = rankTokens(tokenStats, tokenOrder, topTokensLimit)
	insights.TradingPatterns = types.TradingPatterns{
		IsActiveTrader:          insights.RecentActivity > 10,
		RiskLevel:               riskLevel(insights.FailedTransactions, insights.TotalTransactions),
		PreferredOperationTypes: preferredOperations(opCounts, opOrder, 3),
	}

	return insights
}

// SuccessRate returns the percentage of confirmed transactions, 0 when the
// history is empty
func SuccessRate(insights *types.TransactionInsights) float64 {
	if insights == nil || insights.TotalTransactions == 0 {
		return 0
	}
	return float64(insights.SuccessfulTransactions) / float64(insights.TotalTransactions) * 100
}

// modeOperation returns the most frequent operation type; ties resolve to
// the first-encountered type
func modeOperation(counts map[string]int, order []string) string {
	mode := ""
	maxCount := 0
	for _, op := range order {
		if counts[op] > maxCount {
			maxCount = counts[op]
			mode = op
		}
	}
	return mode
}

// preferredOperations returns the top-n operation types by frequency,
// descending, first-encountered breaking ties
func preferredOperations(counts map[string]int, order []string, n int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// rankTokens orders traded tokens by occurrence count descending and keeps
// the top n
func rankTokens(stats map[string]*types.TokenTradeStats, order []string, n int) []types.TokenTradeStats {
	ranked := make([]types.TokenTradeStats, 0, len(order))
	for _, symbol := range order {
		ranked = append(ranked, *stats[symbol])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// riskLevel bands the transaction failure rate
func riskLevel(failed, total int) types.RiskLevel {
	if total == 0 {
		return types.RiskLow
	}
	rate := float64(failed) / float64(total)
	switch {
	case rate > 0.3:
		return types.RiskHigh
	case rate > 0.1:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// ClassifyTradingFrequency buckets a wallet by total history size and
// trailing-week activity
func ClassifyTradingFrequency(totalTransactions, recentActivity int) types.TradingFrequency {
	switch {
	case totalTransactions == 0:
		return types.FrequencyGhost
	case recentActivity > 20:
		return types.FrequencyDegen
	case recentActivity > 10:
		return types.FrequencyActive
	case recentActivity > 3:
		return types.FrequencyModerate
	case totalTransactions > 5:
		return types.FrequencyHodler
	default:
		return types.FrequencyGhost
	}
}
