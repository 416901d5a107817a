package adapter

import (
	"sort"
	"time"

	"github.com/wallet-roaster/internal/types"
)

// topHoldingsLimit caps the number of holdings surfaced on the snapshot
const topHoldingsLimit = 5

// normalizeDistribution maps the upstream distribution onto the snapshot
// shape. Locked value is folded into staked: both are capital the owner
// cannot spend right now.
func normalizeDistribution(d *zerionDistribution) types.Distribution {
	if d == nil {
		return types.Distribution{}
	}
	return types.Distribution{
		Wallet:    d.Wallet,
		Staked:    d.Staked + d.Locked,
		Deposited: d.Deposited,
	}
}

// normalizePositions converts upstream positions into snapshot positions,
// dropping trash and non-displayable entries
func normalizePositions(raw []zerionPosition) []types.Position {
	positions := make([]types.Position, 0, len(raw))
	for _, pos := range raw {
		attrs := pos.Attributes
		if !attrs.Flags.Displayable || attrs.Flags.IsTrash {
			continue
		}

		holding := types.Holding{
			Name:     attrs.FungibleInfo.Name,
			Symbol:   attrs.FungibleInfo.Symbol,
			Quantity: attrs.Quantity.Float,
			Price:    attrs.Price,
			Verified: attrs.FungibleInfo.Flags.Verified,
		}
		if attrs.Value != nil {
			holding.Value = *attrs.Value
		}
		if attrs.Changes != nil {
			holding.Change24h = attrs.Changes.Percent1d
		}
		if attrs.FungibleInfo.Icon != nil {
			holding.Icon = attrs.FungibleInfo.Icon.URL
		}

		positions = append(positions, types.Position{
			Holding:      holding,
			PositionType: attrs.PositionType,
		})
	}
	return positions
}

// topHoldings selects the most valuable positions, descending by USD value.
// Zero-value positions never make the list.
func topHoldings(positions []types.Position) []types.Holding {
	valued := make([]types.Holding, 0, len(positions))
	for _, pos := range positions {
		if pos.Value > 0 {
			valued = append(valued, pos.Holding)
		}
	}
	sort.SliceStable(valued, func(i, j int) bool {
		return valued[i].Value > valued[j].Value
	})
	if len(valued) > topHoldingsLimit {
		valued = valued[:topHoldingsLimit]
	}
	return valued
}

// normalizeTransactions converts upstream transactions into the analytics
// input shape. Transactions with an unparseable timestamp keep a zero
// MinedAt rather than being dropped.
func normalizeTransactions(raw []zerionTransaction) []types.RawTransaction {
	txs := make([]types.RawTransaction, 0, len(raw))
	for _, tx := range raw {
		attrs := tx.Attributes

		// Only terminal statuses are classified; pending and anything else
		// upstream invents must not count as a failure
		var status types.TransactionStatus
		switch attrs.Status {
		case "confirmed":
			status = types.StatusConfirmed
		case "failed":
			status = types.StatusFailed
		default:
			status = types.StatusOther
		}

		normalized := types.RawTransaction{
			Hash:          attrs.Hash,
			OperationType: attrs.OperationType,
			Status:        status,
		}
		if attrs.Fee != nil {
			normalized.Fee = attrs.Fee.Value
		}
		if minedAt, err := time.Parse(time.RFC3339, attrs.MinedAt); err == nil {
			normalized.MinedAt = minedAt
		}

		for _, transfer := range attrs.Transfers {
			rawTransfer := types.RawTransfer{Direction: transfer.Direction}
			if transfer.FungibleInfo != nil {
				rawTransfer.Symbol = transfer.FungibleInfo.Symbol
				rawTransfer.Name = transfer.FungibleInfo.Name
			}
			if transfer.Quantity != nil {
				rawTransfer.Quantity = transfer.Quantity.Float
			}
			if transfer.Value != nil {
				rawTransfer.Value = *transfer.Value
			}
			normalized.Transfers = append(normalized.Transfers, rawTransfer)
		}

		txs = append(txs, normalized)
	}
	return txs
}

// normalizeChart converts [timestamp, value] pairs into chart points with
// pre-rendered labels
func normalizeChart(points [][2]float64) []types.ChartDataPoint {
	chart := make([]types.ChartDataPoint, 0, len(points))
	for _, pair := range points {
		ts := time.Unix(int64(pair[0]), 0).UTC()
		chart = append(chart, types.ChartDataPoint{
			Timestamp: ts.Unix(),
			Value:     pair[1],
			Date:      ts.Format("Jan 2"),
			Time:      ts.Format("15:04"),
		})
	}
	return chart
}

// normalizePnL maps the upstream profit figures onto the snapshot shape
func normalizePnL(resp *zerionPnLResponse) types.PnL {
	if resp == nil {
		return types.PnL{}
	}
	attrs := resp.Data.Attributes
	return types.PnL{
		TotalProfit:        attrs.TotalProfit,
		TotalProfitPercent: attrs.TotalProfitPercent,
		RealizedProfit:     attrs.TotalRealizedProfit,
		UnrealizedProfit:   attrs.TotalUnrealizedProfit,
	}
}
