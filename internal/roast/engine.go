package roast

import (
	"fmt"
	"strings"

	"github.com/wallet-roaster/internal/analytics"
	"github.com/wallet-roaster/internal/types"
)

// baselineScore is the neutral starting score before any rule fires
const baselineScore = 50

// flavorChance is the probability of appending a general-purpose closer
const flavorChance = 0.3

// Engine is the deterministic rule-based roast scorer. Given the same wallet
// snapshot the same rules fire with the same deltas on every invocation; the
// injected Rand only varies which phrasing each fired rule uses.
type Engine struct {
	rng Rand
}

// NewEngine creates a roast engine with the given randomness source
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// ruleHit is one fired rule group's contribution
type ruleHit struct {
	name  string
	delta int
	line  string
}

// Generate scores a wallet snapshot and produces the roast commentary.
// The result's score is always clamped to [0,100]. Missing substructures
// (nil insights, empty holdings) skip their rule groups; Generate never
// fails.
func (e *Engine) Generate(data *types.WalletData) *types.RoastResult {
	if data == nil {
		data = &types.WalletData{}
	}

	tier := classifyTier(data.PortfolioValue)
	profile := tierProfiles[tier]

	mainRoast := pick(e.rng, profile.mainRoasts)
	if tier != tierBroke {
		mainRoast = fmt.Sprintf(mainRoast, data.PortfolioValue)
	}

	hits := e.evaluate(data)

	score := baselineScore + profile.delta
	subRoasts := make([]string, 0, len(hits))
	for _, hit := range hits {
		score += hit.delta
		if hit.line != "" {
			subRoasts = append(subRoasts, hit.line)
		}
	}

	if e.rng.Next() < flavorChance {
		subRoasts = append(subRoasts, pick(e.rng, flavorLines))
	}

	p := e.pickPersona(profile.personas)

	return &types.RoastResult{
		MainRoast:        mainRoast,
		SubRoasts:        subRoasts,
		Personality:      p.name,
		PersonalityEmoji: p.emoji,
		Badge:            p.badge,
		Score:            clampScore(score),
	}
}

// evaluate runs every rule group in order and collects the fired ones.
// Rule conditions depend only on the wallet data; the randomness source is
// consulted solely for phrasing.
func (e *Engine) evaluate(data *types.WalletData) []ruleHit {
	hits := make([]ruleHit, 0, 8)
	add := func(name string, delta int, line string) {
		hits = append(hits, ruleHit{name: name, delta: delta, line: line})
	}

	e.evalStaking(data, add)
	e.evalIdleWallet(data, add)
	e.evalTopHolding(data, add)
	e.evalPositions(data, add)
	e.evalTransactions(data, add)

	return hits
}

type addFunc func(name string, delta int, line string)

// evalStaking scores the staked share of the portfolio
func (e *Engine) evalStaking(data *types.WalletData, add addFunc) {
	if data.Distribution.Staked <= 0 || data.PortfolioValue <= 0 {
		return
	}

	stakedPercent := data.Distribution.Staked / data.PortfolioValue * 100
	switch {
	case stakedPercent < 1 && data.PortfolioValue < 10:
		add("staking-dust", -5, fmt.Sprintf(pick(e.rng, stakingDustLines), data.Distribution.Staked))
	case stakedPercent > 50:
		add("staking-maxi", 10, fmt.Sprintf(pick(e.rng, stakingMaxiLines), stakedPercent))
	case stakedPercent >= 20:
		add("staking-healthy", 5, fmt.Sprintf(pick(e.rng, stakingHealthyLines), stakedPercent))
	}
}

// evalIdleWallet penalizes portfolios that are almost entirely un-deployed
func (e *Engine) evalIdleWallet(data *types.WalletData, add addFunc) {
	if data.PortfolioValue <= 0 {
		return
	}

	idlePercent := data.Distribution.Wallet / data.PortfolioValue * 100
	if idlePercent > 90 {
		add("idle-wallet", -5, fmt.Sprintf(pick(e.rng, idleWalletLines), idlePercent))
	}
}

// evalTopHolding scores the largest position: meme-coin membership,
// concentration, the 24h move, and (only when nothing negative fired for
// it) sheer size.
func (e *Engine) evalTopHolding(data *types.WalletData, add addFunc) {
	if len(data.TopHoldings) == 0 {
		return
	}
	top := data.TopHoldings[0]
	negativeFired := false

	if isMemeCoin(top) {
		negativeFired = true
		add("meme-coin", -10, fmt.Sprintf(pick(e.rng, memeCoinLines), top.Symbol))
	}

	if data.PortfolioValue > 0 {
		concentration := top.Value / data.PortfolioValue * 100
		if concentration > 80 {
			negativeFired = true
			add("concentration", -15, fmt.Sprintf(pick(e.rng, concentrationLines), concentration, top.Symbol))
		}
	}

	switch {
	case top.Change24h < -10:
		negativeFired = true
		add("holding-dump", -10, fmt.Sprintf(pick(e.rng, dumpingHoldingLines), top.Symbol, -top.Change24h))
	case top.Change24h > 20:
		add("holding-pump", 5, fmt.Sprintf(pick(e.rng, pumpingHoldingLines), top.Symbol, top.Change24h))
	}

	// The size compliment only lands when there was nothing to drag first
	if top.Value > 10000 && !negativeFired {
		add("big-bag", 10, fmt.Sprintf(pick(e.rng, bigBagLines), top.Value, top.Symbol))
	}
}

// evalPositions scores the shape of the position list; every matching
// condition fires independently
func (e *Engine) evalPositions(data *types.WalletData, add addFunc) {
	total := len(data.Positions)
	if total == 0 {
		return
	}

	verified := 0
	zeroValue := 0
	for _, pos := range data.Positions {
		if pos.Verified {
			verified++
		}
		if pos.Value == 0 {
			zeroValue++
		}
	}
	unverified := total - verified

	if unverified > verified {
		add("unverified-majority", -10, pick(e.rng, unverifiedLines))
	}
	if total > 20 {
		add("position-hoard", -5, fmt.Sprintf(pick(e.rng, tooManyPositionsLines), total))
	}
	if total == 1 {
		add("single-position", 5, pick(e.rng, singlePositionLines))
	}
	if zeroValue > 0 {
		add("zero-value-positions", -10, fmt.Sprintf(pick(e.rng, zeroValuePositionLines), zeroValue))
	}
}

// evalTransactions scores transaction history statistics. A nil insights
// record skips the whole group.
func (e *Engine) evalTransactions(data *types.WalletData, add addFunc) {
	insights := data.TransactionInsights
	if insights == nil {
		return
	}

	if insights.TotalTransactions == 0 {
		add("no-transactions", -20, pick(e.rng, noTransactionLines))
		return
	}

	successRate := analytics.SuccessRate(insights)
	if successRate < 70 && insights.TotalTransactions > 5 {
		add("failed-transactions", -15, fmt.Sprintf(pick(e.rng, failedTxLines), successRate))
	}

	if insights.TotalFeesPaid > 10 {
		add("total-fees", -5, fmt.Sprintf(pick(e.rng, totalFeesLines), insights.TotalFeesPaid))
	}

	if insights.AverageFeePerTransaction > 0.01 && insights.TotalTransactions > 10 {
		add("average-fee", -5, fmt.Sprintf(pick(e.rng, avgFeeLines), insights.AverageFeePerTransaction))
	}

	switch insights.MostUsedOperationType {
	case "execute":
		add("execute-heavy", -5, pick(e.rng, executeHeavyLines))
	case "receive":
		add("receive-heavy", -10, pick(e.rng, receiveHeavyLines))
	case "send":
		add("send-heavy", -5, pick(e.rng, sendHeavyLines))
	}

	if len(insights.TopTokensTraded) > 0 {
		top := insights.TopTokensTraded[0]
		if top.Count > 20 {
			add("frequent-token", -5, fmt.Sprintf(pick(e.rng, frequentTokenLines), top.Count, top.Symbol))
		}
	}

	switch {
	case insights.RecentActivity == 0:
		add("inactive", -10, pick(e.rng, inactiveLines))
	case insights.RecentActivity > 50:
		add("overactive", -5, fmt.Sprintf(pick(e.rng, overactiveLines), insights.RecentActivity))
	}

	if insights.TradingPatterns.RiskLevel == types.RiskHigh {
		add("high-risk", -10, pick(e.rng, highRiskLines))
	}
}

// pickPersona re-randomizes the personality among the tier's synonym set.
// Text-only: the tier (and therefore the score) is already fixed.
func (e *Engine) pickPersona(personas []persona) persona {
	if len(personas) == 0 {
		return persona{name: "Mysterious Trader", emoji: "🤔", badge: "Crypto Enigma"}
	}
	idx := int(e.rng.Next() * float64(len(personas)))
	if idx >= len(personas) {
		idx = len(personas) - 1
	}
	return personas[idx]
}

// isMemeCoin reports whether a holding's symbol or name matches the meme
// keyword list
func isMemeCoin(h types.Holding) bool {
	symbol := strings.ToLower(h.Symbol)
	name := strings.ToLower(h.Name)
	for _, keyword := range memeKeywords {
		if strings.Contains(symbol, keyword) || strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// clampScore bounds a score into [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
