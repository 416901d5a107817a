package roast

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/types"
)

// Provider generates a roast for a wallet snapshot
type Provider interface {
	GenerateRoast(ctx context.Context, data *types.WalletData) (*types.RoastResult, error)
}

// TextGenerator produces free-form text for a prompt. Implemented by the
// generative model client in the adapter package.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// DeterministicProvider wraps the rule engine. It never fails, which makes it
// the terminal fallback of every provider chain.
type DeterministicProvider struct {
	engine *Engine
}

// NewDeterministicProvider creates a provider backed by the rule engine
func NewDeterministicProvider(engine *Engine) *DeterministicProvider {
	return &DeterministicProvider{engine: engine}
}

// GenerateRoast runs the rule engine. The returned error is always nil.
func (p *DeterministicProvider) GenerateRoast(_ context.Context, data *types.WalletData) (*types.RoastResult, error) {
	return p.engine.Generate(data), nil
}

// GenerativeProvider asks a text-generation model for a roast and falls back
// to the deterministic provider whenever the model call or the response
// parsing fails. It also enforces a minimum latency so the caller-facing
// pacing stays consistent whether the roast came from the model, the
// fallback, or a warm cache upstream.
type GenerativeProvider struct {
	generator  TextGenerator
	fallback   Provider
	rng        Rand
	minLatency time.Duration
	logger     *logging.Logger
}

// NewGenerativeProvider creates a generative provider with a deterministic
// fallback
func NewGenerativeProvider(generator TextGenerator, fallback Provider, rng Rand, minLatency time.Duration) *GenerativeProvider {
	return &GenerativeProvider{
		generator:  generator,
		fallback:   fallback,
		rng:        rng,
		minLatency: minLatency,
		logger:     logging.GetGlobalLogger().WithField("component", "GenerativeProvider"),
	}
}

// GenerateRoast builds a data-rich prompt, calls the model and defensively
// parses its reply. Any failure along the way degrades to the fallback
// provider; the caller never sees a model error.
func (p *GenerativeProvider) GenerateRoast(ctx context.Context, data *types.WalletData) (*types.RoastResult, error) {
	start := time.Now()

	result, err := p.generate(ctx, data)
	if err != nil {
		p.logger.WithError(err).Warn("generative roast failed, using deterministic fallback")
		result, err = p.fallback.GenerateRoast(ctx, data)
		if err != nil {
			return nil, err
		}
	}

	p.pace(ctx, start)
	return result, nil
}

func (p *GenerativeProvider) generate(ctx context.Context, data *types.WalletData) (*types.RoastResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("no text generator configured")
	}

	prompt := buildRoastPrompt(data, p.rng)
	reply, err := p.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("text generation: %w", err)
	}
	if reply == "" {
		return nil, fmt.Errorf("empty model reply")
	}

	return parseGeneratedRoast(reply)
}

// pace sleeps out the remainder of the minimum latency window, or returns
// early if the context is cancelled
func (p *GenerativeProvider) pace(ctx context.Context, start time.Time) {
	remaining := p.minLatency - time.Since(start)
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// roastStyles vary the tone the model is asked for between invocations
var roastStyles = []string{
	"savage and brutal",
	"witty and clever",
	"sarcastic and dry",
	"playfully mean",
	"hilariously harsh",
	"roast master level",
}

// buildRoastPrompt renders the wallet snapshot into a prompt that asks the
// model for a strict JSON reply. Sections for missing substructures are
// omitted rather than rendered empty.
func buildRoastPrompt(data *types.WalletData, rng Rand) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a witty, sarcastic crypto analyst who roasts wallets with humor and insight. Keep it light-hearted, clever, and a bit savage. Use emojis sparingly.\n\n")
	fmt.Fprintf(&b, "Generate a %s roast for this wallet portfolio.\n", pick(rng, roastStyles))
	b.WriteString("Focus on the wallet's actual data and make specific, contextual jokes.\n")
	b.WriteString("The response must be a JSON object with this structure:\n")
	b.WriteString(`{
  "mainRoast": "Your main roast message (be creative and specific)",
  "subRoasts": ["Sub roast 1", "Sub roast 2", "Sub roast 3"],
  "personality": "Personality type (be creative)",
  "personalityEmoji": "Appropriate emoji",
  "badge": "Badge title (be creative)",
  "score": "A number between 0 and 100 representing how good/bad the wallet is"
}
`)

	fmt.Fprintf(&b, "\nHere's the wallet data:\n")
	fmt.Fprintf(&b, "- Portfolio Value: $%.2f\n", data.PortfolioValue)
	fmt.Fprintf(&b, "- Distribution: wallet $%.2f, staked $%.2f, deposited $%.2f\n",
		data.Distribution.Wallet, data.Distribution.Staked, data.Distribution.Deposited)

	if len(data.TopHoldings) > 0 {
		fmt.Fprintf(&b, "- Top Holdings (%d tokens):\n", len(data.TopHoldings))
		for i, holding := range data.TopHoldings {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s (%s): $%.2f (%+.2f%% 24h)\n",
				i+1, holding.Name, holding.Symbol, holding.Value, holding.Change24h)
		}
	}

	if len(data.Positions) > 0 {
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
		fmt.Fprintf(&b, "- Total Positions: %d (verified %d, unverified %d, zero-value %d)\n",
			len(data.Positions), verified, len(data.Positions)-verified, zeroValue)
	}

	if insights := data.TransactionInsights; insights != nil {
		fmt.Fprintf(&b, "- Transaction Insights:\n")
		fmt.Fprintf(&b, "  - Total Transactions: %d (successful %d, failed %d)\n",
			insights.TotalTransactions, insights.SuccessfulTransactions, insights.FailedTransactions)
		fmt.Fprintf(&b, "  - Total Fees Paid: $%.2f (average $%.4f)\n",
			insights.TotalFeesPaid, insights.AverageFeePerTransaction)
		fmt.Fprintf(&b, "  - Recent Activity (7 days): %d transactions\n", insights.RecentActivity)
		if insights.MostUsedOperationType != "" {
			fmt.Fprintf(&b, "  - Most Used Operation: %s\n", insights.MostUsedOperationType)
		}
		fmt.Fprintf(&b, "  - Risk Level: %s\n", insights.TradingPatterns.RiskLevel)
		for i, token := range insights.TopTokensTraded {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  - Top Traded Token %d: %s, %d trades, $%.2f total\n",
				i+1, token.Symbol, token.Count, token.TotalValue)
		}
	}

	b.WriteString("\nUse ALL this data to create a comprehensive, specific roast. Make sure the JSON is valid and complete.")
	return b.String()
}

var jsonFencePattern = regexp.MustCompile("```(?:json)?\\s*\\n([\\s\\S]*?)\\n```")

// parseGeneratedRoast extracts and validates the model's JSON reply. Fields
// with the wrong type are replaced with safe defaults; only an unparseable
// reply is an error.
func parseGeneratedRoast(reply string) (*types.RoastResult, error) {
	payload := reply
	if match := jsonFencePattern.FindStringSubmatch(reply); match != nil {
		payload = match[1]
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing model reply: %w", err)
	}

	result := &types.RoastResult{
		MainRoast:        "The model couldn't roast you properly. Maybe your wallet is too boring.",
		SubRoasts:        []string{},
		Personality:      "Mysterious Trader",
		PersonalityEmoji: "🤔",
		Badge:            "Crypto Enigma",
		Score:            50,
	}

	if s, ok := parsed["mainRoast"].(string); ok {
		result.MainRoast = s
	}
	if list, ok := parsed["subRoasts"].([]interface{}); ok {
		for _, entry := range list {
			if s, ok := entry.(string); ok {
				result.SubRoasts = append(result.SubRoasts, s)
			}
		}
	}
	if s, ok := parsed["personality"].(string); ok {
		result.Personality = s
	}
	if s, ok := parsed["personalityEmoji"].(string); ok {
		result.PersonalityEmoji = s
	}
	if s, ok := parsed["badge"].(string); ok {
		result.Badge = s
	}
	if score, ok := parsed["score"].(float64); ok {
		result.Score = clampScore(int(score))
	}

	return result, nil
}
