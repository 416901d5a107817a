package adapter

import "strconv"

// valueExtractor is one strategy for reading the portfolio total out of the
// /portfolio payload. Strategies are pure and tried in declaration order;
// the first one that succeeds wins.
type valueExtractor struct {
	name    string
	extract func(attrs *zerionPortfolioAttributes) (float64, bool)
}

var valueExtractors = []valueExtractor{
	{
		name: "total_balance",
		extract: func(attrs *zerionPortfolioAttributes) (float64, bool) {
			if attrs.TotalBalance == "" {
				return 0, false
			}
			value, err := strconv.ParseFloat(attrs.TotalBalance, 64)
			if err != nil {
				return 0, false
			}
			return value, true
		},
	},
	{
		name: "total.quantity",
		extract: func(attrs *zerionPortfolioAttributes) (float64, bool) {
			if attrs.Total == nil || attrs.Total.Quantity == "" {
				return 0, false
			}
			value, err := strconv.ParseFloat(attrs.Total.Quantity, 64)
			if err != nil {
				return 0, false
			}
			return value, true
		},
	},
	{
		name: "total.value",
		extract: func(attrs *zerionPortfolioAttributes) (float64, bool) {
			if attrs.Total == nil || attrs.Total.Value == 0 {
				return 0, false
			}
			return attrs.Total.Value, true
		},
	},
	{
		name: "distribution_sum",
		extract: func(attrs *zerionPortfolioAttributes) (float64, bool) {
			if attrs.PositionsDistributionByType == nil {
				return 0, false
			}
			d := attrs.PositionsDistributionByType
			return d.Wallet + d.Staked + d.Deposited, true
		},
	},
}

// extractPortfolioValue resolves the portfolio total from whichever shape
// the payload carries. A payload matching no strategy yields 0.
func extractPortfolioValue(attrs *zerionPortfolioAttributes) float64 {
	for _, extractor := range valueExtractors {
		if value, ok := extractor.extract(attrs); ok {
			return value
		}
	}
	return 0
}
