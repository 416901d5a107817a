// Package types provides common type definitions for the wallet roaster system.
package types

import "time"

// TradingFrequency classifies how often a wallet transacts
type TradingFrequency string

const (
	// FrequencyDegen represents wallets with very high recent activity
	FrequencyDegen TradingFrequency = "degen"
	// FrequencyActive represents wallets with high recent activity
	FrequencyActive TradingFrequency = "active"
	// FrequencyModerate represents wallets with some recent activity
	FrequencyModerate TradingFrequency = "moderate"
	// FrequencyHodler represents wallets with history but little recent activity
	FrequencyHodler TradingFrequency = "hodler"
	// FrequencyGhost represents wallets with no transaction history
	FrequencyGhost TradingFrequency = "ghost"
)

// RiskLevel classifies trading risk derived from transaction failure rates
type RiskLevel string

const (
	// RiskLow represents a failure rate of 10% or less
	RiskLow RiskLevel = "low"
	// RiskMedium represents a failure rate above 10%
	RiskMedium RiskLevel = "medium"
	// RiskHigh represents a failure rate above 30%
	RiskHigh RiskLevel = "high"
)

// TransactionStatus represents upstream transaction execution status
type TransactionStatus string

const (
	// StatusConfirmed represents a successfully mined transaction
	StatusConfirmed TransactionStatus = "confirmed"
	// StatusFailed represents a failed transaction
	StatusFailed TransactionStatus = "failed"
	// StatusOther represents a non-terminal status such as pending; it
	// counts as neither a success nor a failure
	StatusOther TransactionStatus = "other"
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Holding represents a single token balance with its current valuation
type Holding struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Value     float64 `json:"value"`     // Current USD value
	Quantity  float64 `json:"quantity"`  // Token amount held
	Price     float64 `json:"price"`     // USD price per token
	Change24h float64 `json:"change24h"` // 24h price change in percent
	Verified  bool    `json:"verified"`  // Token passed upstream verification
	Icon      string  `json:"icon,omitempty"`
}

// Position is a holding extended with its custody type (wallet, staked, deposited)
type Position struct {
	Holding
	PositionType string `json:"positionType"`
}

// Distribution partitions portfolio value across custody states
type Distribution struct {
	Wallet    float64 `json:"wallet"`
	Staked    float64 `json:"staked"`
	Deposited float64 `json:"deposited"`
}

// Total returns the summed USD value across all custody states
func (d Distribution) Total() float64 {
	return d.Wallet + d.Staked + d.Deposited
}

// PnL holds profit and loss figures for a wallet
type PnL struct {
	TotalProfit        float64 `json:"totalProfit"`
	TotalProfitPercent float64 `json:"totalProfitPercent"`
	RealizedProfit     float64 `json:"realizedProfit"`
	UnrealizedProfit   float64 `json:"unrealizedProfit"`
}

// ChartDataPoint is one sampled portfolio value in a time series
type ChartDataPoint struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Value     float64 `json:"value"`     // Portfolio USD value at this point
	Date      string  `json:"date"`      // Pre-rendered date label
	Time      string  `json:"time"`      // Pre-rendered time label
}

// ChartSummary holds a value time series with derived summary statistics.
// Invariants: HighestValue/LowestValue are the max/min point values,
// TotalChange is last minus first, Volatility is the population standard
// deviation of the raw point values.
type ChartSummary struct {
	Points             []ChartDataPoint `json:"points"`
	TotalChange        float64          `json:"totalChange"`
	TotalChangePercent float64          `json:"totalChangePercent"`
	HighestValue       float64          `json:"highestValue"`
	LowestValue        float64          `json:"lowestValue"`
	Volatility         float64          `json:"volatility"`
}

// TokenTradeStats aggregates trading activity for a single token
type TokenTradeStats struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// TradingPatterns summarizes behavioral classification of a wallet's activity
type TradingPatterns struct {
	IsActiveTrader          bool      `json:"isActiveTrader"`
	RiskLevel               RiskLevel `json:"riskLevel"`
	PreferredOperationTypes []string  `json:"preferredOperationTypes"` // Top 3 by frequency
}

// TransactionInsights holds statistics derived from raw transaction history
type TransactionInsights struct {
	TotalTransactions        int               `json:"totalTransactions"`
	SuccessfulTransactions   int               `json:"successfulTransactions"`
	FailedTransactions       int               `json:"failedTransactions"`
	TotalFeesPaid            float64           `json:"totalFeesPaid"`
	AverageFeePerTransaction float64           `json:"averageFeePerTransaction"`
	MostUsedOperationType    string            `json:"mostUsedOperationType"`
	RecentActivity           int               `json:"recentActivity"` // Transactions in trailing 7 days
	TopTokensTraded          []TokenTradeStats `json:"topTokensTraded"`
	TradingPatterns          TradingPatterns   `json:"tradingPatterns"`
}

// RawTransfer is a token movement within a raw transaction
type RawTransfer struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Value     float64 `json:"value"` // USD value of the transfer
	Direction string  `json:"direction"`
}

// RawTransaction is a normalized upstream transaction record, the input to
// transaction analytics
type RawTransaction struct {
	Hash          string            `json:"hash"`
	OperationType string            `json:"operationType"`
	Status        TransactionStatus `json:"status"`
	Fee           float64           `json:"fee"` // USD fee paid
	MinedAt       time.Time         `json:"minedAt"`
	Transfers     []RawTransfer     `json:"transfers"`
}

// WalletData is the canonical wallet snapshot consumed by analytics and
// scoring. It is constructed once per roast request and never mutated.
type WalletData struct {
	Address             string               `json:"address"`
	PortfolioValue      float64              `json:"portfolioValue"`
	Distribution        Distribution         `json:"distribution"`
	TopHoldings         []Holding            `json:"topHoldings"` // Sorted descending by value
	Positions           []Position           `json:"positions"`
	TradingFrequency    TradingFrequency     `json:"tradingFrequency"`
	PnL                 PnL                  `json:"pnl"`
	TransactionInsights *TransactionInsights `json:"transactionInsights,omitempty"`
	ChartData           *ChartSummary        `json:"chartData,omitempty"`
	FetchedAt           time.Time            `json:"fetchedAt"`
}

// RoastResult is the scored commentary produced for a wallet snapshot.
// Score is always clamped to [0,100].
type RoastResult struct {
	ID               string    `json:"id"`
	MainRoast        string    `json:"mainRoast"`
	SubRoasts        []string  `json:"subRoasts"`
	Personality      string    `json:"personality"`
	PersonalityEmoji string    `json:"personalityEmoji"`
	Badge            string    `json:"badge"`
	Score            int       `json:"score"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
