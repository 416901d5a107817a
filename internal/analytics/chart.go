// Package analytics derives descriptive statistics from wallet time series
// and transaction history. All functions are pure: they never fail on
// malformed-but-present data and degrade to neutral outputs when the input
// is too small to analyze.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/wallet-roaster/internal/types"
)

// Neutral placeholder used when a series is too short to analyze
const insufficientData = "Not enough data"

// DailyChange is the percentage move between two adjacent chart points
type DailyChange struct {
	Change float64   // Percent change from the previous point
	Date   time.Time // Date of the later point
	Value  float64   // Value at the later point
}

// ChartInsights holds derived statistics over a portfolio value series
type ChartInsights struct {
	BestDayGain            float64 `json:"bestDayGain"`
	BestDayDate            string  `json:"bestDayDate"`
	WorstDayLoss           float64 `json:"worstDayLoss"`
	WorstDayDate           string  `json:"worstDayDate"`
	VolatilityScore        string  `json:"volatilityScore"`
	VolatilityDescription  string  `json:"volatilityDescription"`
	MaxDrawdown            float64 `json:"maxDrawdown"`
	MonthlyGrowthRate      float64 `json:"monthlyGrowthRate"`
	GrowthDescription      string  `json:"growthDescription"`
	ConsistencyScore       int     `json:"consistencyScore"`
	ConsistencyDescription string  `json:"consistencyDescription"`
	LongestWinStreak       int     `json:"longestWinStreak"`
	LongestLossStreak      int     `json:"longestLossStreak"`
	BestMonth              string  `json:"bestMonth"`
}

// neutralInsights is returned for series with fewer than two points
func neutralInsights() ChartInsights {
	return ChartInsights{
		BestDayDate:            "N/A",
		WorstDayDate:           "N/A",
		VolatilityScore:        "Low",
		VolatilityDescription:  insufficientData,
		GrowthDescription:      insufficientData,
		ConsistencyDescription: insufficientData,
		BestMonth:              "N/A",
	}
}

// Summarize computes the chart-level summary statistics for a value series.
// Volatility here is the population standard deviation of the raw point
// values, not of returns.
func Summarize(points []types.ChartDataPoint) *types.ChartSummary {
	summary := &types.ChartSummary{Points: points}
	if len(points) == 0 {
		return summary
	}

	first := points[0].Value
	last := points[len(points)-1].Value

	highest := points[0].Value
	lowest := points[0].Value
	sum := 0.0
	for _, p := range points {
		if p.Value > highest {
			highest = p.Value
		}
		if p.Value < lowest {
			lowest = p.Value
		}
		sum += p.Value
	}

	mean := sum / float64(len(points))
	variance := 0.0
	for _, p := range points {
		diff := p.Value - mean
		variance += diff * diff
	}
	variance /= float64(len(points))

	summary.HighestValue = highest
	summary.LowestValue = lowest
	summary.TotalChange = last - first
	if first != 0 {
		summary.TotalChangePercent = (last - first) / first * 100
	}
	summary.Volatility = math.Sqrt(variance)

	return summary
}

// DailyChanges computes the per-interval percentage change series. Entries
// whose prior value is exactly zero are skipped: a percentage move from
// nothing is undefined and must not leak NaN into downstream statistics.
func DailyChanges(points []types.ChartDataPoint) []DailyChange {
	if len(points) < 2 {
		return nil
	}

	changes := make([]DailyChange, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Value
		if prev == 0 {
			continue
		}
		changes = append(changes, DailyChange{
			Change: (points[i].Value - prev) / prev * 100,
			Date:   time.Unix(points[i].Timestamp, 0).UTC(),
			Value:  points[i].Value,
		})
	}
	return changes
}

// ComputeChartInsights derives the full insight set from a value series.
// A series with fewer than two points yields neutral placeholders.
func ComputeChartInsights(points []types.ChartDataPoint) ChartInsights {
	if len(points) < 2 {
		return neutralInsights()
	}

	insights := neutralInsights()
	changes := DailyChanges(points)

	if len(changes) > 0 {
		best := changes[0]
		worst := changes[0]
		for _, day := range changes[1:] {
			// First occurrence wins ties
			if day.Change > best.Change {
				best = day
			}
			if day.Change < worst.Change {
				worst = day
			}
		}
		insights.BestDayGain = best.Change
		insights.BestDayDate = best.Date.Format("Jan 2")
		insights.WorstDayLoss = worst.Change
		insights.WorstDayDate = worst.Date.Format("Jan 2")

		insights.VolatilityScore, insights.VolatilityDescription = classifyVolatility(changes)
		insights.ConsistencyScore, insights.ConsistencyDescription = consistency(changes)
		insights.LongestWinStreak, insights.LongestLossStreak = streaks(changes)
		insights.BestMonth = bestMonth(changes)
	}

	insights.MaxDrawdown = MaxDrawdown(points)
	insights.MonthlyGrowthRate, insights.GrowthDescription = monthlyGrowth(points)

	return insights
}

// classifyVolatility bands the population standard deviation of the daily
// percentage changes
func classifyVolatility(changes []DailyChange) (string, string) {
	mean := 0.0
	for _, c := range changes {
		mean += c.Change
	}
	mean /= float64(len(changes))

	variance := 0.0
	for _, c := range changes {
		diff := c.Change - mean
		variance += diff * diff
	}
	variance /= float64(len(changes))
	stdDev := math.Sqrt(variance)

	switch {
	case stdDev > 5:
		return "High", "Very volatile"
	case stdDev > 2:
		return "Medium", "Moderately volatile"
	default:
		return "Low", "Stable portfolio"
	}
}

// MaxDrawdown returns the maximum peak-to-trough decline in percent, always
// non-negative. A monotonically increasing series yields exactly 0.
func MaxDrawdown(points []types.ChartDataPoint) float64 {
	if len(points) == 0 {
		return 0
	}

	maxDrawdown := 0.0
	peak := points[0].Value
	for _, p := range points[1:] {
		if p.Value > peak {
			peak = p.Value
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - p.Value) / peak * 100
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// monthlyGrowth computes the average monthly growth rate using a flat
// 30-day month approximation, with a banded description
func monthlyGrowth(points []types.ChartDataPoint) (float64, string) {
	first := points[0]
	last := points[len(points)-1]

	rate := 0.0
	if first.Value != 0 {
		totalGrowth := (last.Value - first.Value) / first.Value * 100
		months := float64(last.Timestamp-first.Timestamp) / (30 * 24 * 60 * 60)
		if months > 0 {
			rate = totalGrowth / months
		}
	}

	switch {
	case rate > 5:
		return rate, "Explosive growth!"
	case rate > 1:
		return rate, "Strong growth"
	case rate < -1:
		return rate, "Declining portfolio"
	default:
		return rate, "Steady growth"
	}
}

// consistency scores how often the portfolio closed up, on a 0-10 scale
func consistency(changes []DailyChange) (int, string) {
	positive := 0
	for _, c := range changes {
		if c.Change > 0 {
			positive++
		}
	}
	score := int(math.Round(float64(positive) / float64(len(changes)) * 10))

	switch {
	case score < 4:
		return score, "Very inconsistent"
	case score < 6:
		return score, "Somewhat inconsistent"
	case score < 8:
		return score, "Fairly consistent"
	default:
		return score, "Very consistent"
	}
}

// streaks scans the change series for the longest runs of same-signed days.
// The first day's sign seeds the initial streak direction; the final
// in-progress streak is committed after the scan.
func streaks(changes []DailyChange) (longestWin, longestLoss int) {
	currentStreak := 0
	isWinning := changes[0].Change > 0

	commit := func() {
		if isWinning {
			if currentStreak > longestWin {
				longestWin = currentStreak
			}
		} else {
			if currentStreak > longestLoss {
				longestLoss = currentStreak
			}
		}
	}

	for _, day := range changes {
		if (day.Change > 0) == isWinning {
			currentStreak++
		} else {
			commit()
			currentStreak = 1
			isWinning = day.Change > 0
		}
	}
	commit()

	return longestWin, longestLoss
}

// bestMonth groups daily changes by calendar month, sums the raw percent
// changes per group (not compounded) and renders the winner as "Jan 2025"
func bestMonth(changes []DailyChange) string {
	type monthKey struct {
		year  int
		month time.Month
	}

	monthly := make(map[monthKey]float64)
	order := make([]monthKey, 0)
	for _, day := range changes {
		key := monthKey{year: day.Date.Year(), month: day.Date.Month()}
		if _, seen := monthly[key]; !seen {
			order = append(order, key)
		}
		monthly[key] += day.Change
	}

	best := "N/A"
	bestGain := math.Inf(-1)
	for _, key := range order {
		if gain := monthly[key]; gain > bestGain {
			bestGain = gain
			best = fmt.Sprintf("%s %d", key.month.String()[:3], key.year)
		}
	}
	return best
}

// Axis describes "nice" Y-axis bounds for rendering a value series
type Axis struct {
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
	Step   float64    `json:"step"`
	Labels [6]float64 `json:"labels"`
}

// NiceAxis pads the raw value range by 5% on both ends, snaps the step to
// the nearest of {1,2,5,10} times its order of magnitude and produces
// floor/ceil-aligned bounds with exactly six labels.
func NiceAxis(minValue, maxValue float64) Axis {
	valueRange := maxValue - minValue
	paddedMin := math.Max(0, minValue-valueRange*0.05)
	paddedMax := maxValue + valueRange*0.05

	// A flat series has no range to divide; fall back to a unit span so the
	// step stays finite
	if paddedMax == paddedMin {
		paddedMax = paddedMin + 1
	}

	rawStep := (paddedMax - paddedMin) / 5
	magnitude := math.Pow(10, math.Floor(math.Log10(rawStep)))
	normalized := rawStep / magnitude

	var niceNormalized float64
	switch {
	case normalized <= 1:
		niceNormalized = 1
	case normalized <= 2:
		niceNormalized = 2
	case normalized <= 5:
		niceNormalized = 5
	default:
		niceNormalized = 10
	}

	step := niceNormalized * magnitude
	axis := Axis{
		Min:  math.Floor(paddedMin/step) * step,
		Max:  math.Ceil(paddedMax/step) * step,
		Step: step,
	}
	for i := 0; i <= 5; i++ {
		axis.Labels[i] = axis.Min + step*float64(i)
	}
	return axis
}
