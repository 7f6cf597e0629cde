package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/hqs/backend/internal/contracts"
)

func series(scores []float64, prices []float64) []contracts.ScoredPrice {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]contracts.ScoredPrice, len(prices))
	for i := range prices {
		out[i] = contracts.ScoredPrice{
			Date:  start.AddDate(0, 0, i),
			Price: prices[i],
			Score: scores[i],
		}
	}
	return out
}

func TestSimulate_EmptySeries(t *testing.T) {
	result := Simulate(nil, DefaultScoreThreshold)

	assert.Equal(t, 0, result.Trades)
	assert.Equal(t, 0.0, result.WinRate)
	assert.Equal(t, 0.0, result.TotalReturn)
	assert.Equal(t, 0.0, result.AverageReturn)
}

func TestSimulate_MonotonicRiseAllAboveThreshold(t *testing.T) {
	scores := []float64{80, 80, 80, 80, 80}
	prices := []float64{100, 102, 104, 106, 108}

	result := Simulate(series(scores, prices), DefaultScoreThreshold)

	assert.Equal(t, 4, result.Trades)
	assert.Equal(t, 100.0, result.WinRate)
	assert.Greater(t, result.TotalReturn, 0.0)
}

func TestSimulate_BelowThresholdNeverTrades(t *testing.T) {
	scores := []float64{60, 60, 60}
	prices := []float64{100, 110, 120}

	result := Simulate(series(scores, prices), DefaultScoreThreshold)

	assert.Equal(t, 0, result.Trades)
	assert.Equal(t, 0.0, result.TotalReturn)
}

func TestSimulate_MixedOutcomes(t *testing.T) {
	// Trades on days 0 and 2: +10% then -10% -> 2 trades, 1 win
	scores := []float64{90, 10, 90, 10}
	prices := []float64{100, 110, 110, 99}

	result := Simulate(series(scores, prices), DefaultScoreThreshold)

	assert.Equal(t, 2, result.Trades)
	assert.Equal(t, 50.0, result.WinRate)
	assert.Equal(t, 0.0, result.TotalReturn, "+10 then -10 rounds to 0")
}

func TestSimulate_ZeroPriceDayIsSkipped(t *testing.T) {
	scores := []float64{90, 90, 90}
	prices := []float64{0, 100, 110}

	result := Simulate(series(scores, prices), DefaultScoreThreshold)

	assert.Equal(t, 1, result.Trades)
	assert.Equal(t, 100.0, result.WinRate)
}

func TestPerformanceStats(t *testing.T) {
	stats := PerformanceStats(contracts.ThresholdResult{
		Trades:        10,
		WinRate:       70,
		TotalReturn:   25,
		AverageReturn: 3,
	})

	assert.Equal(t, 10, stats.Trades)
	assert.Equal(t, 70.0, stats.WinRate)
	assert.Equal(t, 3.0, stats.AverageReturn)
}
