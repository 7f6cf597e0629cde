package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// quarterly builds an ascending quarterly dividend history from amounts.
func quarterly(start time.Time, amounts ...float64) []contracts.DividendRecord {
	history := make([]contracts.DividendRecord, len(amounts))
	for i, amt := range amounts {
		history[i] = contracts.DividendRecord{
			ExDividendDate: start.AddDate(0, 3*i, 0),
			CashAmount:     amt,
		}
	}
	return history
}

func TestDividendScore_InsufficientHistory(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 20, DividendScore(nil))
	assert.Equal(t, 20, DividendScore(quarterly(start, 0.5)))
	assert.Equal(t, 20, DividendScore(quarterly(start, 0.5, 0.5, 0.5, 0.5)))
}

func TestDividendScore_ZeroBaseline(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	// Oldest reference payment of 0 has no defined growth rate
	assert.Equal(t, 30, DividendScore(quarterly(start, 0, 0.1, 0.2, 0.3, 0.4)))
}

func TestDividendScore_Saturated(t *testing.T) {
	// 120 quarterly payments over ~30 years, steadily rising, no cuts,
	// >10% growth over the 20-period lookback, 4 payments a year.
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	amounts := make([]float64, 120)
	for i := range amounts {
		amounts[i] = 0.10 + 0.01*float64(i)
	}

	assert.Equal(t, 100, DividendScore(quarterly(start, amounts...)))
}

func TestDividendScore_CutsDegradeStability(t *testing.T) {
	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same shape except for cuts
	steady := quarterly(start, 0.50, 0.52, 0.54, 0.56, 0.58, 0.60, 0.62)
	withCut := quarterly(start, 0.50, 0.52, 0.48, 0.56, 0.58, 0.60, 0.62)

	assert.Greater(t, DividendScore(steady), DividendScore(withCut))
}

func TestCountCuts(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, countCuts(quarterly(start, 1, 1, 2, 3)))
	assert.Equal(t, 1, countCuts(quarterly(start, 1, 0.5, 2, 3)))
	assert.Equal(t, 3, countCuts(quarterly(start, 3, 2, 1, 0.5)))
}

func TestGrowthScoreBands(t *testing.T) {
	assert.Equal(t, 100.0, growthScore(0.11))
	assert.Equal(t, 80.0, growthScore(0.06))
	assert.Equal(t, 60.0, growthScore(0.02))
	assert.Equal(t, 40.0, growthScore(0.005))
	assert.Equal(t, 10.0, growthScore(0.0))
	assert.Equal(t, 10.0, growthScore(-0.2))
}

func TestHistoryScoreBands(t *testing.T) {
	assert.Equal(t, 100.0, historyScore(26))
	assert.Equal(t, 80.0, historyScore(16))
	assert.Equal(t, 60.0, historyScore(11))
	assert.Equal(t, 40.0, historyScore(6))
	assert.Equal(t, 20.0, historyScore(3))
}
