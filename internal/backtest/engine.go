package backtest

import (
	"math"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// DefaultScoreThreshold is the entry score for the notional trading rule.
const DefaultScoreThreshold = 70

// Simulate replays the score-threshold trading rule over a historical
// series: a notional trade is entered on every day whose score meets the
// threshold, held for one day. Results are percentages rounded to the
// nearest integer. An empty or single-point series yields the zero result.
// ⭐ SSOT: 스코어 임계값 백테스트는 여기서만
func Simulate(series []contracts.ScoredPrice, threshold float64) contracts.ThresholdResult {
	var result contracts.ThresholdResult

	for i := 0; i+1 < len(series); i++ {
		today := series[i]
		if today.Score < threshold || today.Price == 0 {
			continue
		}

		ret := (series[i+1].Price - today.Price) / today.Price * 100
		result.Trades++
		result.TotalReturn += ret
		if ret > 0 {
			result.WinRate++ // win count for now, converted below
		}
	}

	if result.Trades > 0 {
		result.WinRate = math.Round(result.WinRate / float64(result.Trades) * 100)
		result.AverageReturn = math.Round(result.TotalReturn / float64(result.Trades))
	}
	result.TotalReturn = math.Round(result.TotalReturn)

	return result
}

// PerformanceStats converts a threshold result into the recent-performance
// summary the weight adjuster consumes.
func PerformanceStats(r contracts.ThresholdResult) contracts.PerformanceStats {
	return contracts.PerformanceStats{
		Trades:        r.Trades,
		WinRate:       r.WinRate,
		AverageReturn: r.AverageReturn,
	}
}
