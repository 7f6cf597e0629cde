package backtest

import (
	"context"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// Days of score history replayed when measuring realized performance.
const performanceLookbackDays = 90

// ScoreHistorian replays the blended score over a historical close
// series. *scoring.Service satisfies this.
type ScoreHistorian interface {
	ScoredHistory(ctx context.Context, symbol, region string, days int) ([]contracts.ScoredPrice, error)
}

// MeasurePerformance replays the threshold rule over every tracked symbol
// and pools the per-symbol results into one realized-performance summary,
// weighting win rate and average return by trade count. Failed symbols
// are skipped; with no tradable history the zero value is returned.
// ⭐ SSOT: 실현 성과 집계는 여기서만
func MeasurePerformance(ctx context.Context, histories ScoreHistorian, symbols []string, regionName string, threshold float64, log *logger.Logger) contracts.PerformanceStats {
	var pooled contracts.PerformanceStats
	if histories == nil {
		return pooled
	}

	var winSum, retSum float64
	for _, symbol := range symbols {
		series, err := histories.ScoredHistory(ctx, symbol, regionName, performanceLookbackDays)
		if err != nil {
			log.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol in performance measurement")
			continue
		}

		stats := PerformanceStats(Simulate(series, threshold))
		if stats.Trades == 0 {
			continue
		}
		pooled.Trades += stats.Trades
		winSum += stats.WinRate * float64(stats.Trades)
		retSum += stats.AverageReturn * float64(stats.Trades)
	}

	if pooled.Trades > 0 {
		pooled.WinRate = winSum / float64(pooled.Trades)
		pooled.AverageReturn = retSum / float64(pooled.Trades)
	}
	return pooled
}
