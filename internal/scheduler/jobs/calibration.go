package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/calibration"
	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// CalibrationJob recalibrates factor weights nightly from the stored
// sample history
// ⭐ SSOT: 야간 캘리브레이션 스케줄은 이 Job에서만
type CalibrationJob struct {
	engine    *calibration.Engine
	repo      contracts.FactorRepository
	histories backtest.ScoreHistorian
	symbols   []string
	region    string
	logger    *logger.Logger
}

// NewCalibrationJob creates a new calibration job. histories drives the
// realized-performance pass and may be nil, which skips the adjustment.
func NewCalibrationJob(engine *calibration.Engine, repo contracts.FactorRepository, histories backtest.ScoreHistorian, symbols []string, regionName string, log *logger.Logger) *CalibrationJob {
	return &CalibrationJob{
		engine:    engine,
		repo:      repo,
		histories: histories,
		symbols:   symbols,
		region:    regionName,
		logger:    log,
	}
}

// Name returns the job name
func (j *CalibrationJob) Name() string {
	return "weight_calibration"
}

// Schedule returns the cron schedule (11 PM UTC, after the factor snapshot)
func (j *CalibrationJob) Schedule() string {
	return "0 0 23 * * 1-5" // weekdays only (with seconds)
}

// Trailing sample window loaded for the nightly pass. The engine trims
// further per regime; this only bounds the query.
const historyWindowDays = 180

// Run recalibrates and persists per-regime weight snapshots. Too little
// history is a clean no-op, not an error.
func (j *CalibrationJob) Run(ctx context.Context) error {
	j.logger.Info("Starting weight calibration")

	since := time.Now().UTC().AddDate(0, 0, -historyWindowDays)
	history, err := j.repo.LoadHistorySince(ctx, since)
	if err != nil {
		return fmt.Errorf("load factor history: %w", err)
	}

	weights := j.engine.CalibrateFactorWeights(history)
	if weights == nil {
		j.logger.WithField("samples", len(history)).Info("Not enough history to calibrate, skipping")
		return nil
	}

	perf := backtest.MeasurePerformance(ctx, j.histories, j.symbols, j.region, backtest.DefaultScoreThreshold, j.logger)

	for regime, vector := range weights {
		if perf.Trades > 0 {
			vector = calibration.AdjustWeights(vector, perf)
		}
		if err := j.repo.SaveWeights(ctx, regime, vector, perf); err != nil {
			return fmt.Errorf("save weights for %s: %w", regime, err)
		}
		j.logger.WithFields(map[string]interface{}{
			"regime":  string(regime),
			"factors": len(vector),
			"trades":  perf.Trades,
		}).Info("Weight snapshot saved")
	}

	j.logger.WithField("samples", len(history)).Info("Weight calibration complete")
	return nil
}
