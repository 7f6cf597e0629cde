package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/scoring"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// SnapshotJob records one factor sample per tracked symbol after the US
// close, feeding the calibration history
// ⭐ SSOT: 팩터 샘플 수집 스케줄은 이 Job에서만
type SnapshotJob struct {
	service   *scoring.Service
	detector  contracts.PhaseDetector
	repo      contracts.FactorRepository
	symbols   []string
	benchmark string
	logger    *logger.Logger
}

// NewSnapshotJob creates a new factor snapshot job
func NewSnapshotJob(service *scoring.Service, detector contracts.PhaseDetector, repo contracts.FactorRepository, symbols []string, benchmark string, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		service:   service,
		detector:  detector,
		repo:      repo,
		symbols:   symbols,
		benchmark: benchmark,
		logger:    log,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "factor_snapshot"
}

// Schedule returns the cron schedule (10 PM UTC, after the US close)
func (j *SnapshotJob) Schedule() string {
	return "0 0 22 * * 1-5" // weekdays only (with seconds)
}

// Run records one sample per symbol. A failed symbol is logged and
// skipped; the job only fails when nothing could be sampled.
func (j *SnapshotJob) Run(ctx context.Context) error {
	j.logger.WithField("symbols", len(j.symbols)).Info("Starting factor snapshot")

	phase := j.detector.DetectPhase(ctx)

	saved := 0
	for _, symbol := range j.symbols {
		sample, err := j.service.BuildFactorSample(ctx, symbol, j.benchmark, phase)
		if err != nil {
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol in factor snapshot")
			continue
		}

		if err := j.repo.SaveSample(ctx, sample); err != nil {
			j.logger.WithError(err).WithField("symbol", symbol).Error("Failed to save factor sample")
			continue
		}
		saved++
	}

	if saved == 0 && len(j.symbols) > 0 {
		return fmt.Errorf("factor snapshot saved no samples")
	}

	j.logger.WithFields(map[string]interface{}{
		"phase": string(phase),
		"saved": saved,
		"total": len(j.symbols),
	}).Info("Factor snapshot complete")
	return nil
}
