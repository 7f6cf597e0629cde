package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/calibration"
)

// calibrateCmd represents the calibrate command
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "팩터 가중치 캘리브레이션",
	Long: `저장된 팩터 샘플 이력으로 국면별 가중치를 재산출합니다.

이 명령어는:
- DB에서 팩터 샘플 이력 로드
- 국면별 상관계수 기반 가중치 산출
- 가중치 스냅샷 저장

Example:
  go run ./cmd/hqs calibrate
  go run ./cmd/hqs calibrate --dry-run`,
	RunE: runCalibrate,
}

var (
	calibrateDryRun bool
	calibrateLimit  int
)

func init() {
	rootCmd.AddCommand(calibrateCmd)

	// Flags
	calibrateCmd.Flags().BoolVar(&calibrateDryRun, "dry-run", false, "저장 없이 결과만 출력")
	calibrateCmd.Flags().IntVar(&calibrateLimit, "limit", 1000, "로드할 샘플 수")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(true)
	if err != nil {
		return err
	}
	defer d.close()

	repo, err := d.factorRepo()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	history, err := repo.LoadHistory(ctx, calibrateLimit)
	if err != nil {
		return fmt.Errorf("load factor history: %w", err)
	}

	fmt.Printf("Loaded %d factor samples\n", len(history))

	weights := d.calibrator.CalibrateFactorWeights(history)
	if weights == nil {
		fmt.Println("Not enough history to calibrate")
		return nil
	}

	perf := backtest.MeasurePerformance(ctx, d.service, d.cfg.Scoring.TrackedSymbols, "us", backtest.DefaultScoreThreshold, d.logger)
	if perf.Trades > 0 {
		fmt.Printf("Realized performance: %d trades, %.0f%% win rate, %+.1f%% avg return\n", perf.Trades, perf.WinRate, perf.AverageReturn)
	} else {
		fmt.Println("No realized performance available, skipping weight adjustment")
	}

	for regime, vector := range weights {
		if perf.Trades > 0 {
			vector = calibration.AdjustWeights(vector, perf)
		}
		fmt.Printf("\n[%s]\n", regime)
		for factor, w := range vector {
			fmt.Printf("  %-12s %+.4f\n", factor, w)
		}

		if !calibrateDryRun {
			if err := repo.SaveWeights(ctx, regime, vector, perf); err != nil {
				return fmt.Errorf("save weights for %s: %w", regime, err)
			}
		}
	}

	if calibrateDryRun {
		fmt.Println("\nDry run, nothing saved")
	} else {
		fmt.Println("\n✅ Weight snapshots saved")
	}
	return nil
}
