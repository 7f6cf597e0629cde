package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/hqs/backend/internal/scheduler"
	"github.com/wonny/hqs/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

등록되는 작업:
- factor_snapshot: 평일 22시 UTC (팩터 샘플 수집)
- weight_calibration: 평일 23시 UTC (가중치 재산출)

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/hqs scheduler start
  go run ./cmd/hqs scheduler run factor_snapshot`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long:  `스케줄러 데몬을 시작합니다. Ctrl+C로 종료합니다.`,
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildScheduler wires the scheduler with every job registered
func buildScheduler(d *deps) (*scheduler.Scheduler, error) {
	repo, err := d.factorRepo()
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(d.logger)

	snapshotJob := jobs.NewSnapshotJob(
		d.service,
		d.detector,
		repo,
		d.cfg.Scoring.TrackedSymbols,
		d.cfg.Scoring.BenchmarkSymbol,
		d.logger,
	)
	if err := sched.AddJob(snapshotJob); err != nil {
		return nil, fmt.Errorf("add snapshot job: %w", err)
	}

	calibrationJob := jobs.NewCalibrationJob(
		d.calibrator,
		repo,
		d.service,
		d.cfg.Scoring.TrackedSymbols,
		"us",
		d.logger,
	)
	if err := sched.AddJob(calibrationJob); err != nil {
		return nil, fmt.Errorf("add calibration job: %w", err)
	}

	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== HQS Scheduler ===")

	d, err := buildDeps(true)
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := buildScheduler(d)
	if err != nil {
		return err
	}

	sched.Start()
	fmt.Println("\n✅ Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(true)
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := buildScheduler(d)
	if err != nil {
		return err
	}

	fmt.Println("Registered jobs:")
	for _, job := range sched.Jobs() {
		fmt.Printf("  %-20s %s\n", job.Name(), job.Schedule())
	}
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	d, err := buildDeps(true)
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := buildScheduler(d)
	if err != nil {
		return err
	}

	fmt.Printf("Running job %s...\n", jobName)
	if err := sched.RunJobAndWait(jobName); err != nil {
		return fmt.Errorf("job %s failed: %w", jobName, err)
	}

	fmt.Println("✅ Job complete")
	return nil
}
