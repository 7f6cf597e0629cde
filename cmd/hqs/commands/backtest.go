package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/contracts"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest [symbol]",
	Short: "임계값 백테스트 실행",
	Long: `점수 이력을 재현해 임계값 전략을 백테스트합니다.

전략: 당일 점수가 임계값 이상이면 다음 날까지 보유.

Example:
  go run ./cmd/hqs backtest AAPL
  go run ./cmd/hqs backtest AAPL --threshold 80 --days 250`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktest,
}

// portfolioBacktestCmd simulates a whole portfolio instead of one symbol
var portfolioBacktestCmd = &cobra.Command{
	Use:   "portfolio [symbol:weight...]",
	Short: "포트폴리오 백테스트 실행",
	Long: `가중 포트폴리오의 가치 곡선을 시뮬레이션합니다.

Example:
  go run ./cmd/hqs backtest portfolio AAPL MSFT
  go run ./cmd/hqs backtest portfolio AAPL:3 MSFT:1 --days 250 --benchmark SPY`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPortfolioBacktest,
}

var (
	backtestThreshold float64
	backtestDays      int
	backtestRegion    string
	backtestBenchmark string
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(portfolioBacktestCmd)

	// Flags
	backtestCmd.PersistentFlags().IntVar(&backtestDays, "days", 180, "백테스트 기간 (일)")
	backtestCmd.Flags().Float64Var(&backtestThreshold, "threshold", 0, "매수 임계값 (기본: 설정값)")
	backtestCmd.Flags().StringVar(&backtestRegion, "region", "us", "시장 지역")
	portfolioBacktestCmd.Flags().StringVar(&backtestBenchmark, "benchmark", "", "벤치마크 심볼 (기본: 설정값)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	d, err := buildDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	threshold := backtestThreshold
	if threshold <= 0 {
		threshold = d.cfg.Scoring.ScoreThreshold
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	series, err := d.service.ScoredHistory(ctx, symbol, backtestRegion, backtestDays)
	if err != nil {
		return fmt.Errorf("build score history: %w", err)
	}

	result := backtest.Simulate(series, threshold)

	fmt.Printf("=== Threshold Backtest: %s ===\n", symbol)
	fmt.Printf("Days:           %d\n", len(series))
	fmt.Printf("Threshold:      %.0f\n", threshold)
	fmt.Printf("Trades:         %d\n", result.Trades)
	fmt.Printf("Win rate:       %.0f%%\n", result.WinRate)
	fmt.Printf("Avg return:     %.0f%%\n", result.AverageReturn)
	fmt.Printf("Total return:   %.0f%%\n", result.TotalReturn)
	return nil
}

func runPortfolioBacktest(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	positions, err := parsePositions(args)
	if err != nil {
		return err
	}

	benchmark := backtestBenchmark
	if benchmark == "" {
		benchmark = d.cfg.Scoring.BenchmarkSymbol
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := d.simulator.Simulate(ctx, positions, backtestDays, benchmark)
	if result == nil {
		return fmt.Errorf("no overlapping price history for portfolio")
	}

	fmt.Println("=== Portfolio Backtest ===")
	fmt.Printf("Days:           %d\n", result.Days)
	fmt.Printf("Total return:   %.2f%%\n", result.TotalReturn)
	fmt.Printf("Max drawdown:   %.2f%%\n", result.MaxDrawdown)
	fmt.Printf("Sharpe (ann.):  %.2f\n", result.Sharpe)
	if result.Benchmark != "" {
		fmt.Printf("Benchmark:      %s (%.2f%%)\n", result.Benchmark, result.TotalReturn-result.Alpha)
		fmt.Printf("Alpha:          %.2f%%\n", result.Alpha)
	}
	return nil
}

// parsePositions parses symbol or symbol:weight arguments
func parsePositions(args []string) ([]contracts.Position, error) {
	positions := make([]contracts.Position, 0, len(args))
	for _, arg := range args {
		symbol := arg
		weight := 0.0
		if i := strings.IndexByte(arg, ':'); i >= 0 {
			symbol = arg[:i]
			if _, err := fmt.Sscanf(arg[i+1:], "%f", &weight); err != nil || weight <= 0 {
				return nil, fmt.Errorf("invalid weight in %q", arg)
			}
		}
		if symbol == "" {
			return nil, fmt.Errorf("empty symbol in %q", arg)
		}
		positions = append(positions, contracts.Position{Symbol: symbol, Weight: weight})
	}
	return positions, nil
}
