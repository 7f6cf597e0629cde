package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hqs",
	Short: "HQS - 글로벌 주식 품질 점수 엔진",
	Long: `HQS Unified CLI

Go 기반 주식 품질 점수(HQS) 엔진.
시세 정규화부터 점수 산출, 백테스트, 가중치 캘리브레이션까지.

Usage:
  go run ./cmd/hqs [command]

Examples:
  go run ./cmd/hqs api
  go run ./cmd/hqs score AAPL
  go run ./cmd/hqs backtest AAPL --threshold 70
  go run ./cmd/hqs scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
