package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [symbol...]",
	Short: "HQS 점수 산출",
	Long: `하나 이상의 종목에 대해 HQS 점수를 산출합니다.

이 명령어는:
- 시세 조회 (지역별 프로바이더 체인)
- 배당/재무/가격 이력 수집
- 블렌딩 후 최종 점수 출력

Example:
  go run ./cmd/hqs score AAPL
  go run ./cmd/hqs score AAPL MSFT NVDA --region us
  go run ./cmd/hqs score SAP --region eu --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

var (
	scoreRegion string
	scoreJSON   bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	// Flags
	scoreCmd.Flags().StringVar(&scoreRegion, "region", "us", "시장 지역 (us|eu|asia)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "JSON 출력")
}

func runScore(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	failed := 0
	for _, symbol := range args {
		result, err := d.service.Score(ctx, symbol, scoreRegion)
		if err != nil {
			d.logger.WithError(err).WithField("symbol", symbol).Error("Scoring failed")
			fmt.Fprintf(os.Stderr, "❌ %s: no quote data\n", symbol)
			failed++
			continue
		}

		if scoreJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			enc.Encode(result)
			continue
		}

		fmt.Printf("%-8s %3d  %-10s %-10s %s\n",
			result.Symbol, result.HQSScore, result.Rating, result.Decision, result.AIInsight)
	}

	if failed == len(args) {
		return fmt.Errorf("no symbols could be scored")
	}
	return nil
}
