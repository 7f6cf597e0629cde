package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/database"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "시스템 상태 점검",
	Long: `의존 시스템과 데이터 소스 상태를 점검합니다.

점검 항목:
- Database 연결
- Redis 연결
- 시세 프로바이더 (벤치마크 심볼 조회)
- 현재 시장 국면

Example:
  go run ./cmd/hqs status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== HQS Status ===")

	d, err := buildDeps(false)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Database (optional here, report instead of failing)
	if db, err := database.New(d.cfg); err != nil {
		fmt.Printf("Database:   ❌ %v\n", err)
	} else {
		if err := db.Ping(ctx); err != nil {
			fmt.Printf("Database:   ❌ %v\n", err)
		} else {
			fmt.Println("Database:   ✅ connected")
		}
		db.Close()
	}

	// Redis
	if d.redis == nil {
		fmt.Println("Redis:      ⚪ disabled")
	} else if err := d.redis.Redis().Ping(ctx).Err(); err != nil {
		fmt.Printf("Redis:      ❌ %v\n", err)
	} else {
		fmt.Println("Redis:      ✅ connected")
	}

	// Quote providers, checked against the benchmark symbol
	benchmark := d.cfg.Scoring.BenchmarkSymbol
	if result, err := d.dispatcher.GetQuote(ctx, benchmark, "us"); err != nil {
		fmt.Printf("Providers:  ❌ %v\n", err)
	} else {
		fmt.Printf("Providers:  ✅ %s %.2f (%s)\n",
			benchmark, contracts.Num(result.Quote.Price), result.Quote.Source)
	}

	// Market phase
	phase := d.detector.DetectPhase(ctx)
	fmt.Printf("Phase:      %s\n", phase)

	return nil
}
