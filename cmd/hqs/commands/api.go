package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hqs/backend/internal/api"
	"github.com/wonny/hqs/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- HQS 점수 및 시세 엔드포인트 제공
- 포트폴리오 점수/백테스트 엔드포인트 제공
- 웹소켓 점수 스트리밍 제공

Endpoints:
  GET  /health                           - Health check
  GET  /api/score/{symbol}               - HQS 점수 조회
  GET  /api/quote/{symbol}               - 정규화 시세 조회
  GET  /api/quotes/{region}              - 지역 시세 일괄 조회
  POST /api/portfolio/score              - 포트폴리오 점수
  POST /api/portfolio/backtest           - 포트폴리오 백테스트
  GET  /api/backtest/{symbol}            - 임계값 백테스트
  POST /api/calibration/run              - 가중치 캘리브레이션 실행
  GET  /api/calibration/weights/{regime} - 국면별 가중치 조회
  GET  /api/stream/scores                - 점수 스트리밍 (websocket)

Example:
  go run ./cmd/hqs api
  go run ./cmd/hqs api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: 설정값)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== HQS API Server ===")

	d, err := buildDeps(true)
	if err != nil {
		return err
	}
	defer d.close()

	// Override port if flag is set
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	log := d.logger

	repo, err := d.factorRepo()
	if err != nil {
		return err
	}

	h := api.Handlers{
		Score:       handlers.NewScoreHandler(d.service, d.cache, log),
		Quote:       handlers.NewQuoteHandler(d.dispatcher, log),
		Portfolio:   handlers.NewPortfolioHandler(d.aggregator, d.dispatcher, d.simulator, log),
		Backtest:    handlers.NewBacktestHandler(d.service, d.simulator, log),
		Calibration: handlers.NewCalibrationHandler(d.calibrator, repo, d.service, d.cfg.Scoring.TrackedSymbols, "us", log),
		Stream:      handlers.NewStreamHandler(d.service, log),
	}

	router := api.NewRouter(h, d.db, d.redis, log)
	server := api.New(d.cfg, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
