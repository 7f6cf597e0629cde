package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/hqs/backend/internal/api/handlers"
	"github.com/wonny/hqs/backend/pkg/database"
	"github.com/wonny/hqs/backend/pkg/logger"
	"github.com/wonny/hqs/backend/pkg/redis"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Score       *handlers.ScoreHandler
	Quote       *handlers.QuoteHandler
	Portfolio   *handlers.PortfolioHandler
	Backtest    *handlers.BacktestHandler
	Calibration *handlers.CalibrationHandler
	Stream      *handlers.StreamHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, db *database.DB, cache *redis.Client, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(db, cache)).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Scoring
	api.HandleFunc("/score/{symbol}", h.Score.GetScore).Methods("GET")

	// Quotes
	api.HandleFunc("/quote/{symbol}", h.Quote.GetQuote).Methods("GET")
	api.HandleFunc("/quotes/{region}", h.Quote.GetRegionQuotes).Methods("GET")

	// Portfolio
	api.HandleFunc("/portfolio/score", h.Portfolio.ScorePortfolio).Methods("POST")
	api.HandleFunc("/portfolio/backtest", h.Portfolio.BacktestPortfolio).Methods("POST")

	// Backtest
	api.HandleFunc("/backtest/{symbol}", h.Backtest.RunThreshold).Methods("GET")

	// Calibration
	api.HandleFunc("/calibration/run", h.Calibration.Run).Methods("POST")
	api.HandleFunc("/calibration/weights/{regime}", h.Calibration.GetWeights).Methods("GET")

	// Streaming
	api.HandleFunc("/stream/scores", h.Stream.StreamScores).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health plus dependency status
func healthCheckHandler(db *database.DB, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		dbStatus := "disabled"
		if db != nil {
			dbStatus = "ok"
			if err := db.Ping(ctx); err != nil {
				dbStatus = "down"
			}
		}

		redisStatus := "disabled"
		if cache != nil && cache.Enabled() {
			redisStatus = "ok"
			if err := cache.Redis().Ping(ctx).Err(); err != nil {
				redisStatus = "down"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "ok",
			"service": "hqs-api",
			"db":      dbStatus,
			"redis":   redisStatus,
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
