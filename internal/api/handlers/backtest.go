package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/scoring"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// BacktestHandler handles backtest API endpoints
// ⭐ SSOT: 백테스트 API 핸들러는 이 구조체에서만
type BacktestHandler struct {
	service   *scoring.Service
	simulator *backtest.PortfolioSimulator
	logger    *logger.Logger
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(service *scoring.Service, simulator *backtest.PortfolioSimulator, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		service:   service,
		simulator: simulator,
		logger:    log,
	}
}

// RunThreshold replays the score history of one symbol and measures a
// buy-above-threshold strategy against it
// GET /api/backtest/{symbol}?threshold=70&days=180&region=us
func (h *BacktestHandler) RunThreshold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	threshold := queryFloat(r, "threshold", 70)
	days := queryInt(r, "days", 180)
	regionName := r.URL.Query().Get("region")
	if regionName == "" {
		regionName = "us"
	}

	series, err := h.service.ScoredHistory(ctx, symbol, regionName, days)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to build score history")
		respondError(w, http.StatusNotFound, "Insufficient history for symbol")
		return
	}

	result := backtest.Simulate(series, threshold)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":    symbol,
		"threshold": threshold,
		"days":      len(series),
		"result":    result,
	})
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
