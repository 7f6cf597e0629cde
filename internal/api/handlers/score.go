package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/scoring"
	"github.com/wonny/hqs/backend/pkg/logger"
	"github.com/wonny/hqs/backend/pkg/redis"
)

// ScoreHandler handles HQS scoring API endpoints
// ⭐ SSOT: 스코어 API 핸들러는 이 구조체에서만
type ScoreHandler struct {
	service *scoring.Service
	cache   *redis.Cache
	logger  *logger.Logger
}

// NewScoreHandler creates a new score handler. cache may be nil.
func NewScoreHandler(service *scoring.Service, cache *redis.Cache, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		cache:   cache,
		logger:  log,
	}
}

// GetScore computes the HQS score for one symbol
// GET /api/score/{symbol}?region=us
func (h *ScoreHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]
	region := r.URL.Query().Get("region")
	if region == "" {
		region = "us"
	}

	if h.cache != nil {
		var cached contracts.HQSResult
		found, err := h.cache.Get(ctx, redis.ScoreKey(symbol), &cached)
		if err != nil {
			h.logger.WithError(err).WithField("symbol", symbol).Warn("Score cache lookup failed")
		}
		if found {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := h.service.Score(ctx, symbol, region)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to compute score")
		respondError(w, http.StatusNotFound, "No quote data available for symbol")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, redis.ScoreKey(symbol), result, redis.TTLShort); err != nil {
			h.logger.WithError(err).WithField("symbol", symbol).Warn("Score cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, result)
}
