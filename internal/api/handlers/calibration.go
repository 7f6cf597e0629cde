package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/calibration"
	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// CalibrationHandler handles factor weight calibration API endpoints
// ⭐ SSOT: 캘리브레이션 API 핸들러는 이 구조체에서만
type CalibrationHandler struct {
	engine    *calibration.Engine
	repo      contracts.FactorRepository
	histories backtest.ScoreHistorian
	symbols   []string
	region    string
	logger    *logger.Logger
}

// NewCalibrationHandler creates a new calibration handler. histories may
// be nil, which skips the realized-performance adjustment.
func NewCalibrationHandler(engine *calibration.Engine, repo contracts.FactorRepository, histories backtest.ScoreHistorian, symbols []string, regionName string, log *logger.Logger) *CalibrationHandler {
	return &CalibrationHandler{
		engine:    engine,
		repo:      repo,
		histories: histories,
		symbols:   symbols,
		region:    regionName,
		logger:    log,
	}
}

// Run recalibrates factor weights from the stored sample history and
// persists a snapshot per regime that produced a usable weight vector
// POST /api/calibration/run
func (h *CalibrationHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	history, err := h.repo.LoadHistory(ctx, 1000)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load factor history")
		respondError(w, http.StatusInternalServerError, "Failed to load factor history")
		return
	}

	weights := h.engine.CalibrateFactorWeights(history)
	if weights == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"calibrated": false,
			"samples":    len(history),
			"reason":     "insufficient sample history",
		})
		return
	}

	perf := backtest.MeasurePerformance(ctx, h.histories, h.symbols, h.region, backtest.DefaultScoreThreshold, h.logger)

	for regime, vector := range weights {
		if perf.Trades > 0 {
			vector = calibration.AdjustWeights(vector, perf)
			weights[regime] = vector
		}
		if err := h.repo.SaveWeights(ctx, regime, vector, perf); err != nil {
			h.logger.WithError(err).WithField("regime", string(regime)).Error("Failed to save weight snapshot")
			respondError(w, http.StatusInternalServerError, "Failed to persist calibrated weights")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"calibrated":  true,
		"samples":     len(history),
		"weights":     weights,
		"performance": perf,
	})
}

// GetWeights returns the last persisted weight vector for one regime
// GET /api/calibration/weights/{regime}
func (h *CalibrationHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regime := contracts.Regime(mux.Vars(r)["regime"])

	if !regime.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown regime")
		return
	}

	weights, err := h.repo.LoadLastWeights(ctx, regime)
	if err != nil {
		h.logger.WithError(err).WithField("regime", string(regime)).Error("Failed to load weights")
		respondError(w, http.StatusInternalServerError, "Failed to load weights")
		return
	}
	if weights == nil {
		respondError(w, http.StatusNotFound, "No calibrated weights for regime")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"regime":  regime,
		"weights": weights,
	})
}
