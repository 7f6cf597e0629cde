package calibration

import (
	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// Defaults for the calibration windows
const (
	DefaultWindowSize      = 90
	DefaultMinRegime       = 20
	DefaultMinTotal        = 30
	minCorrelationPoints   = 5
)

// Engine fits factor weights from the correlation between historical factor
// exposures and subsequent returns, conditioned on market regime
// ⭐ SSOT: 팩터 가중치 캘리브레이션은 여기서만
type Engine struct {
	windowSize int
	minRegime  int
	minTotal   int
	logger     *logger.Logger
}

// NewEngine creates a new calibration engine
func NewEngine(cfg *config.Config, log *logger.Logger) *Engine {
	windowSize := cfg.Scoring.CalibrationWindow
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	minRegime := cfg.Scoring.MinRegimeSamples
	if minRegime <= 0 {
		minRegime = DefaultMinRegime
	}
	minTotal := cfg.Scoring.MinTotalSamples
	if minTotal <= 0 {
		minTotal = DefaultMinTotal
	}

	return &Engine{
		windowSize: windowSize,
		minRegime:  minRegime,
		minTotal:   minTotal,
		logger:     log,
	}
}

// CalibrateForRegime fits a weight vector for one regime from the most
// recent window of matching samples. Returns nil when the regime is
// under-sampled or every correlation degenerates to zero — an
// insufficient-data signal, not an error.
func (e *Engine) CalibrateForRegime(history []*contracts.FactorSample, regime contracts.Regime) contracts.WeightVector {
	window := e.regimeWindow(history, regime)
	if len(window) < e.minRegime {
		return nil
	}

	// Factor names come from the first sample in the window; samples
	// missing a factor contribute a 0 exposure.
	raw := make(contracts.WeightVector)
	for name := range window[0].Factors {
		raw[name] = e.factorCorrelation(window, name)
	}

	weights := raw.NormalizeAbs()
	if weights == nil {
		e.logger.WithField("regime", regime).Debug("Degenerate correlations, no weights emitted")
		return nil
	}

	e.logger.WithFields(map[string]interface{}{
		"regime":  regime,
		"window":  len(window),
		"factors": len(weights),
	}).Info("Calibrated factor weights")

	return weights
}

// CalibrateFactorWeights fits one weight vector per regime. Requires a
// minimum total history; regimes that fail their per-regime minimum are
// omitted from the result.
func (e *Engine) CalibrateFactorWeights(history []*contracts.FactorSample) map[contracts.Regime]contracts.WeightVector {
	if len(history) < e.minTotal {
		return nil
	}

	out := make(map[contracts.Regime]contracts.WeightVector)
	for _, regime := range contracts.Regimes {
		if weights := e.CalibrateForRegime(history, regime); weights != nil {
			out[regime] = weights
		}
	}
	return out
}

// regimeWindow filters history to one regime and keeps the most recent
// windowSize samples. History is ordered oldest-first.
func (e *Engine) regimeWindow(history []*contracts.FactorSample, regime contracts.Regime) []*contracts.FactorSample {
	filtered := make([]*contracts.FactorSample, 0, len(history))
	for _, s := range history {
		if s != nil && s.Regime == regime {
			filtered = append(filtered, s)
		}
	}

	if len(filtered) > e.windowSize {
		filtered = filtered[len(filtered)-e.windowSize:]
	}
	return filtered
}

// factorCorrelation computes the Pearson correlation between one factor's
// exposures and the subsequent returns across the window. Fewer than 5
// points defines the correlation as 0.
func (e *Engine) factorCorrelation(window []*contracts.FactorSample, factor string) float64 {
	if len(window) < minCorrelationPoints {
		return 0
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, s := range window {
		xs[i] = s.Factors[factor] // missing -> 0
		ys[i] = s.Return
	}

	return stats.Pearson(xs, ys)
}
