package calibration

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

func testEngine() *Engine {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
		Scoring: config.ScoringConfig{
			CalibrationWindow: 90,
			MinRegimeSamples:  20,
			MinTotalSamples:   30,
		},
	}
	return NewEngine(cfg, logger.New(cfg))
}

// makeSamples builds n samples for one regime where the momentum factor
// perfectly tracks returns and the volatility factor stays constant.
func makeSamples(n int, regime contracts.Regime) []*contracts.FactorSample {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	samples := make([]*contracts.FactorSample, n)
	for i := range samples {
		ret := rng.Float64()*0.04 - 0.02
		samples[i] = &contracts.FactorSample{
			Timestamp: start.AddDate(0, 0, i),
			Return:    ret,
			Regime:    regime,
			Factors: map[string]float64{
				contracts.FactorMomentum:   ret,  // correlation +1
				contracts.FactorVolatility: 0.5,  // zero variance
			},
		}
	}
	return samples
}

func TestCalibrateForRegime_UnderSampled(t *testing.T) {
	e := testEngine()

	assert.Nil(t, e.CalibrateForRegime(nil, contracts.RegimeRiskOn))
	assert.Nil(t, e.CalibrateForRegime(makeSamples(19, contracts.RegimeRiskOn), contracts.RegimeRiskOn))

	// Plenty of samples, but none in the requested regime
	assert.Nil(t, e.CalibrateForRegime(makeSamples(50, contracts.RegimeRiskOn), contracts.RegimeRiskOff))
}

func TestCalibrateForRegime_CorrelatedFactorDominates(t *testing.T) {
	e := testEngine()
	weights := e.CalibrateForRegime(makeSamples(40, contracts.RegimeRiskOn), contracts.RegimeRiskOn)
	require.NotNil(t, weights)

	// Constant factor has zero variance -> correlation 0 -> zero weight
	assert.InDelta(t, 0.0, weights[contracts.FactorVolatility], 1e-9)

	// The perfectly correlated factor carries all the weight
	assert.InDelta(t, 1.0, weights[contracts.FactorMomentum], 1e-9)

	// Unit absolute sum invariant
	assert.InDelta(t, 1.0, weights.SumAbs(), 1e-9)
}

func TestCalibrateForRegime_AllConstantFactorsDegenerate(t *testing.T) {
	e := testEngine()

	samples := makeSamples(40, contracts.RegimeNeutral)
	for _, s := range samples {
		s.Factors = map[string]float64{
			contracts.FactorMacro: 1.0,
		}
	}

	assert.Nil(t, e.CalibrateForRegime(samples, contracts.RegimeNeutral),
		"all-zero correlations must yield nil, not a division by zero")
}

func TestCalibrateForRegime_WindowKeepsMostRecent(t *testing.T) {
	e := testEngine()

	// 200 samples; only the last 90 should be considered. Flip the factor
	// sign in the old half — if the window leaked, correlation would cancel.
	samples := makeSamples(200, contracts.RegimeRiskOn)
	for _, s := range samples[:110] {
		s.Factors[contracts.FactorMomentum] = -s.Return
	}

	weights := e.CalibrateForRegime(samples, contracts.RegimeRiskOn)
	require.NotNil(t, weights)
	assert.InDelta(t, 1.0, weights[contracts.FactorMomentum], 1e-9)
}

func TestCalibrateFactorWeights(t *testing.T) {
	e := testEngine()

	assert.Nil(t, e.CalibrateFactorWeights(makeSamples(29, contracts.RegimeRiskOn)),
		"fewer than 30 total samples yields nil")

	history := append(
		makeSamples(40, contracts.RegimeRiskOn),
		makeSamples(10, contracts.RegimeRiskOff)...,
	)

	out := e.CalibrateFactorWeights(history)
	require.NotNil(t, out)

	// risk_on is well sampled; risk_off misses the per-regime minimum and
	// neutral has no samples at all.
	assert.Contains(t, out, contracts.RegimeRiskOn)
	assert.NotContains(t, out, contracts.RegimeRiskOff)
	assert.NotContains(t, out, contracts.RegimeNeutral)

	for regime, weights := range out {
		assert.InDelta(t, 1.0, weights.SumAbs(), 1e-9, "regime %s", regime)
	}
}
