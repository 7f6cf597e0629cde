package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/internal/contracts"
)

func TestAdjustWeights_NilPassesThrough(t *testing.T) {
	assert.Nil(t, AdjustWeights(nil, contracts.PerformanceStats{WinRate: 80}))
}

func TestAdjustWeights_HighWinRateRaisesMomentum(t *testing.T) {
	current := contracts.WeightVector{
		contracts.FactorMomentum: 0.5,
		contracts.FactorQuality:  0.5,
	}

	adjusted := AdjustWeights(current, contracts.PerformanceStats{WinRate: 65})
	require.NotNil(t, adjusted)

	// Raw: momentum 0.52, quality 0.5 -> plain-sum renormalized
	assert.InDelta(t, 0.52/1.02, adjusted[contracts.FactorMomentum], 1e-9)
	assert.InDelta(t, 0.50/1.02, adjusted[contracts.FactorQuality], 1e-9)
	assert.InDelta(t, 1.0, adjusted.Sum(), 1e-9, "adjuster normalizes by plain sum, not absolute sum")

	// Input vector is untouched
	assert.InDelta(t, 0.5, current[contracts.FactorMomentum], 1e-9)
}

func TestAdjustWeights_LowWinRateLowersMomentum(t *testing.T) {
	current := contracts.WeightVector{
		contracts.FactorMomentum: 0.5,
		contracts.FactorQuality:  0.5,
	}

	adjusted := AdjustWeights(current, contracts.PerformanceStats{WinRate: 40})
	assert.InDelta(t, 0.48/0.98, adjusted[contracts.FactorMomentum], 1e-9)
}

func TestAdjustWeights_GoodReturnsRaiseQuality(t *testing.T) {
	current := contracts.WeightVector{
		contracts.FactorMomentum: 0.6,
		contracts.FactorQuality:  0.4,
	}

	// Win rate inside the dead band, only the quality nudge fires
	adjusted := AdjustWeights(current, contracts.PerformanceStats{WinRate: 50, AverageReturn: 1.5})
	assert.InDelta(t, 0.42/1.02, adjusted[contracts.FactorQuality], 1e-9)
	assert.InDelta(t, 0.60/1.02, adjusted[contracts.FactorMomentum], 1e-9)
}

func TestAdjustWeights_DegeneratePlainSum(t *testing.T) {
	// Mixed-sign weights can cancel under the plain-sum convention; the
	// adjuster must not divide by zero.
	current := contracts.WeightVector{
		contracts.FactorMomentum: 0.48,
		contracts.FactorMacro:    -0.50,
	}

	adjusted := AdjustWeights(current, contracts.PerformanceStats{WinRate: 65})
	require.NotNil(t, adjusted)
	assert.InDelta(t, 0.0, adjusted.Sum(), 1e-9)
	assert.InDelta(t, 0.50, adjusted[contracts.FactorMomentum], 1e-9)
}
