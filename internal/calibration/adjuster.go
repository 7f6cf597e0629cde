package calibration

import "github.com/wonny/hqs/backend/internal/contracts"

// Incremental nudge applied per adjustment pass
const weightNudge = 0.02

// Win-rate thresholds driving the momentum nudge
const (
	winRateRaise = 60
	winRateLower = 45
)

// AdjustWeights nudges the current weights from recent realized performance:
// momentum moves ±0.02 on win-rate extremes and quality gains 0.02 when the
// average trade return clears 1%.
//
// NOTE: this path renormalizes by the PLAIN sum of weights, while the
// correlation calibrator normalizes by the sum of ABSOLUTE values. The
// asymmetry is inherited from the source system and pinned by tests; do not
// unify the two without revisiting every stored snapshot.
func AdjustWeights(current contracts.WeightVector, perf contracts.PerformanceStats) contracts.WeightVector {
	if current == nil {
		return nil
	}

	adjusted := current.Clone()

	if perf.WinRate > winRateRaise {
		adjusted[contracts.FactorMomentum] += weightNudge
	} else if perf.WinRate < winRateLower {
		adjusted[contracts.FactorMomentum] -= weightNudge
	}

	if perf.AverageReturn > 1 {
		adjusted[contracts.FactorQuality] += weightNudge
	}

	total := adjusted.Sum()
	if total == 0 {
		// Degenerate plain sum: renormalizing would divide by zero
		return adjusted
	}

	for k, v := range adjusted {
		adjusted[k] = v / total
	}
	return adjusted
}
