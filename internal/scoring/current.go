package scoring

import (
	"math"

	"github.com/wonny/hqs/backend/internal/stats"
)

// CurrentInput holds the momentum/volume/cap inputs for the current score.
// Missing fields default to 0 before scoring.
type CurrentInput struct {
	ChangePercent float64
	Volume        float64
	AvgVolume     float64
	MarketCap     float64
}

// Thresholds for the current score bonuses
const (
	volumeSpikeRatio  = 1.3
	largeCapThreshold = 1e11
)

// CurrentScore computes the momentum-driven base score.
// Base 50, +10 for a positive day, +15 for a volume spike above 1.3x the
// average, +10 for mega-cap size. Clamped to [0, 100].
func CurrentScore(in CurrentInput) int {
	score := 50.0

	if in.ChangePercent > 0 {
		score += 10
	}

	// Undefined volume ratio counts as 0, no bonus
	ratio := 0.0
	if in.AvgVolume > 0 {
		ratio = in.Volume / in.AvgVolume
	}
	if ratio > volumeSpikeRatio {
		score += 15
	}

	if in.MarketCap > largeCapThreshold {
		score += 10
	}

	return int(math.Round(stats.Clamp(score, 0, 100)))
}
