package marketphase

import (
	"context"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/logger"
)

const (
	// Trailing window of daily closes used to judge the market phase
	lookbackDays = 60
	// Window return thresholds, in percent
	riskOnReturn  = 2.0
	riskOffReturn = -2.0
	// Daily return volatility above this reads as stress regardless of direction
	stressVolatility = 2.5
)

// Detector classifies the current market phase from the recent behavior
// of a benchmark index.
// ⭐ SSOT: 시장 국면 판정은 이 디텍터에서만
type Detector struct {
	history   contracts.HistoryProvider
	benchmark string
	logger    *logger.Logger
}

// NewDetector creates a detector for the given benchmark symbol
func NewDetector(history contracts.HistoryProvider, benchmark string, log *logger.Logger) *Detector {
	return &Detector{
		history:   history,
		benchmark: benchmark,
		logger:    log,
	}
}

// DetectPhase fetches the benchmark's recent closes and classifies the
// phase. Any fetch or data problem degrades to "neutral" so a provider
// outage never blocks scoring.
func (d *Detector) DetectPhase(ctx context.Context) contracts.Regime {
	points, err := d.history.FetchHistory(ctx, d.benchmark, lookbackDays)
	if err != nil {
		d.logger.WithError(err).WithField("benchmark", d.benchmark).Warn("Phase detection fell back to neutral")
		return contracts.RegimeNeutral
	}

	closes := make([]float64, 0, len(points))
	for _, p := range points {
		closes = append(closes, p.Close)
	}

	return classify(closes, d.logger)
}

// classify maps a close series to a phase. Needs at least 10 closes to
// say anything beyond neutral.
func classify(closes []float64, log *logger.Logger) contracts.Regime {
	if len(closes) < 10 || closes[0] == 0 {
		return contracts.RegimeNeutral
	}

	windowReturn := (closes[len(closes)-1] - closes[0]) / closes[0] * 100
	volatility := stats.StdDev(stats.Returns(closes)) * 100

	phase := contracts.RegimeNeutral
	switch {
	case volatility > stressVolatility:
		phase = contracts.RegimeRiskOff
	case windowReturn <= riskOffReturn:
		phase = contracts.RegimeRiskOff
	case windowReturn >= riskOnReturn:
		phase = contracts.RegimeRiskOn
	}

	log.WithFields(map[string]interface{}{
		"window_return": stats.Round(windowReturn, 2),
		"volatility":    stats.Round(volatility, 2),
		"phase":         string(phase),
	}).Debug("Market phase classified")
	return phase
}
