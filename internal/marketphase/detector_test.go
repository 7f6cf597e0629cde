package marketphase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

type stubHistory struct {
	points []contracts.PricePoint
	err    error
}

func (s *stubHistory) FetchHistory(ctx context.Context, symbol string, days int) ([]contracts.PricePoint, error) {
	return s.points, s.err
}

func points(closes []float64) []contracts.PricePoint {
	out := make([]contracts.PricePoint, len(closes))
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = contracts.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func steadySeries(start, dailyChange float64, n int) []float64 {
	out := make([]float64, n)
	v := start
	for i := range out {
		out[i] = v
		v += dailyChange
	}
	return out
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestDetectPhase_RiskOn(t *testing.T) {
	// Steady grind up ~6% over the window with low daily volatility
	h := &stubHistory{points: points(steadySeries(100, 0.1, 60))}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeRiskOn, d.DetectPhase(context.Background()))
}

func TestDetectPhase_RiskOffOnDrawdown(t *testing.T) {
	h := &stubHistory{points: points(steadySeries(100, -0.1, 60))}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeRiskOff, d.DetectPhase(context.Background()))
}

func TestDetectPhase_RiskOffOnVolatility(t *testing.T) {
	// Flat overall but whipsawing 5% a day
	closes := make([]float64, 60)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 105
		}
	}
	h := &stubHistory{points: points(closes)}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeRiskOff, d.DetectPhase(context.Background()))
}

func TestDetectPhase_Neutral(t *testing.T) {
	// Drifting sideways, under both return thresholds
	h := &stubHistory{points: points(steadySeries(100, 0.01, 60))}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeNeutral, d.DetectPhase(context.Background()))
}

func TestDetectPhase_FetchErrorFallsBackToNeutral(t *testing.T) {
	h := &stubHistory{err: errors.New("provider down")}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeNeutral, d.DetectPhase(context.Background()))
}

func TestDetectPhase_TooFewPoints(t *testing.T) {
	h := &stubHistory{points: points([]float64{100, 101, 102})}
	d := NewDetector(h, "SPY", testLogger())

	assert.Equal(t, contracts.RegimeNeutral, d.DetectPhase(context.Background()))
}
