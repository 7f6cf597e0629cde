package contracts

import (
	"math"
	"time"
)

// Regime is a market-condition label used to condition factor-weight
// calibration.
type Regime string

const (
	RegimeRiskOn  Regime = "risk_on"
	RegimeRiskOff Regime = "risk_off"
	RegimeNeutral Regime = "neutral"
)

// Regimes lists every regime a calibration pass covers.
var Regimes = []Regime{RegimeRiskOn, RegimeRiskOff, RegimeNeutral}

// Valid reports whether r is a known regime label.
func (r Regime) Valid() bool {
	switch r {
	case RegimeRiskOn, RegimeRiskOff, RegimeNeutral:
		return true
	}
	return false
}

// Standard factor names
const (
	FactorMomentum    = "momentum"
	FactorVolatility  = "volatility"
	FactorEarnings    = "earnings"
	FactorCorrelation = "correlation"
	FactorMacro       = "macro"
	FactorQuality     = "quality"
)

// FactorSample is one append-only observation of factor exposures together
// with the subsequent period return, tagged with the regime in effect.
// ⭐ SSOT: 팩터 히스토리 레코드는 여기서만 정의
type FactorSample struct {
	Timestamp time.Time          `json:"timestamp"`
	Return    float64            `json:"return"` // fractional period return
	Regime    Regime             `json:"regime"`
	Factors   map[string]float64 `json:"factors"`
}

// WeightVector maps factor names to blend weights. A calibrated vector has
// unit sum of absolute values; a nil vector means insufficient data.
type WeightVector map[string]float64

// SumAbs returns the sum of absolute weight values.
func (w WeightVector) SumAbs() float64 {
	total := 0.0
	for _, v := range w {
		total += math.Abs(v)
	}
	return total
}

// Sum returns the plain sum of weight values.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// NormalizeAbs scales the vector so that SumAbs() == 1. Returns nil when
// the vector is degenerate (all-zero), never divides by zero.
func (w WeightVector) NormalizeAbs() WeightVector {
	total := w.SumAbs()
	if total == 0 {
		return nil
	}
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v / total
	}
	return out
}

// Clone returns a shallow copy of the vector.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// PerformanceStats summarizes recent realized performance. The incremental
// weight adjuster reads these; the backtest engine produces them.
type PerformanceStats struct {
	Trades        int     `json:"trades"`
	WinRate       float64 `json:"winRate"`       // percent, 0-100
	AverageReturn float64 `json:"averageReturn"` // percent per trade
}

// WeightSnapshot is one persisted, versioned weight vector. Old snapshots
// are immutable history and are never rewritten.
type WeightSnapshot struct {
	ID          int64            `json:"id"`
	Regime      Regime           `json:"regime"`
	Weights     WeightVector     `json:"weights"`
	Performance PerformanceStats `json:"performance"`
	CreatedAt   time.Time        `json:"createdAt"`
}
