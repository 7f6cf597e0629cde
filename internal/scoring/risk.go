package scoring

import (
	"github.com/wonny/hqs/backend/internal/stats"
)

// RiskMetrics holds the risk-adjusted performance measures for a return
// series and its price curve.
type RiskMetrics struct {
	Sharpe           float64 `json:"sharpe"`           // not annualized, 4 decimals
	AnnualizedSharpe float64 `json:"annualizedSharpe"` // sqrt(252) scaled
	MaxDrawdown      float64 `json:"maxDrawdown"`      // percent, negative, 2 decimals
}

// ComputeRiskMetrics derives Sharpe and max drawdown from a fractional
// daily-return series and the close-price curve it came from. Degenerate
// input (empty series, zero variance) yields zeros, never NaN.
func ComputeRiskMetrics(returns []float64, curve []float64, riskFreeRate float64) RiskMetrics {
	return RiskMetrics{
		Sharpe:           stats.SharpeRatio(returns, riskFreeRate),
		AnnualizedSharpe: stats.AnnualizedSharpe(returns, riskFreeRate),
		MaxDrawdown:      stats.MaxDrawdown(curve),
	}
}

// RiskScore maps risk metrics onto the 0-100 scale used by the blend:
// neutral 50, shifted by Sharpe quality and drawdown depth.
func RiskScore(m RiskMetrics) int {
	score := 50.0

	switch {
	case m.Sharpe > 1:
		score += 25
	case m.Sharpe > 0.5:
		score += 15
	case m.Sharpe > 0:
		score += 5
	case m.Sharpe < -0.5:
		score -= 15
	}

	switch {
	case m.MaxDrawdown < -50:
		score -= 25
	case m.MaxDrawdown < -30:
		score -= 15
	case m.MaxDrawdown < -15:
		score -= 5
	}

	return int(stats.Clamp(score, 0, 100))
}
