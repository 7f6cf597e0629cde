package stats

import "math"

// Pure statistics helpers shared by the calibration, scoring, and backtest
// engines. Every function guards degenerate input and returns 0 instead of
// NaN or Inf.
// ⭐ SSOT: 통계 계산은 이 패키지에서만

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, or 0 for an empty slice.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}

// Variance returns the population variance, or 0 for an empty slice.
func Variance(values []float64) float64 {
	sd := StdDev(values)
	return sd * sd
}

// Pearson returns the Pearson correlation coefficient between x and y.
// Returns 0 when the slices differ in length, hold fewer than 2 points,
// or either side has zero variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}

// SharpeRatio returns mean excess return over standard deviation, without
// annualization. 0 for empty returns or zero deviation. Rounded to 4 decimals.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	sd := StdDev(returns)
	if sd == 0 {
		return 0
	}

	return Round((Mean(returns)-riskFreeRate)/sd, 4)
}

// AnnualizedSharpe returns the Sharpe ratio of a daily-return series scaled
// by sqrt(252). Rounded to 4 decimals.
func AnnualizedSharpe(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	sd := StdDev(returns)
	if sd == 0 {
		return 0
	}

	return Round((Mean(returns)-riskFreeRate)/sd*math.Sqrt(252), 4)
}

// MaxDrawdown returns the deepest peak-to-trough decline of an equity or
// price curve as a negative percentage of the peak, tracked against a
// running peak. 0 on empty input. Rounded to 2 decimals.
func MaxDrawdown(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}

	maxDD := 0.0
	peak := curve[0]

	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}

		dd := (v - peak) / peak * 100
		if dd < maxDD {
			maxDD = dd
		}
	}

	return Round(maxDD, 2)
}

// Returns derives period-over-period fractional returns from a value series.
// Days with a zero previous value are skipped.
func Returns(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}

	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1]
		if prev == 0 {
			continue
		}
		out = append(out, (curve[i]-prev)/prev)
	}
	return out
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
