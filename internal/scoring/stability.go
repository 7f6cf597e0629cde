package scoring

import (
	"math"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
)

// stabilityScoreDefault is returned when fewer than 3 fundamental records
// are available to judge a trend.
const stabilityScoreDefault = 50

// StabilityScore scores fundamentals health from revenue/income CAGR, EPS
// variance, and current profit margin. Records are ordered newest-first
// (index 0 = latest fiscal year).
func StabilityScore(records []contracts.FundamentalRecord) int {
	if len(records) < 3 {
		return stabilityScoreDefault
	}

	score := 50.0
	latest := records[0]
	oldest := records[len(records)-1]
	years := float64(len(records) - 1)

	if cagr(oldest.Revenue, latest.Revenue, years) > 0.10 {
		score += 10
	}
	if cagr(oldest.NetIncome, latest.NetIncome, years) > 0.10 {
		score += 15
	}

	eps := make([]float64, len(records))
	for i, r := range records {
		eps[i] = r.EPS
	}
	epsVariance := stats.Variance(eps)
	if epsVariance < 0.5 {
		score += 10
	} else if epsVariance > 2 {
		score -= 10
	}

	margin := 0.0
	if latest.Revenue != 0 {
		margin = latest.NetIncome / latest.Revenue
	}
	if margin > 0.20 {
		score += 10
	} else if margin < 0.05 {
		score -= 10
	}

	return int(math.Round(stats.Clamp(score, 0, 100)))
}

// cagr returns the compound annual growth rate between a start and end
// value, or 0 when the growth rate is undefined.
func cagr(start, end, years float64) float64 {
	if start <= 0 || end <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(end/start, 1/years) - 1
}
