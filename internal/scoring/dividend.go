package scoring

import (
	"math"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// Dividend score sentinels
const (
	dividendScoreInsufficient = 20 // fewer than 5 records
	dividendScoreNoBaseline   = 30 // oldest reference payment is zero
)

// Dividend sub-score blend weights
const (
	divGrowthWeight      = 0.35
	divStabilityWeight   = 0.25
	divHistoryWeight     = 0.20
	divConsistencyWeight = 0.20
)

// DividendScore scores a chronologically ascending dividend history on
// growth, stability, history length, and payment consistency.
func DividendScore(history []contracts.DividendRecord) int {
	if len(history) < 5 {
		return dividendScoreInsufficient
	}

	latest := history[len(history)-1]

	// Reference payment ~20 periods back, or the earliest on a shorter history
	refIdx := len(history) - 1 - 20
	if refIdx < 0 {
		refIdx = 0
	}
	reference := history[refIdx]

	// Undefined growth rate guard
	if reference.CashAmount <= 0 {
		return dividendScoreNoBaseline
	}

	growth := growthScore((latest.CashAmount - reference.CashAmount) / reference.CashAmount)
	stability := stabilityFromCuts(countCuts(history))
	historyLen := historyScore(yearSpan(history))
	consistency := consistencyScore(paymentsPerYear(history))

	final := growth*divGrowthWeight +
		stability*divStabilityWeight +
		historyLen*divHistoryWeight +
		consistency*divConsistencyWeight

	return int(math.Round(final))
}

// growthScore bands the fractional growth rate of the latest payment
// against the reference payment.
func growthScore(rate float64) float64 {
	switch {
	case rate > 0.10:
		return 100
	case rate > 0.05:
		return 80
	case rate > 0.01:
		return 60
	case rate > 0:
		return 40
	default:
		return 10
	}
}

// countCuts counts sequential payment decreases across the history.
func countCuts(history []contracts.DividendRecord) int {
	cuts := 0
	for i := 1; i < len(history); i++ {
		if history[i].CashAmount < history[i-1].CashAmount {
			cuts++
		}
	}
	return cuts
}

func stabilityFromCuts(cuts int) float64 {
	switch {
	case cuts == 0:
		return 100
	case cuts == 1:
		return 70
	case cuts <= 3:
		return 40
	default:
		return 10
	}
}

// yearSpan returns the span in years between the first and last record.
func yearSpan(history []contracts.DividendRecord) float64 {
	first := history[0].ExDividendDate
	last := history[len(history)-1].ExDividendDate
	return last.Sub(first).Hours() / 24 / 365.25
}

func historyScore(years float64) float64 {
	switch {
	case years > 25:
		return 100
	case years > 15:
		return 80
	case years > 10:
		return 60
	case years > 5:
		return 40
	default:
		return 20
	}
}

func paymentsPerYear(history []contracts.DividendRecord) float64 {
	years := yearSpan(history)
	if years <= 0 {
		// All payments inside one year reads as highly frequent
		return float64(len(history))
	}
	return float64(len(history)) / years
}

func consistencyScore(perYear float64) float64 {
	switch {
	case perYear >= 3.5:
		return 100
	case perYear >= 1.5:
		return 70
	default:
		return 40
	}
}
