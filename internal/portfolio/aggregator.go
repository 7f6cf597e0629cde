package portfolio

import (
	"context"
	"math"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// Blend weights for the portfolio-level score
const (
	momentumShare = 0.6
	regionShare   = 0.3
	baseShare     = 0.1
)

// Concentration penalty thresholds on the largest single-region share
const (
	heavyConcentration    = 0.70
	moderateConcentration = 0.50
)

// Aggregator rolls per-symbol momentum into a portfolio quality score with
// diversification and market-phase adjustments
// ⭐ SSOT: 포트폴리오 점수 집계는 여기서만
type Aggregator struct {
	phase  contracts.PhaseDetector
	logger *logger.Logger
}

// NewAggregator creates a new portfolio aggregator
func NewAggregator(phase contracts.PhaseDetector, log *logger.Logger) *Aggregator {
	return &Aggregator{
		phase:  phase,
		logger: log,
	}
}

// Aggregate scores a portfolio against the resolved market quotes. An empty
// portfolio or one with no resolvable quotes yields the explicit zero-score
// sentinel with a reason, never an error.
func (a *Aggregator) Aggregate(ctx context.Context, p *contracts.Portfolio, quotes map[string]*contracts.MarketQuote) *contracts.PortfolioScore {
	if p == nil || len(p.Positions) == 0 {
		return contracts.ZeroPortfolioScore("empty portfolio")
	}

	var (
		momentumSum  float64
		weightSum    float64
		regionWeight = map[string]float64{}
		resolved     int
	)

	for _, pos := range p.Positions {
		quote := quotes[pos.Symbol]
		if quote == nil {
			continue
		}
		resolved++

		weight := pos.Weight
		if weight <= 0 {
			weight = 1
		}

		momentumSum += momentumScore(quote) * weight
		weightSum += weight
		regionWeight[quote.Region] += weight
	}

	if resolved == 0 || weightSum == 0 {
		return contracts.ZeroPortfolioScore("no market data resolved for portfolio symbols")
	}

	momentum := momentumSum / weightSum
	region := math.Min(100, float64(len(regionWeight))*30)
	penalty := concentrationPenalty(regionWeight, weightSum)

	phase := contracts.RegimeNeutral
	if a.phase != nil {
		phase = a.phase.DetectPhase(ctx)
	}
	phaseAdj := phaseAdjustment(phase)

	final := stats.Clamp(math.Round(momentum*momentumShare+region*regionShare+50*baseShare+penalty+phaseAdj), 0, 100)

	score := &contracts.PortfolioScore{
		FinalScore:           int(final),
		MomentumScore:        stats.Round(momentum, 2),
		RegionScore:          region,
		ConcentrationPenalty: penalty,
		PhaseAdjustment:      phaseAdj,
		Phase:                phase,
		Symbols:              resolved,
	}

	a.logger.WithFields(map[string]interface{}{
		"symbols":     resolved,
		"momentum":    score.MomentumScore,
		"regions":     len(regionWeight),
		"penalty":     penalty,
		"phase":       phase,
		"final_score": score.FinalScore,
	}).Debug("Aggregated portfolio score")

	return score
}

// momentumScore rates one symbol's short-term momentum, tiered by percent
// change magnitude with a small bonus for heavy volume.
func momentumScore(q *contracts.MarketQuote) float64 {
	score := 50.0
	change := contracts.Num(q.ChangesPercentage)

	switch {
	case change > 3:
		score += 15
	case change > 1:
		score += 8
	case change < -3:
		score -= 15
	case change < -1:
		score -= 8
	}

	if contracts.Num(q.Volume) > 2_000_000 {
		score += 5
	}

	return score
}

// concentrationPenalty penalizes the largest single-region weight share.
func concentrationPenalty(regionWeight map[string]float64, total float64) float64 {
	largest := 0.0
	for _, w := range regionWeight {
		if w > largest {
			largest = w
		}
	}

	share := largest / total
	switch {
	case share > heavyConcentration:
		return -25
	case share > moderateConcentration:
		return -12
	default:
		return 0
	}
}

func phaseAdjustment(phase contracts.Regime) float64 {
	switch phase {
	case contracts.RegimeRiskOn:
		return 5
	case contracts.RegimeRiskOff:
		return -8
	default:
		return 0
	}
}
