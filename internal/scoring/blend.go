package scoring

import (
	"math"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// Engine blends sub-scores into the final HQS result
// ⭐ SSOT: HQS 블렌딩은 여기서만
//
// The base path scores on CurrentScore alone. Sub-scores fold in at the
// configured weights only when their input data is present, so adding a
// sub-score never breaks the public contract. The weight table lives in
// config rather than code: the source system showed both a momentum-only
// path and a dividend-weighted path without reconciling them.
type Engine struct {
	weights config.ScoringConfig
	logger  *logger.Logger
}

// BlendInput carries every sub-score input for one symbol. Any field may be
// missing; missing numerics default to 0 and missing series skip their
// sub-score entirely.
type BlendInput struct {
	Symbol        string
	Price         *float64
	ChangePercent *float64
	Volume        *float64
	AvgVolume     *float64
	MarketCap     *float64

	Dividends    []contracts.DividendRecord
	Fundamentals []contracts.FundamentalRecord

	// Daily fractional returns and close curve for the risk sub-score
	Returns    []float64
	PriceCurve []float64
}

// NewEngine creates a new blend engine
func NewEngine(cfg *config.Config, log *logger.Logger) *Engine {
	return &Engine{
		weights: cfg.Scoring,
		logger:  log,
	}
}

// Blend computes the final HQS result for one symbol. Never errors: any
// missing input degrades to the momentum-only base path.
func (e *Engine) Blend(in BlendInput) *contracts.HQSResult {
	current := CurrentScore(CurrentInput{
		ChangePercent: contracts.Num(in.ChangePercent),
		Volume:        contracts.Num(in.Volume),
		AvgVolume:     contracts.Num(in.AvgVolume),
		MarketCap:     contracts.Num(in.MarketCap),
	})

	score := float64(current)

	// Dividend fold-in, only when history is available
	if len(in.Dividends) > 0 && e.weights.DividendWeight > 0 {
		div := float64(DividendScore(in.Dividends))
		w := e.weights.DividendWeight
		score = score*(1-w) + div*w
	}

	if len(in.Fundamentals) > 0 && e.weights.StabilityWeight > 0 {
		stab := float64(StabilityScore(in.Fundamentals))
		w := e.weights.StabilityWeight
		score = score*(1-w) + stab*w
	}

	if len(in.Returns) > 0 && e.weights.RiskWeight > 0 {
		risk := float64(RiskScore(ComputeRiskMetrics(in.Returns, in.PriceCurve, e.weights.RiskFreeRate)))
		w := e.weights.RiskWeight
		score = score*(1-w) + risk*w
	}

	final := int(math.Round(stats.Clamp(score, 0, 100)))

	result := &contracts.HQSResult{
		Symbol:        in.Symbol,
		Price:         contracts.Num(in.Price),
		ChangePercent: contracts.Num(in.ChangePercent),
		Volume:        contracts.Num(in.Volume),
		AvgVolume:     contracts.Num(in.AvgVolume),
		MarketCap:     contracts.Num(in.MarketCap),
		HQSScore:      final,
		Rating:        contracts.RatingForScore(final),
		Decision:      contracts.DecisionForScore(final),
		AIInsight:     contracts.InsightForScore(final),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":    in.Symbol,
		"current":   current,
		"hqs_score": final,
		"rating":    result.Rating,
	}).Debug("Blended HQS score")

	return result
}
