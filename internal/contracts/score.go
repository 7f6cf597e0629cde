package contracts

// Rating labels by score band
const (
	RatingStrongBuy = "Strong Buy"
	RatingBuy       = "Buy"
	RatingHold      = "Hold"
	RatingRisk      = "Risk"
)

// Decision labels by score band
const (
	DecisionBuy      = "BUY"
	DecisionHold     = "HOLD"
	DecisionDoNotBuy = "DO_NOT_BUY"
)

// Insight tags by score band
const (
	InsightExceptional = "exceptional_quality"
	InsightStrong      = "strong_fundamentals"
	InsightMixed       = "mixed_signals"
	InsightRisk        = "elevated_risk"
)

// HQSResult is the composite quality score for one symbol. Computed fresh
// per request and never mutated after construction.
// ⭐ SSOT: HQS 결과 스키마는 여기서만 정의
type HQSResult struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
	AvgVolume     float64 `json:"avgVolume"`
	MarketCap     float64 `json:"marketCap"`

	HQSScore  int    `json:"hqsScore"` // 0-100 inclusive
	Rating    string `json:"rating"`
	Decision  string `json:"decision"`
	AIInsight string `json:"aiInsight"`
}

// RatingForScore maps an integer HQS score to its rating label.
// Bands: >=85 Strong Buy, >=70 Buy, >=50 Hold, else Risk.
func RatingForScore(score int) string {
	switch {
	case score >= 85:
		return RatingStrongBuy
	case score >= 70:
		return RatingBuy
	case score >= 50:
		return RatingHold
	default:
		return RatingRisk
	}
}

// DecisionForScore maps an integer HQS score to its decision label.
// Bands: >=70 BUY, >=50 HOLD, else DO_NOT_BUY.
func DecisionForScore(score int) string {
	switch {
	case score >= 70:
		return DecisionBuy
	case score >= 50:
		return DecisionHold
	default:
		return DecisionDoNotBuy
	}
}

// InsightForScore maps an integer HQS score to its insight tag.
func InsightForScore(score int) string {
	switch {
	case score >= 85:
		return InsightExceptional
	case score >= 70:
		return InsightStrong
	case score >= 50:
		return InsightMixed
	default:
		return InsightRisk
	}
}
