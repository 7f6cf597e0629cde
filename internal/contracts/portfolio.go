package contracts

// Position is one holding in a portfolio descriptor. Weight defaults to 1
// when unspecified; weights are normalized by their sum during aggregation.
type Position struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// Portfolio is the request-scoped portfolio descriptor.
type Portfolio struct {
	Positions []Position `json:"positions"`
}

// PortfolioScore is the aggregate quality score of a portfolio.
type PortfolioScore struct {
	FinalScore           int     `json:"finalScore"` // 0-100
	MomentumScore        float64 `json:"momentumScore"`
	RegionScore          float64 `json:"regionScore"`
	ConcentrationPenalty float64 `json:"concentrationPenalty"`
	PhaseAdjustment      float64 `json:"phaseAdjustment"`
	Phase                Regime  `json:"phase"`
	Symbols              int     `json:"symbols"`
	Reason               string  `json:"reason,omitempty"`
}

// ZeroPortfolioScore builds the explicit zero-score sentinel returned when a
// portfolio is empty or no market data resolves.
func ZeroPortfolioScore(reason string) *PortfolioScore {
	return &PortfolioScore{
		FinalScore: 0,
		Phase:      RegimeNeutral,
		Reason:     reason,
	}
}
