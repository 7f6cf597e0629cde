package contracts

import "time"

// ScoredPrice is one day of a price series with the HQS score in effect
// that day. Input to the threshold backtest rule.
type ScoredPrice struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
	Score float64   `json:"score"`
}

// ThresholdResult holds the outcome of replaying the score-threshold trading
// rule over a historical series.
type ThresholdResult struct {
	Trades        int     `json:"trades"`
	WinRate       float64 `json:"winRate"`       // percent, rounded
	TotalReturn   float64 `json:"totalReturn"`   // percent, rounded
	AverageReturn float64 `json:"averageReturn"` // percent, rounded
}

// PortfolioBacktestResult holds the value-weighted portfolio simulation
// outcome. Nil when the aligned history length is zero.
type PortfolioBacktestResult struct {
	Days        int     `json:"days"`
	TotalReturn float64 `json:"totalReturn"` // percent
	MaxDrawdown float64 `json:"maxDrawdown"` // percent, negative
	Sharpe      float64 `json:"sharpe"`      // annualized
	Alpha       float64 `json:"alpha"`       // vs benchmark, percent points
	Benchmark   string  `json:"benchmark,omitempty"`
}
