package backtest

import (
	"context"
	"sync"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// PortfolioSimulator replays a value-weighted portfolio against history and
// a benchmark
// ⭐ SSOT: 포트폴리오 시뮬레이션은 여기서만
type PortfolioSimulator struct {
	history      contracts.HistoryProvider
	riskFreeRate float64
	logger       *logger.Logger
}

// NewPortfolioSimulator creates a new portfolio simulator
func NewPortfolioSimulator(history contracts.HistoryProvider, riskFreeRate float64, log *logger.Logger) *PortfolioSimulator {
	return &PortfolioSimulator{
		history:      history,
		riskFreeRate: riskFreeRate,
		logger:       log,
	}
}

// Simulate fetches every position's close history concurrently, truncates all
// series to the shortest common length, and derives portfolio return, max
// drawdown, and annualized Sharpe. When a benchmark symbol is given the same
// pipeline runs for it and alpha is the total-return difference. Returns nil
// when the aligned history length is zero — an insufficient-data signal, not
// an error.
func (s *PortfolioSimulator) Simulate(ctx context.Context, positions []contracts.Position, days int, benchmark string) *contracts.PortfolioBacktestResult {
	if len(positions) == 0 {
		return nil
	}

	curves := s.fetchAll(ctx, positions, days)

	// Align to the shortest series; any failed fetch contributes length 0
	// and short-circuits the whole computation.
	minLen := -1
	for _, c := range curves {
		if minLen < 0 || len(c) < minLen {
			minLen = len(c)
		}
	}
	if minLen <= 1 {
		s.logger.WithFields(map[string]interface{}{
			"positions": len(positions),
			"aligned":   minLen,
		}).Warn("Insufficient aligned history for portfolio simulation")
		return nil
	}

	curve := weightedCurve(positions, curves, minLen)
	returns := stats.Returns(curve)

	result := &contracts.PortfolioBacktestResult{
		Days:        minLen,
		TotalReturn: stats.Round((curve[len(curve)-1]-curve[0])/curve[0]*100, 2),
		MaxDrawdown: stats.MaxDrawdown(curve),
		Sharpe:      stats.AnnualizedSharpe(returns, s.riskFreeRate),
	}

	if benchmark != "" {
		if bench := s.benchmarkReturn(ctx, benchmark, days, minLen); bench != nil {
			result.Benchmark = benchmark
			result.Alpha = stats.Round(result.TotalReturn-*bench, 2)
		}
	}

	return result
}

// fetchAll issues one history fetch per symbol concurrently and blocks until
// every fetch resolves. A failed fetch yields an empty series.
func (s *PortfolioSimulator) fetchAll(ctx context.Context, positions []contracts.Position, days int) [][]float64 {
	curves := make([][]float64, len(positions))

	var wg sync.WaitGroup
	for i, pos := range positions {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			points, err := s.history.FetchHistory(ctx, symbol, days)
			if err != nil {
				s.logger.WithError(err).WithField("symbol", symbol).Warn("History fetch failed")
				return
			}

			closes := make([]float64, len(points))
			for j, p := range points {
				closes[j] = p.Close
			}
			curves[i] = closes
		}(i, pos.Symbol)
	}
	wg.Wait()

	return curves
}

// weightedCurve builds the value-weighted portfolio value series, each
// position normalized to its first aligned close.
func weightedCurve(positions []contracts.Position, curves [][]float64, length int) []float64 {
	totalWeight := 0.0
	weights := make([]float64, len(positions))
	for i, pos := range positions {
		w := pos.Weight
		if w <= 0 {
			w = 1
		}
		weights[i] = w
		totalWeight += w
	}

	curve := make([]float64, length)
	for d := 0; d < length; d++ {
		value := 0.0
		for i, c := range curves {
			base := c[0]
			if base == 0 {
				continue
			}
			value += weights[i] / totalWeight * (c[d] / base)
		}
		curve[d] = value
	}
	return curve
}

// benchmarkReturn runs the single-symbol variant of the pipeline and returns
// the benchmark's total return over the same aligned window.
func (s *PortfolioSimulator) benchmarkReturn(ctx context.Context, symbol string, days, alignedLen int) *float64 {
	points, err := s.history.FetchHistory(ctx, symbol, days)
	if err != nil || len(points) < 2 {
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Benchmark fetch failed")
		}
		return nil
	}

	if len(points) > alignedLen {
		points = points[len(points)-alignedLen:]
	}

	first := points[0].Close
	last := points[len(points)-1].Close
	if first == 0 {
		return nil
	}

	ret := stats.Round((last-first)/first*100, 2)
	return &ret
}
