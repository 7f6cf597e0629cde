package backtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/hqs/backend/internal/contracts"
)

type stubHistorian struct {
	series map[string][]contracts.ScoredPrice
}

func (s *stubHistorian) ScoredHistory(ctx context.Context, symbol, region string, days int) ([]contracts.ScoredPrice, error) {
	out, ok := s.series[symbol]
	if !ok {
		return nil, errors.New("no history")
	}
	return out, nil
}

func TestMeasurePerformance_PoolsAcrossSymbols(t *testing.T) {
	historian := &stubHistorian{series: map[string][]contracts.ScoredPrice{
		// 2 trades, both winners
		"AAPL": series([]float64{80, 80, 80}, []float64{100, 102, 104}),
		// 2 trades, both losers
		"MSFT": series([]float64{80, 80, 80}, []float64{100, 98, 96}),
	}}

	perf := MeasurePerformance(context.Background(), historian, []string{"AAPL", "MSFT"}, "us", DefaultScoreThreshold, testLogger())

	assert.Equal(t, 4, perf.Trades)
	// Trade-weighted pooling of a 100% and a 0% win rate
	assert.InDelta(t, 50.0, perf.WinRate, 1e-9)
}

func TestMeasurePerformance_SkipsFailedSymbols(t *testing.T) {
	historian := &stubHistorian{series: map[string][]contracts.ScoredPrice{
		"AAPL": series([]float64{80, 80}, []float64{100, 101}),
	}}

	perf := MeasurePerformance(context.Background(), historian, []string{"GONE", "AAPL"}, "us", DefaultScoreThreshold, testLogger())

	assert.Equal(t, 1, perf.Trades)
	assert.Equal(t, 100.0, perf.WinRate)
}

func TestMeasurePerformance_NilHistorian(t *testing.T) {
	perf := MeasurePerformance(context.Background(), nil, []string{"AAPL"}, "us", DefaultScoreThreshold, testLogger())

	assert.Equal(t, contracts.PerformanceStats{}, perf)
}
