package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/region"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

func serviceTestLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

type stubQuotes struct {
	result *region.Result
	err    error
}

func (s *stubQuotes) GetQuote(ctx context.Context, symbol, regionName string) (*region.Result, error) {
	return s.result, s.err
}

type stubFundamentals struct {
	records []contracts.FundamentalRecord
	err     error
}

func (s *stubFundamentals) FetchFundamentals(ctx context.Context, symbol string) ([]contracts.FundamentalRecord, error) {
	return s.records, s.err
}

type stubHistory struct {
	series map[string][]contracts.PricePoint
	err    error
}

func (s *stubHistory) FetchHistory(ctx context.Context, symbol string, days int) ([]contracts.PricePoint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series[symbol], nil
}

func pricePoints(closes ...float64) []contracts.PricePoint {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]contracts.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = contracts.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestServiceScore_MomentumOnlyFromRawFields(t *testing.T) {
	quotes := &stubQuotes{result: &region.Result{
		Quote: &contracts.MarketQuote{
			Symbol:            "AAPL",
			Price:             contracts.Float(231.58),
			ChangesPercentage: contracts.Float(2.4),
			Volume:            contracts.Float(80_000_000),
		},
		Raw: contracts.RawQuote{
			"avgVolume": 55_000_000.0,
			"marketCap": 3.4e12,
		},
	}}

	svc := NewService(quotes, nil, nil, nil, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	result, err := svc.Score(context.Background(), "AAPL", "us")
	require.NoError(t, err)
	// 50 base +10 positive day +15 volume surge +10 mega cap
	assert.Equal(t, 85, result.HQSScore)
	assert.Equal(t, contracts.RatingStrongBuy, result.Rating)
}

func TestServiceScore_FundamentalsNewestFirst(t *testing.T) {
	quotes := &stubQuotes{result: &region.Result{
		Quote: &contracts.MarketQuote{
			Symbol: "AAPL",
			Price:  contracts.Float(231.58),
		},
		Raw: contracts.RawQuote{},
	}}
	// Provider contract: index 0 is the latest fiscal year. Both CAGRs
	// compound above 10%/yr and the 2025 margin is 30%, so the stability
	// sub-score is 95; at full weight it is the blended score.
	fundamentals := &stubFundamentals{records: []contracts.FundamentalRecord{
		{Year: 2025, Revenue: 400, NetIncome: 120, EPS: 2.1},
		{Year: 2024, Revenue: 320, NetIncome: 90, EPS: 2.0},
		{Year: 2023, Revenue: 250, NetIncome: 70, EPS: 1.9},
	}}

	svc := NewService(quotes, nil, fundamentals, nil, testEngine(config.ScoringConfig{StabilityWeight: 1.0}), 365, serviceTestLogger())

	result, err := svc.Score(context.Background(), "AAPL", "us")
	require.NoError(t, err)
	assert.Equal(t, 95, result.HQSScore)
}

func TestServiceScore_QuoteFailure(t *testing.T) {
	quotes := &stubQuotes{err: errors.New("all providers failed")}
	svc := NewService(quotes, nil, nil, nil, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	_, err := svc.Score(context.Background(), "BOGUS", "us")
	require.Error(t, err)
}

func TestScoredHistory_Shape(t *testing.T) {
	history := &stubHistory{series: map[string][]contracts.PricePoint{
		"AAPL": pricePoints(100, 102, 101, 105),
	}}
	svc := NewService(nil, nil, nil, history, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	series, err := svc.ScoredHistory(context.Background(), "AAPL", "us", 30)
	require.NoError(t, err)
	require.Len(t, series, 3)

	// Up day scores above the 50 base, down day at or below it
	assert.Greater(t, series[0].Score, 50.0)
	assert.LessOrEqual(t, series[1].Score, 50.0)
	assert.Equal(t, 105.0, series[2].Price)
}

func TestScoredHistory_InsufficientData(t *testing.T) {
	history := &stubHistory{series: map[string][]contracts.PricePoint{
		"AAPL": pricePoints(100),
	}}
	svc := NewService(nil, nil, nil, history, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	_, err := svc.ScoredHistory(context.Background(), "AAPL", "us", 30)
	require.Error(t, err)
}

func TestBuildFactorSample(t *testing.T) {
	series := make([]float64, 40)
	for i := range series {
		series[i] = 100 + float64(i)
	}
	history := &stubHistory{series: map[string][]contracts.PricePoint{
		"AAPL": pricePoints(series...),
		"SPY":  pricePoints(series...),
	}}
	svc := NewService(nil, nil, nil, history, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	sample, err := svc.BuildFactorSample(context.Background(), "AAPL", "SPY", contracts.RegimeRiskOn)
	require.NoError(t, err)

	assert.Equal(t, contracts.RegimeRiskOn, sample.Regime)
	assert.Greater(t, sample.Factors[contracts.FactorMomentum], 0.0)
	assert.Equal(t, 1.0, sample.Factors[contracts.FactorMacro])
	// Perfectly co-moving with the benchmark
	assert.InDelta(t, 1.0, sample.Factors[contracts.FactorCorrelation], 1e-9)
	// Last daily return: 139 over 138
	assert.InDelta(t, 1.0/138.0, sample.Return, 1e-9)
}

func TestBuildFactorSample_TooShort(t *testing.T) {
	history := &stubHistory{series: map[string][]contracts.PricePoint{
		"AAPL": pricePoints(100, 101, 102),
	}}
	svc := NewService(nil, nil, nil, history, testEngine(config.ScoringConfig{}), 365, serviceTestLogger())

	_, err := svc.BuildFactorSample(context.Background(), "AAPL", "SPY", contracts.RegimeNeutral)
	require.Error(t, err)
}
