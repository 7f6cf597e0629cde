package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

type fixedPhase struct {
	phase contracts.Regime
}

func (f fixedPhase) DetectPhase(context.Context) contracts.Regime { return f.phase }

func testAggregator(phase contracts.Regime) *Aggregator {
	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	return NewAggregator(fixedPhase{phase}, logger.New(cfg))
}

func quote(symbol, region string, changePct, volume float64) *contracts.MarketQuote {
	return &contracts.MarketQuote{
		Symbol:            symbol,
		Region:            region,
		ChangesPercentage: contracts.Float(changePct),
		Volume:            contracts.Float(volume),
	}
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	a := testAggregator(contracts.RegimeNeutral)

	score := a.Aggregate(context.Background(), nil, nil)
	require.NotNil(t, score)
	assert.Equal(t, 0, score.FinalScore)
	assert.Equal(t, "empty portfolio", score.Reason)

	score = a.Aggregate(context.Background(), &contracts.Portfolio{}, nil)
	assert.Equal(t, 0, score.FinalScore)
}

func TestAggregate_NoResolvableQuotes(t *testing.T) {
	a := testAggregator(contracts.RegimeNeutral)

	p := &contracts.Portfolio{Positions: []contracts.Position{{Symbol: "GHOST"}}}
	score := a.Aggregate(context.Background(), p, map[string]*contracts.MarketQuote{})

	require.NotNil(t, score)
	assert.Equal(t, 0, score.FinalScore)
	assert.NotEmpty(t, score.Reason)
}

func TestAggregate_SingleRegionConcentration(t *testing.T) {
	a := testAggregator(contracts.RegimeNeutral)

	p := &contracts.Portfolio{Positions: []contracts.Position{
		{Symbol: "AAPL", Weight: 1},
		{Symbol: "MSFT", Weight: 1},
	}}
	quotes := map[string]*contracts.MarketQuote{
		"AAPL": quote("AAPL", "us", 0, 0),
		"MSFT": quote("MSFT", "us", 0, 0),
	}

	score := a.Aggregate(context.Background(), p, quotes)
	require.NotNil(t, score)

	assert.Equal(t, -25.0, score.ConcentrationPenalty, "100% in one region is heavy concentration")
	assert.Equal(t, 30.0, score.RegionScore)
}

func TestAggregate_FourEqualRegions(t *testing.T) {
	a := testAggregator(contracts.RegimeNeutral)

	p := &contracts.Portfolio{Positions: []contracts.Position{
		{Symbol: "AAPL"}, {Symbol: "SAP"}, {Symbol: "7203"}, {Symbol: "RIO"},
	}}
	quotes := map[string]*contracts.MarketQuote{
		"AAPL": quote("AAPL", "us", 0, 0),
		"SAP":  quote("SAP", "eu", 0, 0),
		"7203": quote("7203", "asia", 0, 0),
		"RIO":  quote("RIO", "au", 0, 0),
	}

	score := a.Aggregate(context.Background(), p, quotes)
	require.NotNil(t, score)

	assert.Equal(t, 0.0, score.ConcentrationPenalty, "four equal regions carry no penalty")
	assert.Equal(t, 100.0, score.RegionScore, "region bonus saturates at 100")

	// momentum 50*0.6 + region 100*0.3 + 50*0.1 = 65
	assert.Equal(t, 65, score.FinalScore)
}

func TestAggregate_PhaseAdjustment(t *testing.T) {
	p := &contracts.Portfolio{Positions: []contracts.Position{{Symbol: "AAPL"}}}
	quotes := map[string]*contracts.MarketQuote{"AAPL": quote("AAPL", "us", 0, 0)}

	neutral := testAggregator(contracts.RegimeNeutral).Aggregate(context.Background(), p, quotes)
	riskOn := testAggregator(contracts.RegimeRiskOn).Aggregate(context.Background(), p, quotes)
	riskOff := testAggregator(contracts.RegimeRiskOff).Aggregate(context.Background(), p, quotes)

	assert.Equal(t, neutral.FinalScore+5, riskOn.FinalScore)
	assert.Equal(t, neutral.FinalScore-8, riskOff.FinalScore)
}

func TestMomentumScore(t *testing.T) {
	tests := []struct {
		name      string
		changePct float64
		volume    float64
		want      float64
	}{
		{"strong up", 4, 0, 65},
		{"mild up", 2, 0, 58},
		{"flat", 0, 0, 50},
		{"mild down", -2, 0, 42},
		{"strong down", -5, 0, 35},
		{"heavy volume bonus", 0, 3_000_000, 55},
		{"strong up with volume", 4, 5_000_000, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, momentumScore(quote("X", "us", tt.changePct, tt.volume)))
		})
	}
}

func TestAggregate_WeightedMomentum(t *testing.T) {
	a := testAggregator(contracts.RegimeNeutral)

	// 3:1 weighting toward the strong performer
	p := &contracts.Portfolio{Positions: []contracts.Position{
		{Symbol: "UP", Weight: 3},
		{Symbol: "DOWN", Weight: 1},
	}}
	quotes := map[string]*contracts.MarketQuote{
		"UP":   quote("UP", "us", 4, 0),   // 65
		"DOWN": quote("DOWN", "eu", -4, 0), // 35
	}

	score := a.Aggregate(context.Background(), p, quotes)
	require.NotNil(t, score)

	// (65*3 + 35*1) / 4 = 57.5
	assert.InDelta(t, 57.5, score.MomentumScore, 1e-9)
}
