package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/normalize"
	"github.com/wonny/hqs/backend/internal/region"
	"github.com/wonny/hqs/backend/internal/stats"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// QuoteSource resolves a symbol to a normalized quote plus its raw payload
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol, region string) (*region.Result, error)
}

// Service assembles the inputs for one symbol and runs the blend.
// Provider failures on optional inputs (dividends, fundamentals, history)
// are logged and degrade the score rather than failing the request.
// ⭐ SSOT: 심볼 단위 스코어링 조립은 이 서비스에서만
type Service struct {
	quotes       QuoteSource
	dividends    contracts.DividendProvider
	fundamentals contracts.FundamentalsProvider
	history      contracts.HistoryProvider
	engine       *Engine
	historyDays  int
	logger       *logger.Logger
}

// NewService creates a scoring service. dividends, fundamentals and
// history may be nil, which limits scoring to the momentum base path.
func NewService(quotes QuoteSource, dividends contracts.DividendProvider, fundamentals contracts.FundamentalsProvider, history contracts.HistoryProvider, engine *Engine, historyDays int, log *logger.Logger) *Service {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Service{
		quotes:       quotes,
		dividends:    dividends,
		fundamentals: fundamentals,
		history:      history,
		engine:       engine,
		historyDays:  historyDays,
		logger:       log,
	}
}

// Score computes the HQS result for one symbol. The only hard failure is
// an unresolvable quote; everything else degrades.
func (s *Service) Score(ctx context.Context, symbol, regionName string) (*contracts.HQSResult, error) {
	result, err := s.quotes.GetQuote(ctx, symbol, regionName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve quote for %s: %w", symbol, err)
	}
	quote := result.Quote

	in := BlendInput{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		ChangePercent: quote.ChangesPercentage,
		Volume:        quote.Volume,
		AvgVolume:     normalize.Value(result.Raw, "avgVolume", "averageVolume", "avg_volume"),
		MarketCap:     normalize.Value(result.Raw, "marketCap", "mktCap", "market_cap"),
	}

	if s.dividends != nil {
		dividends, err := s.dividends.FetchDividends(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Dividend history unavailable, skipping sub-score")
		} else {
			in.Dividends = dividends
		}
	}

	if s.fundamentals != nil {
		fundamentals, err := s.fundamentals.FetchFundamentals(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals unavailable, skipping sub-score")
		} else {
			in.Fundamentals = fundamentals
		}
	}

	if s.history != nil {
		points, err := s.history.FetchHistory(ctx, symbol, s.historyDays)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Price history unavailable, skipping risk sub-score")
		} else {
			curve := make([]float64, 0, len(points))
			for _, p := range points {
				curve = append(curve, p.Close)
			}
			in.PriceCurve = curve
			in.Returns = stats.Returns(curve)
		}
	}

	return s.engine.Blend(in), nil
}

// ScoredHistory replays the blend over a close series to produce the
// dated score series the threshold backtester consumes. Only the
// momentum component varies day to day here; the slower sub-scores are
// held at their current values.
func (s *Service) ScoredHistory(ctx context.Context, symbol, regionName string, days int) ([]contracts.ScoredPrice, error) {
	if s.history == nil {
		return nil, fmt.Errorf("no history provider configured")
	}

	points, err := s.history.FetchHistory(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("insufficient history for %s", symbol)
	}

	var dividends []contracts.DividendRecord
	if s.dividends != nil {
		if d, err := s.dividends.FetchDividends(ctx, symbol); err == nil {
			dividends = d
		}
	}
	var fundamentals []contracts.FundamentalRecord
	if s.fundamentals != nil {
		if f, err := s.fundamentals.FetchFundamentals(ctx, symbol); err == nil {
			fundamentals = f
		}
	}

	series := make([]contracts.ScoredPrice, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		var changePct *float64
		if prev.Close != 0 {
			changePct = contracts.Float((cur.Close - prev.Close) / prev.Close * 100)
		}

		curve := closes(points[:i+1])
		result := s.engine.Blend(BlendInput{
			Symbol:        symbol,
			Price:         contracts.Float(cur.Close),
			ChangePercent: changePct,
			Dividends:     dividends,
			Fundamentals:  fundamentals,
			Returns:       stats.Returns(curve),
			PriceCurve:    curve,
		})

		series = append(series, contracts.ScoredPrice{
			Date:  cur.Date,
			Price: cur.Close,
			Score: float64(result.HQSScore),
		})
	}

	return series, nil
}

// BuildFactorSample measures the factor exposures of a symbol for the
// calibration pipeline. Factors come from the trailing window ending one
// day back; the sample return is the most recent daily return, so each
// sample pairs yesterday's factors with the return that followed them.
func (s *Service) BuildFactorSample(ctx context.Context, symbol, benchmark string, phase contracts.Regime) (*contracts.FactorSample, error) {
	if s.history == nil {
		return nil, fmt.Errorf("no history provider configured")
	}

	points, err := s.history.FetchHistory(ctx, symbol, 60)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	curve := closes(points)
	if len(curve) < 22 {
		return nil, fmt.Errorf("insufficient history for factor sample: %s", symbol)
	}

	window := curve[:len(curve)-1]
	windowReturns := stats.Returns(window)

	factors := map[string]float64{
		contracts.FactorMomentum:   trailingReturn(window, 20),
		contracts.FactorVolatility: stats.StdDev(windowReturns),
	}

	if benchmark != "" && benchmark != symbol {
		if benchPoints, err := s.history.FetchHistory(ctx, benchmark, 60); err == nil {
			benchReturns := stats.Returns(closes(benchPoints))
			n := len(windowReturns)
			if len(benchReturns) < n {
				n = len(benchReturns)
			}
			factors[contracts.FactorCorrelation] = stats.Pearson(
				windowReturns[len(windowReturns)-n:],
				benchReturns[len(benchReturns)-n:],
			)
		}
	}

	factors[contracts.FactorMacro] = phaseSignal(phase)

	last := curve[len(curve)-1]
	prev := curve[len(curve)-2]
	sampleReturn := 0.0
	if prev != 0 {
		sampleReturn = (last - prev) / prev
	}

	return &contracts.FactorSample{
		Timestamp: time.Now().UTC(),
		Return:    sampleReturn,
		Regime:    phase,
		Factors:   factors,
	}, nil
}

func closes(points []contracts.PricePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Close)
	}
	return out
}

// trailingReturn is the fractional return over the last n steps of curve
func trailingReturn(curve []float64, n int) float64 {
	if len(curve) < n+1 {
		n = len(curve) - 1
	}
	base := curve[len(curve)-1-n]
	if base == 0 {
		return 0
	}
	return (curve[len(curve)-1] - base) / base
}

func phaseSignal(phase contracts.Regime) float64 {
	switch phase {
	case contracts.RegimeRiskOn:
		return 1
	case contracts.RegimeRiskOff:
		return -1
	default:
		return 0
	}
}
