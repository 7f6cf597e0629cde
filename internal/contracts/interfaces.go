package contracts

import (
	"context"
	"time"
)

// QuoteProvider fetches a raw quote payload for one symbol. The payload
// shape is provider-specific; the normalizer turns it into a MarketQuote.
// ⭐ SSOT: 외부 시세 제공자 인터페이스는 여기서만 정의
type QuoteProvider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (RawQuote, error)
}

// DividendProvider fetches the dividend payment history for a symbol,
// sorted ascending by ex-dividend date.
type DividendProvider interface {
	FetchDividends(ctx context.Context, symbol string) ([]DividendRecord, error)
}

// FundamentalsProvider fetches annual fundamentals, newest fiscal year
// first (index 0 = latest).
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) ([]FundamentalRecord, error)
}

// HistoryProvider fetches a historical close-price series, oldest-first.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, symbol string, days int) ([]PricePoint, error)
}

// FactorRepository persists factor samples and weight snapshots.
// Writes are append-only; old snapshots are never rewritten.
type FactorRepository interface {
	SaveSample(ctx context.Context, sample *FactorSample) error
	SaveWeights(ctx context.Context, regime Regime, weights WeightVector, perf PerformanceStats) error
	LoadLastWeights(ctx context.Context, regime Regime) (WeightVector, error)
	LoadHistory(ctx context.Context, limit int) ([]*FactorSample, error)
	LoadHistorySince(ctx context.Context, since time.Time) ([]*FactorSample, error)
}

// PhaseDetector classifies the current market phase. Implementations return
// RegimeNeutral on any failure.
type PhaseDetector interface {
	DetectPhase(ctx context.Context) Regime
}
