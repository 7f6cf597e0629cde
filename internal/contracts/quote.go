package contracts

import "time"

// RawQuote is an arbitrary provider payload before normalization.
// Provider adapters return this shape; only the normalizer reads it.
type RawQuote map[string]interface{}

// MarketQuote is the canonical quote shape every provider payload is
// normalized into before scoring
// ⭐ SSOT: 시세 데이터 정규화 스키마는 여기서만 정의
type MarketQuote struct {
	Symbol   string  `json:"symbol"`
	Exchange *string `json:"exchange"`
	Region   string  `json:"region"`

	// Numeric fields are nil when the provider did not supply a usable
	// value. They are never NaN or Inf.
	Price             *float64 `json:"price"`
	Change            *float64 `json:"change"`
	ChangesPercentage *float64 `json:"changesPercentage"`
	High              *float64 `json:"high"`
	Low               *float64 `json:"low"`
	Open              *float64 `json:"open"`
	PreviousClose     *float64 `json:"previousClose"`
	Volume            *float64 `json:"volume"`

	// Timestamp is stamped at normalization time, not the provider's
	// quote time. Provider time, when needed, is read from the raw payload.
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Num returns the value of a nullable numeric field, or 0 when absent.
// Scoring inputs default missing numerics to 0.
func Num(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v, for building quotes in tests and adapters.
func Float(v float64) *float64 {
	return &v
}

// PricePoint is one element of a historical close-price series, oldest-first.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// DividendRecord is a single dividend payment. A chronologically ascending
// sequence of these is a dividend history.
type DividendRecord struct {
	ExDividendDate time.Time `json:"exDividendDate"`
	CashAmount     float64   `json:"cashAmount"`
}

// FundamentalRecord is one fiscal year of fundamentals, ordered newest-first
// for stability scoring (index 0 = latest year).
type FundamentalRecord struct {
	Year      int     `json:"year"`
	Revenue   float64 `json:"revenue"`
	NetIncome float64 `json:"netIncome"`
	EPS       float64 `json:"eps"`
	EBITDA    float64 `json:"ebitda"`
}
