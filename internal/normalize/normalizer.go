package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// Normalizer converts heterogeneous provider payloads into the canonical
// MarketQuote shape. Field aliasing is table-driven: each canonical field
// lists the provider keys it may arrive under, in priority order.
// ⭐ SSOT: 시세 정규화는 이 패키지에서만

// fieldAliases maps canonical numeric fields to their provider-specific keys.
// Short keys (c, pc, dp, ...) come from Finnhub-style payloads.
var fieldAliases = map[string][]string{
	"price":             {"price", "c", "last", "close"},
	"change":            {"change", "d"},
	"changesPercentage": {"changesPercentage", "dp", "changePercent", "change_percent"},
	"high":              {"high", "dayHigh", "h"},
	"low":               {"low", "dayLow", "l"},
	"open":              {"open", "o"},
	"previousClose":     {"previousClose", "pc", "prevClose", "previous_close"},
	"volume":            {"volume", "v", "vol"},
}

var symbolAliases = []string{"symbol", "ticker"}
var exchangeAliases = []string{"exchange", "exchangeShortName", "mic"}

// Normalize converts a raw provider record into a MarketQuote. Returns nil
// when the record yields no usable symbol; this is a filter, not an error.
func Normalize(raw contracts.RawQuote, source, region string) *contracts.MarketQuote {
	if raw == nil {
		return nil
	}

	symbol := extractSymbol(raw)
	if symbol == "" {
		return nil
	}

	if region == "" {
		region = "unknown"
	}

	q := &contracts.MarketQuote{
		Symbol:    symbol,
		Exchange:  extractExchange(raw),
		Region:    region,
		Timestamp: time.Now().UTC(),
		Source:    source,
	}

	q.Price = field(raw, "price")
	q.Change = field(raw, "change")
	q.ChangesPercentage = field(raw, "changesPercentage")
	q.High = field(raw, "high")
	q.Low = field(raw, "low")
	q.Open = field(raw, "open")
	q.PreviousClose = field(raw, "previousClose")
	q.Volume = field(raw, "volume")

	// Derive percent change when the provider omitted it
	if q.ChangesPercentage == nil && q.Price != nil && q.PreviousClose != nil && *q.PreviousClose != 0 {
		pct := (*q.Price - *q.PreviousClose) / *q.PreviousClose * 100
		q.ChangesPercentage = contracts.Float(pct)
	}

	return q
}

// NormalizeBatch normalizes a list of raw records, dropping any that fail to
// yield a symbol. One bad record does not affect the rest.
func NormalizeBatch(raws []contracts.RawQuote, source, region string) []*contracts.MarketQuote {
	quotes := make([]*contracts.MarketQuote, 0, len(raws))
	for _, raw := range raws {
		if q := Normalize(raw, source, region); q != nil {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// extractSymbol trims and upper-cases the first symbol alias present.
func extractSymbol(raw contracts.RawQuote) string {
	for _, key := range symbolAliases {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return strings.ToUpper(strings.TrimSpace(s))
			}
		}
	}
	return ""
}

func extractExchange(raw contracts.RawQuote) *string {
	for _, key := range exchangeAliases {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				trimmed := strings.TrimSpace(s)
				return &trimmed
			}
		}
	}
	return nil
}

// field resolves the first present alias of a canonical field and coerces it.
func field(raw contracts.RawQuote, canonical string) *float64 {
	for _, key := range fieldAliases[canonical] {
		if v, ok := raw[key]; ok {
			if f, ok := coerce(v); ok {
				return contracts.Float(f)
			}
		}
	}
	return nil
}

// Value coerces the first present key of a raw payload into a finite
// float. It is the escape hatch for provider-specific fields that sit
// outside the canonical quote schema (avgVolume, marketCap).
func Value(raw contracts.RawQuote, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if f, ok := coerce(v); ok {
				return contracts.Float(f)
			}
		}
	}
	return nil
}

// coerce converts a provider value into a finite float64. Strings are
// stripped of '%' and decimal commas become decimal points before parsing.
// Non-finite results are rejected, never propagated.
func coerce(v interface{}) (float64, bool) {
	var f float64

	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, "%", "")
		s = strings.ReplaceAll(s, ",", ".")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
