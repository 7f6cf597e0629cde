package region

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/normalize"
	"github.com/wonny/hqs/backend/pkg/logger"
	"github.com/wonny/hqs/backend/pkg/redis"
)

// Result pairs a normalized quote with the raw payload it came from.
// Callers that need provider-specific fields outside the canonical
// schema (avgVolume, marketCap) read them off Raw.
type Result struct {
	Quote *contracts.MarketQuote
	Raw   contracts.RawQuote
}

// Dispatcher routes quote requests to an ordered provider chain per
// region and normalizes whatever comes back.
// ⭐ SSOT: 지역별 시세 라우팅은 이 디스패처에서만
type Dispatcher struct {
	chains       map[string][]contracts.QuoteProvider
	defaultChain []contracts.QuoteProvider
	cache        *redis.Cache
	quoteTTL     time.Duration
	logger       *logger.Logger
}

// NewDispatcher creates a dispatcher with the given per-region provider
// chains. defaultChain serves any region without an explicit chain.
// cache may be nil, which disables quote caching.
func NewDispatcher(chains map[string][]contracts.QuoteProvider, defaultChain []contracts.QuoteProvider, cache *redis.Cache, quoteTTL time.Duration, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		chains:       chains,
		defaultChain: defaultChain,
		cache:        cache,
		quoteTTL:     quoteTTL,
		logger:       log,
	}
}

// chainFor returns the provider chain for a region
func (d *Dispatcher) chainFor(region string) []contracts.QuoteProvider {
	if chain, ok := d.chains[strings.ToLower(region)]; ok {
		return chain
	}
	return d.defaultChain
}

// GetQuote fetches a quote for one symbol, walking the region's provider
// chain in order until one returns a usable payload. A fresh cached quote
// short-circuits the chain.
func (d *Dispatcher) GetQuote(ctx context.Context, symbol, region string) (*Result, error) {
	if d.cache != nil {
		var cached contracts.MarketQuote
		found, err := d.cache.Get(ctx, redis.QuoteKey(symbol), &cached)
		if err != nil {
			d.logger.WithError(err).WithField("symbol", symbol).Warn("Quote cache lookup failed")
		}
		if found {
			return &Result{Quote: &cached}, nil
		}
	}

	chain := d.chainFor(region)
	if len(chain) == 0 {
		return nil, fmt.Errorf("no quote providers configured for region %s", region)
	}

	var lastErr error
	for _, provider := range chain {
		raw, err := provider.FetchQuote(ctx, symbol)
		if err != nil {
			d.logger.WithError(err).WithFields(map[string]interface{}{
				"symbol":   symbol,
				"provider": provider.Name(),
			}).Warn("Quote provider failed, trying next")
			lastErr = err
			continue
		}

		quote := normalize.Normalize(raw, provider.Name(), region)
		if quote == nil {
			lastErr = fmt.Errorf("provider %s returned unusable payload for %s", provider.Name(), symbol)
			continue
		}

		if d.cache != nil {
			if err := d.cache.Set(ctx, redis.QuoteKey(symbol), quote, d.quoteTTL); err != nil {
				d.logger.WithError(err).WithField("symbol", symbol).Warn("Quote cache write failed")
			}
		}

		return &Result{Quote: quote, Raw: raw}, nil
	}

	return nil, fmt.Errorf("all providers failed for %s: %w", symbol, lastErr)
}

// FetchRegion fetches quotes for a batch of symbols in one region.
// Symbols are fetched sequentially to respect provider rate limits, and
// a failed symbol is skipped rather than aborting the batch.
func (d *Dispatcher) FetchRegion(ctx context.Context, symbols []string, region string) []*contracts.MarketQuote {
	quotes := make([]*contracts.MarketQuote, 0, len(symbols))

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}

		result, err := d.GetQuote(ctx, symbol, region)
		if err != nil {
			d.logger.WithError(err).WithFields(map[string]interface{}{
				"symbol": symbol,
				"region": region,
			}).Warn("Skipping symbol in region batch")
			continue
		}
		quotes = append(quotes, result.Quote)
	}

	d.logger.WithFields(map[string]interface{}{
		"region":    region,
		"requested": len(symbols),
		"fetched":   len(quotes),
	}).Debug("Region batch complete")
	return quotes
}
