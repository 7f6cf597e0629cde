package region

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

type stubProvider struct {
	name   string
	quotes map[string]contracts.RawQuote
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchQuote(ctx context.Context, symbol string) (contracts.RawQuote, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	raw, ok := p.quotes[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return raw, nil
}

func testDispatcher(chains map[string][]contracts.QuoteProvider, fallback []contracts.QuoteProvider) *Dispatcher {
	log := logger.New(&config.Config{LogLevel: "error"})
	return NewDispatcher(chains, fallback, nil, 0, log)
}

func TestGetQuote_FirstProviderWins(t *testing.T) {
	primary := &stubProvider{
		name:   "fmp",
		quotes: map[string]contracts.RawQuote{"AAPL": {"symbol": "AAPL", "price": 231.58}},
	}
	backup := &stubProvider{name: "stooq"}

	d := testDispatcher(map[string][]contracts.QuoteProvider{
		"us": {primary, backup},
	}, nil)

	result, err := d.GetQuote(context.Background(), "AAPL", "us")
	require.NoError(t, err)
	require.NotNil(t, result.Quote)
	assert.Equal(t, "AAPL", result.Quote.Symbol)
	assert.Equal(t, "fmp", result.Quote.Source)
	assert.Equal(t, "us", result.Quote.Region)
	assert.Equal(t, 0, backup.calls)
}

func TestGetQuote_FallsThroughChain(t *testing.T) {
	primary := &stubProvider{name: "fmp", err: errors.New("rate limited")}
	backup := &stubProvider{
		name:   "stooq",
		quotes: map[string]contracts.RawQuote{"SAP": {"symbol": "SAP", "price": "231,58"}},
	}

	d := testDispatcher(map[string][]contracts.QuoteProvider{
		"eu": {primary, backup},
	}, nil)

	result, err := d.GetQuote(context.Background(), "SAP", "eu")
	require.NoError(t, err)
	assert.Equal(t, "stooq", result.Quote.Source)
	assert.Equal(t, 231.58, contracts.Num(result.Quote.Price))
	assert.Equal(t, 1, primary.calls)
}

func TestGetQuote_AllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "fmp", err: errors.New("down")}

	d := testDispatcher(map[string][]contracts.QuoteProvider{
		"us": {primary},
	}, nil)

	result, err := d.GetQuote(context.Background(), "AAPL", "us")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestGetQuote_UnknownRegionUsesDefaultChain(t *testing.T) {
	fallback := &stubProvider{
		name:   "fmp",
		quotes: map[string]contracts.RawQuote{"BHP": {"symbol": "BHP", "price": 42.0}},
	}

	d := testDispatcher(nil, []contracts.QuoteProvider{fallback})

	result, err := d.GetQuote(context.Background(), "BHP", "oceania")
	require.NoError(t, err)
	assert.Equal(t, "oceania", result.Quote.Region)
}

func TestGetQuote_NoChain(t *testing.T) {
	d := testDispatcher(nil, nil)

	_, err := d.GetQuote(context.Background(), "AAPL", "us")
	require.Error(t, err)
}

func TestFetchRegion_SkipsFailedSymbols(t *testing.T) {
	provider := &stubProvider{
		name: "fmp",
		quotes: map[string]contracts.RawQuote{
			"AAPL": {"symbol": "AAPL", "price": 231.58},
			"MSFT": {"symbol": "MSFT", "price": 512.04},
		},
	}

	d := testDispatcher(map[string][]contracts.QuoteProvider{
		"us": {provider},
	}, nil)

	quotes := d.FetchRegion(context.Background(), []string{"AAPL", "BOGUS", "MSFT"}, "us")
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "MSFT", quotes[1].Symbol)
}
