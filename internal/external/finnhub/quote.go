package finnhub

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// FetchQuote fetches the latest quote for a symbol.
// Finnhub uses short field names (c, pc, h, l, o, dp); the raw payload is
// passed through untouched and mapped downstream. The response carries no
// symbol, so the requested ticker is stamped in.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (contracts.RawQuote, error) {
	var payload map[string]interface{}
	params := url.Values{}
	params.Set("symbol", symbol)

	if err := c.fetchJSON(ctx, "/quote", params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	// Finnhub returns all-zero quotes for unknown symbols
	if price, ok := payload["c"].(float64); !ok || price == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	payload["ticker"] = symbol

	c.logger.WithField("symbol", symbol).Debug("Fetched Finnhub quote")
	return contracts.RawQuote(payload), nil
}
