package fmp

import (
	"context"
	"fmt"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// FetchQuote fetches the latest quote for a symbol.
// The raw payload is returned as-is so the normalizer owns field mapping.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (contracts.RawQuote, error) {
	var payload []map[string]interface{}
	path := fmt.Sprintf("/quote/%s", symbol)

	if err := c.fetchJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	c.logger.WithField("symbol", symbol).Debug("Fetched FMP quote")
	return contracts.RawQuote(payload[0]), nil
}
