package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/hqs/backend/internal/contracts"
)

type historyResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// FetchHistory fetches up to days of daily closing prices for a symbol,
// oldest day first.
func (c *Client) FetchHistory(ctx context.Context, symbol string, days int) ([]contracts.PricePoint, error) {
	var payload historyResponse
	path := fmt.Sprintf("/historical-price-full/%s", symbol)
	params := url.Values{}
	params.Set("timeseries", strconv.Itoa(days))

	if err := c.fetchJSON(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}

	points := make([]contracts.PricePoint, 0, len(payload.Historical))
	// FMP returns newest-first; callers expect chronological order
	for i := len(payload.Historical) - 1; i >= 0; i-- {
		entry := payload.Historical[i]
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		points = append(points, contracts.PricePoint{
			Date:  date,
			Close: entry.Close,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"days":   len(points),
	}).Debug("Fetched price history")
	return points, nil
}
