package fmp

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/hqs/backend/internal/contracts"
)

type dividendResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date     string  `json:"date"`
		Dividend float64 `json:"dividend"`
	} `json:"historical"`
}

// FetchDividends fetches the dividend payment history for a symbol,
// oldest payment first.
func (c *Client) FetchDividends(ctx context.Context, symbol string) ([]contracts.DividendRecord, error) {
	var payload dividendResponse
	path := fmt.Sprintf("/historical-price-full/stock_dividend/%s", symbol)

	if err := c.fetchJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch dividends for %s: %w", symbol, err)
	}

	records := make([]contracts.DividendRecord, 0, len(payload.Historical))
	// FMP returns newest-first; callers expect chronological order
	for i := len(payload.Historical) - 1; i >= 0; i-- {
		entry := payload.Historical[i]
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		records = append(records, contracts.DividendRecord{
			ExDividendDate: date,
			CashAmount:     entry.Dividend,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(records),
	}).Debug("Fetched dividend history")
	return records, nil
}
