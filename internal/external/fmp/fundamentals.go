package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/wonny/hqs/backend/internal/contracts"
)

type incomeStatementEntry struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	NetIncome float64 `json:"netIncome"`
	EPS       float64 `json:"eps"`
	EBITDA    float64 `json:"ebitda"`
}

// FetchFundamentals fetches annual income statements for a symbol,
// newest fiscal year first.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) ([]contracts.FundamentalRecord, error) {
	var payload []incomeStatementEntry
	path := fmt.Sprintf("/income-statement/%s", symbol)
	params := url.Values{}
	params.Set("period", "annual")
	params.Set("limit", "10")

	if err := c.fetchJSON(ctx, path, params, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}

	records := make([]contracts.FundamentalRecord, 0, len(payload))
	// FMP already returns newest-first, which is what the scorer expects
	for _, entry := range payload {
		if len(entry.Date) < 4 {
			continue
		}
		year, err := strconv.Atoi(entry.Date[:4])
		if err != nil {
			continue
		}
		records = append(records, contracts.FundamentalRecord{
			Year:      year,
			Revenue:   entry.Revenue,
			NetIncome: entry.NetIncome,
			EPS:       entry.EPS,
			EBITDA:    entry.EBITDA,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"years":  len(records),
	}).Debug("Fetched fundamentals")
	return records, nil
}
