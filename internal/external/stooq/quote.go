package stooq

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/hqs/backend/internal/contracts"
)

// Suffixes of the span IDs on the Stooq quote page, mapped to the field
// names the downstream mapping table understands.
var fieldSuffixes = map[string]string{
	"_c":  "price",
	"_o":  "open",
	"_h":  "high",
	"_l":  "low",
	"_m2": "changesPercentage",
	"_v":  "volume",
}

// FetchQuote scrapes the latest quote for a symbol from the Stooq quote
// page. Stooq lowercases symbols and suffixes non-Polish listings with a
// market code (aapl.us, sap.de); callers pass the full Stooq symbol.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (contracts.RawQuote, error) {
	stooqSymbol := strings.ToLower(symbol)

	params := url.Values{}
	params.Set("s", stooqSymbol)

	html, err := c.fetchHTML(ctx, "/q/", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote page for %s: %w", symbol, err)
	}

	raw, err := c.parseQuoteHTML(html, stooqSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote page for %s: %w", symbol, err)
	}
	raw["symbol"] = symbol

	c.logger.WithField("symbol", symbol).Debug("Scraped Stooq quote")
	return raw, nil
}

// parseQuoteHTML extracts quote fields from the page. Live values sit in
// spans with IDs like aq_aapl.us_c; numbers are passed through as strings
// and coerced downstream.
func (c *Client) parseQuoteHTML(html string, stooqSymbol string) (contracts.RawQuote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	raw := contracts.RawQuote{}
	prefix := "aq_" + stooqSymbol

	doc.Find("span[id^='" + prefix + "']").Each(func(i int, span *goquery.Selection) {
		id, ok := span.Attr("id")
		if !ok {
			return
		}
		suffix := strings.TrimPrefix(id, prefix)
		field, ok := fieldSuffixes[suffix]
		if !ok {
			return
		}
		text := strings.TrimSpace(span.Text())
		if text == "" || text == "-" {
			return
		}
		raw[field] = text
	})

	if _, ok := raw["price"]; !ok {
		return nil, fmt.Errorf("no price on quote page")
	}

	return raw, nil
}
