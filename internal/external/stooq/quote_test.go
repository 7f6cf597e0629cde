package stooq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hqs/backend/pkg/config"
	"github.com/wonny/hqs/backend/pkg/logger"
)

const quotePageFixture = `
<html><body>
<table id="f13">
<tr><td>Last</td><td><span id="aq_aapl.us_c">231.58</span></td></tr>
<tr><td>Open</td><td><span id="aq_aapl.us_o">229.10</span></td></tr>
<tr><td>High</td><td><span id="aq_aapl.us_h">232.40</span></td></tr>
<tr><td>Low</td><td><span id="aq_aapl.us_l">228.75</span></td></tr>
<tr><td>Change</td><td><span id="aq_aapl.us_m2">+1.24%</span></td></tr>
<tr><td>Volume</td><td><span id="aq_aapl.us_v">48,211,305</span></td></tr>
<tr><td>Date</td><td><span id="aq_aapl.us_d4">2026-08-31</span></td></tr>
</table>
</body></html>`

func TestParseQuoteHTML(t *testing.T) {
	c := NewClient(nil, logger.New(&config.Config{LogLevel: "error"}))

	raw, err := c.parseQuoteHTML(quotePageFixture, "aapl.us")
	require.NoError(t, err)

	assert.Equal(t, "231.58", raw["price"])
	assert.Equal(t, "229.10", raw["open"])
	assert.Equal(t, "232.40", raw["high"])
	assert.Equal(t, "228.75", raw["low"])
	assert.Equal(t, "+1.24%", raw["changesPercentage"])
	assert.Equal(t, "48,211,305", raw["volume"])
	// Unmapped suffixes are skipped
	_, ok := raw["_d4"]
	assert.False(t, ok)
}

func TestParseQuoteHTML_NoPrice(t *testing.T) {
	c := NewClient(nil, logger.New(&config.Config{LogLevel: "error"}))

	_, err := c.parseQuoteHTML("<html><body></body></html>", "aapl.us")
	require.Error(t, err)
}
