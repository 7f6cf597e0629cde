package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/hqs/backend/internal/region"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// QuoteHandler handles market quote API endpoints
// ⭐ SSOT: 시세 API 핸들러는 이 구조체에서만
type QuoteHandler struct {
	dispatcher *region.Dispatcher
	logger     *logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(dispatcher *region.Dispatcher, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		dispatcher: dispatcher,
		logger:     log,
	}
}

// GetQuote returns the normalized quote for one symbol
// GET /api/quote/{symbol}?region=us
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]
	regionName := r.URL.Query().Get("region")
	if regionName == "" {
		regionName = "us"
	}

	result, err := h.dispatcher.GetQuote(ctx, symbol, regionName)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to fetch quote")
		respondError(w, http.StatusNotFound, "No quote data available for symbol")
		return
	}

	respondJSON(w, http.StatusOK, result.Quote)
}

// GetRegionQuotes returns normalized quotes for a batch of symbols in one
// region. Failed symbols are omitted, not errors.
// GET /api/quotes/{region}?symbols=AAPL,MSFT,NVDA
func (h *QuoteHandler) GetRegionQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regionName := mux.Vars(r)["region"]

	raw := strings.TrimSpace(r.URL.Query().Get("symbols"))
	if raw == "" {
		respondError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	symbols := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	quotes := h.dispatcher.FetchRegion(ctx, symbols, regionName)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"region":    regionName,
		"requested": len(symbols),
		"quotes":    quotes,
	})
}
