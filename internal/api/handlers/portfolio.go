package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/hqs/backend/internal/backtest"
	"github.com/wonny/hqs/backend/internal/contracts"
	"github.com/wonny/hqs/backend/internal/portfolio"
	"github.com/wonny/hqs/backend/internal/region"
	"github.com/wonny/hqs/backend/pkg/logger"
)

// PortfolioHandler handles portfolio API endpoints
// ⭐ SSOT: 포트폴리오 API 핸들러는 이 구조체에서만
type PortfolioHandler struct {
	aggregator *portfolio.Aggregator
	dispatcher *region.Dispatcher
	simulator  *backtest.PortfolioSimulator
	logger     *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(aggregator *portfolio.Aggregator, dispatcher *region.Dispatcher, simulator *backtest.PortfolioSimulator, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		aggregator: aggregator,
		dispatcher: dispatcher,
		simulator:  simulator,
		logger:     log,
	}
}

type portfolioPosition struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
	Region string  `json:"region"`
}

type portfolioRequest struct {
	Positions []portfolioPosition `json:"positions"`
	Days      int                 `json:"days"`
	Benchmark string              `json:"benchmark"`
}

// ScorePortfolio aggregates individual quotes into one portfolio score
// POST /api/portfolio/score
func (h *PortfolioHandler) ScorePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p := &contracts.Portfolio{Positions: make([]contracts.Position, 0, len(req.Positions))}
	quotes := make(map[string]*contracts.MarketQuote, len(req.Positions))

	for _, pos := range req.Positions {
		p.Positions = append(p.Positions, contracts.Position{
			Symbol: pos.Symbol,
			Weight: pos.Weight,
		})

		regionName := pos.Region
		if regionName == "" {
			regionName = "us"
		}
		result, err := h.dispatcher.GetQuote(ctx, pos.Symbol, regionName)
		if err != nil {
			h.logger.WithError(err).WithField("symbol", pos.Symbol).Warn("Portfolio position has no quote")
			continue
		}
		quotes[pos.Symbol] = result.Quote
	}

	score := h.aggregator.Aggregate(ctx, p, quotes)
	respondJSON(w, http.StatusOK, score)
}

// BacktestPortfolio simulates the portfolio's weighted value curve over
// a trailing window
// POST /api/portfolio/backtest
func (h *PortfolioHandler) BacktestPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Positions) == 0 {
		respondError(w, http.StatusBadRequest, "At least one position is required")
		return
	}

	days := req.Days
	if days <= 0 {
		days = 180
	}

	positions := make([]contracts.Position, 0, len(req.Positions))
	for _, pos := range req.Positions {
		positions = append(positions, contracts.Position{
			Symbol: pos.Symbol,
			Weight: pos.Weight,
		})
	}

	result := h.simulator.Simulate(ctx, positions, days, req.Benchmark)
	if result == nil {
		respondError(w, http.StatusNotFound, "No overlapping price history for portfolio")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
