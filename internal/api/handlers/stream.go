package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/hqs/backend/internal/scoring"
	"github.com/wonny/hqs/backend/pkg/logger"
)

const (
	// Minimum push interval; clients asking for faster are clamped
	minStreamInterval = 5 * time.Second
	streamWriteWait   = 10 * time.Second
)

// StreamHandler pushes live HQS scores over a websocket
// ⭐ SSOT: 스코어 스트리밍은 이 핸들러에서만
type StreamHandler struct {
	service  *scoring.Service
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(service *scoring.Service, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

type scoreFrame struct {
	Type      string      `json:"type"`
	Symbol    string      `json:"symbol"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// StreamScores streams periodic score updates for the requested symbols
// until the client disconnects
// GET /api/stream/scores?symbols=AAPL,MSFT&region=us&interval=10s
func (h *StreamHandler) StreamScores(w http.ResponseWriter, r *http.Request) {
	symbols := splitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		respondError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	regionName := r.URL.Query().Get("region")
	if regionName == "" {
		regionName = "us"
	}

	interval := minStreamInterval
	if raw := r.URL.Query().Get("interval"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > minStreamInterval {
			interval = d
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithFields(map[string]interface{}{
		"symbols":  symbols,
		"interval": interval,
	}).Info("Score stream opened")

	// Reader goroutine drains control frames and signals disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := r.Context()

	// First push immediately, then on every tick
	if !h.pushScores(ctx, conn, symbols, regionName) {
		return
	}
	for {
		select {
		case <-done:
			h.logger.Debug("Score stream client disconnected")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !h.pushScores(ctx, conn, symbols, regionName) {
				return
			}
		}
	}
}

// pushScores writes one frame per symbol; returns false when the
// connection is gone
func (h *StreamHandler) pushScores(ctx context.Context, conn *websocket.Conn, symbols []string, regionName string) bool {
	for _, symbol := range symbols {
		frame := scoreFrame{
			Type:      "score",
			Symbol:    symbol,
			Timestamp: time.Now().UTC(),
		}

		result, err := h.service.Score(ctx, symbol, regionName)
		if err != nil {
			frame.Type = "error"
			frame.Error = "no quote data available"
		} else {
			frame.Data = result
		}

		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.WithError(err).Debug("Score stream write failed, closing")
			return false
		}
	}
	return true
}

func splitSymbols(raw string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
