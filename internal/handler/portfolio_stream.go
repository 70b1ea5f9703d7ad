package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/oGrizz34/quant-canvas/internal/analytics"
	"github.com/oGrizz34/quant-canvas/internal/auth"
)

const defaultStreamInterval = 5 * time.Second

type portfolioFrame struct {
	Type      string                     `json:"type"`
	Portfolio analytics.PortfolioSummary `json:"portfolio"`
	At        time.Time                  `json:"at"`
}

// stream upgrades to a websocket and pushes the portfolio summary whenever it
// changes, polling storage at the configured interval. The first frame is sent
// immediately so clients render without waiting a full tick.
func (h *PortfolioHandler) stream(c *gin.Context) {
	user, ok := auth.UserFromGin(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logWarn("portfolio stream: accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.streamInterval())
	defer ticker.Stop()

	var last []byte
	send := func() bool {
		summary, err := h.summary(c, user)
		if err != nil {
			h.logWarn("portfolio stream: load failed", zap.Error(err))
			return true
		}
		payload, err := json.Marshal(summary)
		if err != nil {
			return true
		}
		if bytes.Equal(payload, last) {
			return true
		}
		last = payload
		frame, err := json.Marshal(portfolioFrame{
			Type:      "portfolio",
			Portfolio: summary,
			At:        time.Now().UTC(),
		})
		if err != nil {
			return true
		}
		writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := conn.Write(writeCtx, websocket.MessageText, frame); err != nil {
			return false
		}
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}

func (h *PortfolioHandler) streamInterval() time.Duration {
	if h.Cfg.StreamInterval <= 0 {
		return defaultStreamInterval
	}
	return h.Cfg.StreamInterval
}

func (h *PortfolioHandler) logWarn(msg string, fields ...zap.Field) {
	if h != nil && h.Logger != nil {
		h.Logger.Warn(msg, fields...)
	}
}
