package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oGrizz34/quant-canvas/internal/config"
	"github.com/oGrizz34/quant-canvas/internal/repository"
)

// SignalHandler serves the recent-signal feed the dashboard polls.
type SignalHandler struct {
	Repo repository.Repository
	Cfg  config.SignalsConfig
}

func (h *SignalHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/signals", h.list)
}

func (h *SignalHandler) list(c *gin.Context) {
	limit := intQuery(c, "limit", h.Cfg.FeedLimit)
	if limit <= 0 {
		limit = h.Cfg.FeedLimit
	}
	if h.Cfg.FeedLimitMax > 0 && limit > h.Cfg.FeedLimitMax {
		limit = h.Cfg.FeedLimitMax
	}
	items, err := h.Repo.ListRecentSignals(c.Request.Context(), limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "list signals failed")
		return
	}
	OkWithMeta(c, items, gin.H{"limit": limit, "count": len(items)})
}
