package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oGrizz34/quant-canvas/internal/analytics"
	"github.com/oGrizz34/quant-canvas/internal/auth"
	"github.com/oGrizz34/quant-canvas/internal/config"
	"github.com/oGrizz34/quant-canvas/internal/repository"
)

// PortfolioHandler aggregates the caller's trades across all of their
// strategies into one portfolio view.
type PortfolioHandler struct {
	Repo   repository.Repository
	Cfg    config.PortfolioConfig
	Logger *zap.Logger
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/portfolio")
	g.GET("", h.get)
	g.GET("/stream", h.stream)
}

func (h *PortfolioHandler) get(c *gin.Context) {
	user, ok := auth.UserFromGin(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	summary, err := h.summary(c, user)
	if err != nil {
		Error(c, http.StatusInternalServerError, "load portfolio failed")
		return
	}
	Ok(c, summary)
}

func (h *PortfolioHandler) summary(c *gin.Context, user auth.User) (analytics.PortfolioSummary, error) {
	trades, err := h.Repo.ListTradesByOwner(c.Request.Context(), user.ID)
	if err != nil {
		return analytics.PortfolioSummary{}, err
	}
	return analytics.Portfolio(trades), nil
}
