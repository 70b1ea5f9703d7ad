package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oGrizz34/quant-canvas/internal/auth"
	"github.com/oGrizz34/quant-canvas/internal/service"
)

// CommunityHandler serves the shared-strategy marketplace: browse public
// strategies ranked by performance and clone one into your own library.
type CommunityHandler struct {
	Service *service.StrategyService
}

func (h *CommunityHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/community/strategies")
	g.GET("", h.list)
	g.POST("/:id/clone", h.clone)
}

func (h *CommunityHandler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	items, err := h.Service.ListPublic(c.Request.Context(), limit, offset)
	if err != nil {
		Error(c, http.StatusInternalServerError, "list community strategies failed")
		return
	}
	OkWithMeta(c, items, paginationMeta(limit, offset, len(items)))
}

func (h *CommunityHandler) clone(c *gin.Context) {
	user, ok := auth.UserFromGin(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := uint64Param(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid strategy id")
		return
	}
	item, err := h.Service.Clone(c.Request.Context(), user, id)
	if err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, item)
}
