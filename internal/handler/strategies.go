package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oGrizz34/quant-canvas/internal/auth"
	"github.com/oGrizz34/quant-canvas/internal/catalog"
	"github.com/oGrizz34/quant-canvas/internal/graph"
	"github.com/oGrizz34/quant-canvas/internal/service"
)

// StrategyHandler exposes the strategy lifecycle under /api/v1/strategies.
type StrategyHandler struct {
	Service *service.StrategyService
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/strategies")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/activate", h.activate)
	g.POST("/:id/deactivate", h.deactivate)
	g.GET("/:id/analytics", h.analytics)
}

func (h *StrategyHandler) list(c *gin.Context) {
	user, ok := auth.UserFromGin(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	items, err := h.Service.ListOwn(c.Request.Context(), user)
	if err != nil {
		Error(c, http.StatusInternalServerError, "list strategies failed")
		return
	}
	Ok(c, items)
}

func (h *StrategyHandler) create(c *gin.Context) {
	user, ok := auth.UserFromGin(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	var in service.SaveStrategyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.Service.Create(c.Request.Context(), user, in)
	if err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, item)
}

func (h *StrategyHandler) get(c *gin.Context) {
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
	item, err := h.Service.Get(c.Request.Context(), user, id)
	if err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, item)
}

func (h *StrategyHandler) update(c *gin.Context) {
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
	var in service.SaveStrategyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.Service.Save(c.Request.Context(), user, id, in)
	if err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, item)
}

func (h *StrategyHandler) delete(c *gin.Context) {
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
	if err := h.Service.Delete(c.Request.Context(), user, id); err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id})
}

func (h *StrategyHandler) activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *StrategyHandler) deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *StrategyHandler) setActive(c *gin.Context, active bool) {
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
	if err := h.Service.SetActive(c.Request.Context(), user, id, active); err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, gin.H{"id": id, "is_active": active})
}

func (h *StrategyHandler) analytics(c *gin.Context) {
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
	out, err := h.Service.Analytics(c.Request.Context(), user, id)
	if err != nil {
		writeStrategyError(c, err)
		return
	}
	Ok(c, out)
}

// writeStrategyError maps service errors onto HTTP statuses. A document that
// fails validation on load is reported as unprocessable, not as a server
// fault, so clients can distinguish a corrupt strategy from an outage.
func writeStrategyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStrategyNotFound):
		Error(c, http.StatusNotFound, "strategy not found")
	case errors.Is(err, service.ErrNotOwner):
		Error(c, http.StatusForbidden, "not the strategy owner")
	case errors.Is(err, service.ErrInvalidName):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, graph.ErrCorruptDocument), errors.Is(err, catalog.ErrUnknownKind):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal error")
	}
}
