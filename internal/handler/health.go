package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oGrizz34/quant-canvas/internal/db"
)

// HealthHandler serves liveness and readiness probes. Readiness requires a
// reachable database.
type HealthHandler struct {
	DB *db.DB
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)
}

func (h *HealthHandler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) readyz(c *gin.Context) {
	if h.DB == nil || db.Ping(h.DB) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
