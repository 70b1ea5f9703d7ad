package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oGrizz34/quant-canvas/internal/catalog"
)

// CatalogHandler publishes the node palette so editors render fields and
// defaults without hardcoding them.
type CatalogHandler struct{}

func (h *CatalogHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/catalog", h.list)
}

func (h *CatalogHandler) list(c *gin.Context) {
	kinds := catalog.Kinds()
	out := make([]catalog.Descriptor, 0, len(kinds))
	for _, k := range kinds {
		d, err := catalog.Describe(k)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	Ok(c, out)
}
