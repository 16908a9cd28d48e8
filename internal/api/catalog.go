package api

import (
	"net/http"

	"rocketshop/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h *Handler) findProducts(c *gin.Context) {
	q := catalog.DefaultQuery()
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid catalog query", err)
		return
	}

	c.JSON(http.StatusOK, h.sessions.Find(c.Request.Context(), q))
}

func (h *Handler) catalogFacets(c *gin.Context) {
	cat := h.sessions.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"categories": cat.Categories(),
		"platforms":  cat.Platforms(),
		"sorts":      []string{catalog.SortPopular, catalog.SortPriceLow, catalog.SortPriceHigh},
	})
}
