package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//
// --- Shopify Catalog Proxy ---
//
// The product picker talks to these instead of Shopify directly, so
// the access token never leaves the server.
//

// SearchProducts is the handler for GET /v1/products/search.
func (h *Handlers) SearchProducts(c *gin.Context) {
	term := c.Query("query")

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	summaries, err := h.Shopify.SearchProducts(c.Request.Context(), term, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": summaries})
}

// GetProduct is the handler for GET /v1/products/:id. The :id param
// is the numeric tail of the Shopify product GID.
func (h *Handlers) GetProduct(c *gin.Context) {
	gid := "gid://shopify/Product/" + c.Param("id")

	product, err := h.Shopify.GetProduct(c.Request.Context(), gid)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
