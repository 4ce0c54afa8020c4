package handlers

import (
	"net/http"

	"storefront-api/apperror"
	"storefront-api/services"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GetProducts lists one page of the catalog. category, brand, q, type and the
// price/rating bounds all narrow the same result.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var query services.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperror.Unprocessable("Invalid query parameters").WithCause(err))
		return
	}

	listing, err := h.Catalog.ListProducts(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, listing)
}
