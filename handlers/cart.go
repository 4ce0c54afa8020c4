package handlers

import (
	"net/http"

	"storefront-api/services"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts *services.CartService
}

func (h *CartHandler) GetCart(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	cart, err := h.Carts.GetCartWithProducts(c.Request.Context(), principal)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"cart": cart})
}

func (h *CartHandler) AddProduct(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "id", "product id must be a valid ID")
	if !ok {
		return
	}

	if err := h.Carts.AddProduct(c.Request.Context(), principal, productID); err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusCreated, gin.H{"message": "Item added successfully"})
}

func (h *CartHandler) RemoveProduct(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "id", "product id must be a valid ID")
	if !ok {
		return
	}

	if err := h.Carts.RemoveProduct(c.Request.Context(), principal, productID); err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"message": "product removed from cart successfully"})
}
