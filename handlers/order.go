package handlers

import (
	"net/http"

	"storefront-api/services"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeOrderRequest struct {
	CartID        string `json:"cartId" binding:"required,uuid"`
	AddressID     string `json:"addressId" binding:"required,uuid"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// Guest fields carry no required tags: a missing email is reported by the
// service before any missing id. Malformed ids still fail at binding.
type guestOrderRequest struct {
	Email         string `json:"email"`
	CartID        string `json:"cartId" binding:"omitempty,uuid"`
	AddressID     string `json:"addressId" binding:"omitempty,uuid"`
	TransactionID string `json:"transactionId"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.PlaceOrderForUser(c.Request.Context(), principal, services.OrderRequest{
		CartID:        optionalUUID(req.CartID),
		AddressID:     optionalUUID(req.AddressID),
		TransactionID: req.TransactionID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) PlaceGuestOrder(c *gin.Context) {
	var req guestOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.PlaceGuestOrder(c.Request.Context(), services.GuestOrderRequest{
		Email: req.Email,
		OrderRequest: services.OrderRequest{
			CartID:        optionalUUID(req.CartID),
			AddressID:     optionalUUID(req.AddressID),
			TransactionID: req.TransactionID,
		},
	})
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	orders, err := h.Orders.GetOrdersForUser(c.Request.Context(), principal)
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder answers unknown or foreign orders with a 422 envelope written here
// rather than by the error middleware. Clients already depend on that status.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, services.ErrOrderNotFound.Error())
		return
	}

	products, err := h.Orders.GetOrderDetail(c.Request.Context(), principal, orderID)
	if errors.Is(err, services.ErrOrderNotFound) {
		utils.RespondError(c, http.StatusUnprocessableEntity, services.ErrOrderNotFound.Error())
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"products": products})
}
