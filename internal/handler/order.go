package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	ShippingAddress model.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                `json:"paymentMethod"`
	CouponCode      string                `json:"couponCode"`
}

// Place creates a cash-on-delivery order from the caller's cart.
// Gateway orders go through the payment handler instead.
func (h *OrderHandler) Place(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Shipping address is required"})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), user.ID.Hex(), service.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	orders, err := h.orders.MyOrders(c.Request.Context(), user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// Get returns one order. Buyers can only read their own; admins can
// read any.
func (h *OrderHandler) Get(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order.User != user.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) List(c *gin.Context) {
	page := parseInt64Query(c, "page", 1)
	limit := parseInt64Query(c, "limit", 20)

	orders, total, err := h.orders.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "page": page, "total": total})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
