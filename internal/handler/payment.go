package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler drives the gateway checkout flow: create a payment
// intent, verify the callback signature, then materialize the order.
type PaymentHandler struct {
	payments service.PaymentService
	orders   service.OrderService
}

func NewPaymentHandler(payments service.PaymentService, orders service.OrderService) *PaymentHandler {
	return &PaymentHandler{payments: payments, orders: orders}
}

type createPaymentOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

// CreateOrder registers a payment intent with the gateway. The amount
// is the storefront's computed total; the server-side order is only
// created after payment.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req createPaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A positive amount is required"})
		return
	}

	order, err := h.payments.CreateGatewayOrder(req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// Verify checks the signature the gateway attached to a completed
// payment.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment details are required"})
		return
	}

	if !h.payments.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}

type placeAfterPaymentRequest struct {
	RazorpayPaymentID string                `json:"razorpay_payment_id" binding:"required"`
	ShippingAddress   model.ShippingAddress `json:"shippingAddress" binding:"required"`
	CouponCode        string                `json:"couponCode"`
}

// PlaceAfterPayment materializes the order from the caller's cart with
// the payment already recorded.
func (h *PaymentHandler) PlaceAfterPayment(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req placeAfterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment id and shipping address are required"})
		return
	}

	order, err := h.orders.PlaceOrderAfterPayment(c.Request.Context(), user.ID.Hex(), service.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   model.PaymentMethodRazorpay,
		CouponCode:      req.CouponCode,
		PaymentID:       req.RazorpayPaymentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}
