package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	coupons service.CouponService
}

func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type applyCouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"orderAmount" binding:"required,gt=0"`
}

// Apply is the pre-checkout preview: it validates the code against the
// amount and returns the discount without consuming a use.
func (h *CouponHandler) Apply(c *gin.Context) {
	var req applyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code and a positive order amount are required"})
		return
	}

	coupon, discount, err := h.coupons.Apply(c.Request.Context(), req.Code, req.OrderAmount)
	if errors.Is(err, service.ErrCouponMinAmount) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Minimum order amount is ₹%.0f", coupon.MinOrderAmount),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"discount": discount,
		"coupon": gin.H{
			"code":          coupon.Code,
			"discountType":  coupon.DiscountType,
			"discountValue": coupon.DiscountValue,
		},
	})
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": coupons})
}

type createCouponRequest struct {
	Code           string    `json:"code" binding:"required"`
	DiscountType   string    `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discountValue" binding:"required,gt=0"`
	ExpiryDate     time.Time `json:"expiryDate" binding:"required"`
	MinOrderAmount float64   `json:"minOrderAmount"`
	IsActive       *bool     `json:"isActive"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code, discount type (percentage/fixed), a positive value and an expiry date are required"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	coupon, err := h.coupons.Create(c.Request.Context(), &model.Coupon{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		ExpiryDate:     req.ExpiryDate,
		MinOrderAmount: req.MinOrderAmount,
		IsActive:       isActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "coupon": coupon})
}

func (h *CouponHandler) Update(c *gin.Context) {
	var upd service.CouponUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	coupon, err := h.coupons.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupon": coupon})
}

func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted"})
}
