package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinels onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 with a generic message
// so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, service.ErrAccountBlocked):
		c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been blocked"})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock"})
	case errors.Is(err, service.ErrItemNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already reviewed this product"})
	case errors.Is(err, service.ErrCategoryExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category with this name already exists"})
	case errors.Is(err, service.ErrCouponExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code already exists"})
	case errors.Is(err, service.ErrCouponInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid coupon code"})
	case errors.Is(err, service.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has expired"})
	case errors.Is(err, service.ErrCouponMinAmount):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order amount is below the coupon minimum"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
	case errors.Is(err, service.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only JPG, PNG and WebP images are allowed"})
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"message": "File exceeds the 5MB size limit"})
	default:
		log.Printf("[ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
