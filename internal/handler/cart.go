package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	cart, err := h.carts.Get(c.Request.Context(), user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Add(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product id is required"})
		return
	}

	cart, err := h.carts.Add(c.Request.Context(), user.ID.Hex(), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// Update sets an item's quantity; zero or less removes the line.
func (h *CartHandler) Update(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cart, err := h.carts.Update(c.Request.Context(), user.ID.Hex(), c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) Remove(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	cart, err := h.carts.Remove(c.Request.Context(), user.ID.Hex(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) Clear(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	if err := h.carts.Clear(c.Request.Context(), user.ID.Hex()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}
