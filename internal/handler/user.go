package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler is the admin user management surface.
type UserHandler struct {
	users  service.UserService
	orders service.OrderService
}

func NewUserHandler(users service.UserService, orders service.OrderService) *UserHandler {
	return &UserHandler{users: users, orders: orders}
}

// List returns customer accounts, paginated. Admin accounts are not
// listed.
func (h *UserHandler) List(c *gin.Context) {
	page := parseInt64Query(c, "page", 1)
	limit := parseInt64Query(c, "limit", 20)

	users, total, err := h.users.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "page": page, "total": total})
}

// ToggleBlock flips the account's blocked flag.
func (h *UserHandler) ToggleBlock(c *gin.Context) {
	user, err := h.users.ToggleBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "User unblocked"
	if user.IsBlocked {
		msg = "User blocked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

// Orders lists a customer's order history for the admin detail view.
func (h *UserHandler) Orders(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
