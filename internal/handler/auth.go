package handler

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/auth"
	"github.com/DhanunjayTheDev/ecombazaar/internal/infrastructure"
	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns registration, login and the authenticated account
// surface: profile, addresses, saved cards and the wishlist.
type AuthHandler struct {
	users    service.UserService
	products service.ProductService
	carts    service.CartService
	tokens   *auth.Service
	cfg      *infrastructure.Config
}

func NewAuthHandler(users service.UserService, products service.ProductService, carts service.CartService, tokens *auth.Service, cfg *infrastructure.Config) *AuthHandler {
	return &AuthHandler{users: users, products: products, carts: carts, tokens: tokens, cfg: cfg}
}

// sendToken issues a session token as both a cookie and a response
// field, so browser storefronts and token-based clients work alike.
func (h *AuthHandler) sendToken(c *gin.Context, user *model.User, status int) {
	token, err := h.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(h.tokens.TTL().Seconds()), "/", "", h.cfg.Production(), true)

	c.JSON(status, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide name, email and a password of at least 6 characters"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.sendToken(c, user, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.sendToken(c, user, http.StatusOK)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", h.cfg.Production(), true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Profile returns the account with the wishlist and cart populated with
// their current product documents.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	wishlist, err := h.products.ByIDs(c.Request.Context(), user.Wishlist)
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := h.carts.Get(c.Request.Context(), user.ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"user":       user,
		"wishlist":   wishlist,
		"cart":       cart,
		"addresses":  user.Addresses,
		"savedCards": user.SavedCards,
	})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Password != "" && len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID.Hex(), req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated.Public()})
}

func (h *AuthHandler) AddAddress(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var addr model.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address"})
		return
	}

	addresses, err := h.users.AddAddress(c.Request.Context(), user.ID.Hex(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "addresses": addresses})
}

func (h *AuthHandler) UpdateAddress(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var upd service.AddressUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid address"})
		return
	}

	addresses, err := h.users.UpdateAddress(c.Request.Context(), user.ID.Hex(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addresses})
}

func (h *AuthHandler) DeleteAddress(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	addresses, err := h.users.DeleteAddress(c.Request.Context(), user.ID.Hex(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addresses})
}

func (h *AuthHandler) AddCard(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	var card model.SavedCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid card details"})
		return
	}

	cards, err := h.users.AddCard(c.Request.Context(), user.ID.Hex(), card)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "savedCards": cards})
}

func (h *AuthHandler) DeleteCard(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	cards, err := h.users.DeleteCard(c.Request.Context(), user.ID.Hex(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "savedCards": cards})
}

// ToggleWishlist adds the product when absent and removes it when
// present.
func (h *AuthHandler) ToggleWishlist(c *gin.Context) {
	user, _ := middleware.GetUserFromContext(c)

	wishlist, err := h.users.ToggleWishlist(c.Request.Context(), user.ID.Hex(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": wishlist})
}
