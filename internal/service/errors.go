package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrItemNotInCart      = errors.New("item not in cart")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAlreadyReviewed    = errors.New("already reviewed this product")
	ErrCategoryExists     = errors.New("category with this name already exists")
	ErrCouponExists       = errors.New("coupon code already exists")
	ErrCouponInvalid      = errors.New("invalid coupon code")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponMinAmount    = errors.New("order amount below coupon minimum")
	ErrInvalidStatus      = errors.New("invalid order status")
)
