package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Coupon is a discount code. Codes are stored uppercase and matched
// case-insensitively by uppercasing the lookup. The used count only ever
// goes up; there is no per-user cap.
type Coupon struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code           string             `bson:"code" json:"code"`
	DiscountType   string             `bson:"discountType" json:"discountType"`
	DiscountValue  float64            `bson:"discountValue" json:"discountValue"`
	ExpiryDate     time.Time          `bson:"expiryDate" json:"expiryDate"`
	MinOrderAmount float64            `bson:"minOrderAmount" json:"minOrderAmount"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	UsedCount      int                `bson:"usedCount" json:"usedCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
