package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Any status may be set directly by an admin; there is
// no enforced adjacency between them.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodCOD      = "COD"
	PaymentMethodRazorpay = "Razorpay"
)

// IsValidOrderStatus reports whether s is one of the known statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased line. Name, image
// and price are copied at purchase time so later product edits or
// deletions never alter historical orders.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// ShippingAddress is the address snapshot stored on the order.
type ShippingAddress struct {
	FullName string `bson:"fullName" json:"fullName"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	Zip      string `bson:"zip" json:"zip"`
	Country  string `bson:"country" json:"country"`
	Phone    string `bson:"phone" json:"phone"`
}

// StatusEntry is one append-only record in the order's status history.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	Note      string    `bson:"note" json:"note"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Order is a placed order. All amounts are computed once at creation
// and stored; nothing recomputes them on read.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID       string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	ShippingCharge  float64            `bson:"shippingCharge" json:"shippingCharge"`
	Discount        float64            `bson:"discount" json:"discount"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	CouponCode      string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	Status          string             `bson:"status" json:"status"`
	StatusHistory   []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
