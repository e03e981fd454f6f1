package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Anything beyond these two values is rejected at the edge.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CartItem is a line in the user's embedded cart. The unit price is
// captured at add-time and is not refreshed when the product changes.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Address is a saved shipping address. At most one address per user may
// carry the default flag.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Label     string             `bson:"label" json:"label"` // Home | Work | Other
	FullName  string             `bson:"fullName" json:"fullName"`
	Phone     string             `bson:"phone" json:"phone"`
	Street    string             `bson:"street" json:"street"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Zip       string             `bson:"zip" json:"zip"`
	Country   string             `bson:"country" json:"country"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SavedCard holds gateway-tokenised display data only. Raw card numbers
// never reach this service.
type SavedCard struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RazorpayTokenID string             `bson:"razorpayTokenId" json:"razorpayTokenId"`
	Last4           string             `bson:"last4" json:"last4"`
	Network         string             `bson:"network" json:"network"` // Visa / Mastercard / RuPay
	Name            string             `bson:"name" json:"name"`
	Expiry          string             `bson:"expiry" json:"expiry"` // MM/YY
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// User is the account aggregate. The cart, addresses, saved cards and
// wishlist are embedded rather than kept in separate collections.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Role       string               `bson:"role" json:"role"`
	IsBlocked  bool                 `bson:"isBlocked" json:"isBlocked"`
	Wishlist   []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	Cart       []CartItem           `bson:"cart" json:"cart"`
	Addresses  []Address            `bson:"addresses" json:"addresses"`
	SavedCards []SavedCard          `bson:"savedCards" json:"savedCards"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UpsertCartItem merges quantity into an existing line for the product,
// or appends a new line priced at unitPrice.
func (u *User) UpsertCartItem(productID primitive.ObjectID, quantity int, unitPrice float64) {
	for i := range u.Cart {
		if u.Cart[i].Product == productID {
			u.Cart[i].Quantity += quantity
			return
		}
	}
	u.Cart = append(u.Cart, CartItem{Product: productID, Quantity: quantity, Price: unitPrice})
}

// SetCartQuantity replaces the quantity of an existing line. A quantity
// of zero or less removes the line. Returns false when the product is
// not in the cart.
func (u *User) SetCartQuantity(productID primitive.ObjectID, quantity int) bool {
	for i := range u.Cart {
		if u.Cart[i].Product == productID {
			if quantity <= 0 {
				u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			} else {
				u.Cart[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// RemoveCartItem drops the line for the product, if present.
func (u *User) RemoveCartItem(productID primitive.ObjectID) {
	kept := u.Cart[:0]
	for _, item := range u.Cart {
		if item.Product != productID {
			kept = append(kept, item)
		}
	}
	u.Cart = kept
}

// ToggleWishlist adds the product to the wishlist if absent, removes it
// if present. Returns true when the product ended up in the list.
func (u *User) ToggleWishlist(productID primitive.ObjectID) bool {
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return false
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return true
}

// ClearDefaultAddresses drops the default flag from every address.
// Callers flip the flag on the one address being made default in the
// same write.
func (u *User) ClearDefaultAddresses() {
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = false
	}
}

// AddressByID returns a pointer into the Addresses slice, or nil.
func (u *User) AddressByID(id primitive.ObjectID) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

// RemoveAddress deletes the address with the given id. Returns false
// when no such address exists.
func (u *User) RemoveAddress(id primitive.ObjectID) bool {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveSavedCard deletes the saved card with the given id. Returns
// false when no such card exists.
func (u *User) RemoveSavedCard(id primitive.ObjectID) bool {
	for i := range u.SavedCards {
		if u.SavedCards[i].ID == id {
			u.SavedCards = append(u.SavedCards[:i], u.SavedCards[i+1:]...)
			return true
		}
	}
	return false
}

// PublicUser is the identity subset returned by the auth endpoints.
type PublicUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

// Public strips everything but the identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
