package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertCartItem(t *testing.T) {
	productID := primitive.NewObjectID()
	u := &User{}

	u.UpsertCartItem(productID, 2, 100)
	assert.Len(t, u.Cart, 1)
	assert.Equal(t, 2, u.Cart[0].Quantity)
	assert.Equal(t, 100.0, u.Cart[0].Price)

	// Adding the same product merges quantity and keeps the captured
	// price, even when the current price differs.
	u.UpsertCartItem(productID, 3, 80)
	assert.Len(t, u.Cart, 1)
	assert.Equal(t, 5, u.Cart[0].Quantity)
	assert.Equal(t, 100.0, u.Cart[0].Price)

	other := primitive.NewObjectID()
	u.UpsertCartItem(other, 1, 50)
	assert.Len(t, u.Cart, 2)
}

func TestSetCartQuantity(t *testing.T) {
	productID := primitive.NewObjectID()
	u := &User{Cart: []CartItem{{Product: productID, Quantity: 2, Price: 100}}}

	assert.True(t, u.SetCartQuantity(productID, 5))
	assert.Equal(t, 5, u.Cart[0].Quantity)

	// Zero or negative removes the line.
	assert.True(t, u.SetCartQuantity(productID, 0))
	assert.Empty(t, u.Cart)

	assert.False(t, u.SetCartQuantity(primitive.NewObjectID(), 1))
}

func TestRemoveCartItem(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	u := &User{Cart: []CartItem{
		{Product: a, Quantity: 1},
		{Product: b, Quantity: 2},
	}}

	u.RemoveCartItem(a)
	assert.Len(t, u.Cart, 1)
	assert.Equal(t, b, u.Cart[0].Product)

	// Removing an absent product is a no-op.
	u.RemoveCartItem(a)
	assert.Len(t, u.Cart, 1)
}

func TestToggleWishlist(t *testing.T) {
	productID := primitive.NewObjectID()
	u := &User{}

	assert.True(t, u.ToggleWishlist(productID))
	assert.Len(t, u.Wishlist, 1)

	assert.False(t, u.ToggleWishlist(productID))
	assert.Empty(t, u.Wishlist)
}

func TestClearDefaultAddresses(t *testing.T) {
	u := &User{Addresses: []Address{
		{ID: primitive.NewObjectID(), IsDefault: true},
		{ID: primitive.NewObjectID(), IsDefault: false},
		{ID: primitive.NewObjectID(), IsDefault: true},
	}}

	u.ClearDefaultAddresses()
	for i, addr := range u.Addresses {
		assert.False(t, addr.IsDefault, "address %d still default", i)
	}
}

func TestRemoveAddress(t *testing.T) {
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()
	u := &User{Addresses: []Address{{ID: keep}, {ID: drop}}}

	assert.True(t, u.RemoveAddress(drop))
	assert.Len(t, u.Addresses, 1)
	assert.Equal(t, keep, u.Addresses[0].ID)

	assert.False(t, u.RemoveAddress(drop))
}

func TestRemoveSavedCard(t *testing.T) {
	cardID := primitive.NewObjectID()
	u := &User{SavedCards: []SavedCard{{ID: cardID, Last4: "4242"}}}

	assert.True(t, u.RemoveSavedCard(cardID))
	assert.Empty(t, u.SavedCards)

	assert.False(t, u.RemoveSavedCard(cardID))
}

func TestPublic(t *testing.T) {
	u := &User{
		ID:       primitive.NewObjectID(),
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hash",
		Role:     RoleUser,
	}

	pub := u.Public()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, "Asha", pub.Name)
	assert.Equal(t, "asha@example.com", pub.Email)
	assert.Equal(t, RoleUser, pub.Role)
}
