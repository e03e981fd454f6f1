package service

import (
	"testing"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeTotals(t *testing.T) {
	pricing := DefaultPricing()

	t.Run("no discount", func(t *testing.T) {
		totals := computeTotals(2000, 0, pricing)

		assert.Equal(t, 2000.0, totals.Subtotal)
		assert.Equal(t, 200.0, totals.Tax)
		assert.Equal(t, 50.0, totals.Shipping)
		assert.Equal(t, 0.0, totals.Discount)
		assert.Equal(t, 2250.0, totals.Total)
	})

	t.Run("with discount", func(t *testing.T) {
		totals := computeTotals(2000, 400, pricing)

		assert.Equal(t, 400.0, totals.Discount)
		assert.Equal(t, 1850.0, totals.Total)
	})

	t.Run("fixed discount larger than subtotal drives the total negative", func(t *testing.T) {
		totals := computeTotals(100, 500, pricing)

		assert.Equal(t, 10.0, totals.Tax)
		assert.Equal(t, -340.0, totals.Total)
	})

	t.Run("custom pricing", func(t *testing.T) {
		totals := computeTotals(1000, 0, PricingConfig{TaxRate: 0.18, ShippingCharge: 0})

		assert.Equal(t, 180.0, totals.Tax)
		assert.Equal(t, 0.0, totals.Shipping)
		assert.Equal(t, 1180.0, totals.Total)
	})
}

func TestBuildOrderItems(t *testing.T) {
	phoneID := primitive.NewObjectID()
	caseID := primitive.NewObjectID()

	phone := &model.Product{
		ID:            phoneID,
		Name:          "Pixel 9",
		Images:        []string{"/uploads/pixel.jpg"},
		Price:         60000,
		DiscountPrice: 55000,
		Stock:         10,
	}
	phoneCase := &model.Product{
		ID:    caseID,
		Name:  "Clear Case",
		Price: 500,
		Stock: 100,
	}
	products := map[primitive.ObjectID]*model.Product{
		phoneID: phone,
		caseID:  phoneCase,
	}

	t.Run("snapshots current effective prices", func(t *testing.T) {
		cart := []model.CartItem{
			{Product: phoneID, Quantity: 1, Price: 60000}, // stale captured price
			{Product: caseID, Quantity: 2, Price: 500},
		}

		items, subtotal, err := buildOrderItems(cart, products)
		assert.NoError(t, err)
		assert.Len(t, items, 2)

		// The discount landed after the phone entered the cart; the
		// order line uses the discounted price, not the captured one.
		assert.Equal(t, 55000.0, items[0].Price)
		assert.Equal(t, "Pixel 9", items[0].Name)
		assert.Equal(t, "/uploads/pixel.jpg", items[0].Image)

		assert.Equal(t, 500.0, items[1].Price)
		assert.Equal(t, "", items[1].Image)

		assert.Equal(t, 56000.0, subtotal)
	})

	t.Run("missing product fails the build", func(t *testing.T) {
		cart := []model.CartItem{
			{Product: primitive.NewObjectID(), Quantity: 1, Price: 100},
		}

		_, _, err := buildOrderItems(cart, products)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty cart yields no items", func(t *testing.T) {
		items, subtotal, err := buildOrderItems(nil, products)
		assert.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 0.0, subtotal)
	})
}
