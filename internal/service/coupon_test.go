package service

import (
	"testing"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"github.com/stretchr/testify/assert"
)

func activeCoupon(discountType string, value, minAmount float64) *model.Coupon {
	return &model.Coupon{
		Code:           "SAVE20",
		DiscountType:   discountType,
		DiscountValue:  value,
		MinOrderAmount: minAmount,
		ExpiryDate:     time.Now().Add(24 * time.Hour),
		IsActive:       true,
	}
}

func TestEvaluateCoupon(t *testing.T) {
	now := time.Now()

	t.Run("percentage discount", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 20, 1000)

		discount, err := EvaluateCoupon(coupon, 2000, now)
		assert.NoError(t, err)
		assert.Equal(t, 400.0, discount)
	})

	t.Run("percentage discount rounds to two decimals", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 15, 0)

		discount, err := EvaluateCoupon(coupon, 999.99, now)
		assert.NoError(t, err)
		assert.Equal(t, 150.0, discount)
	})

	t.Run("fixed discount returned verbatim", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypeFixed, 100, 500)

		discount, err := EvaluateCoupon(coupon, 800, now)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, discount)
	})

	t.Run("fixed discount may exceed the order amount", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypeFixed, 500, 0)

		discount, err := EvaluateCoupon(coupon, 300, now)
		assert.NoError(t, err)
		assert.Equal(t, 500.0, discount)
	})

	t.Run("nil coupon", func(t *testing.T) {
		_, err := EvaluateCoupon(nil, 2000, now)
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("inactive coupon", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 20, 0)
		coupon.IsActive = false

		_, err := EvaluateCoupon(coupon, 2000, now)
		assert.ErrorIs(t, err, ErrCouponInvalid)
	})

	t.Run("expired coupon", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 20, 0)
		coupon.ExpiryDate = now.Add(-time.Hour)

		_, err := EvaluateCoupon(coupon, 2000, now)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("order below minimum amount", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 20, 1000)

		_, err := EvaluateCoupon(coupon, 999, now)
		assert.ErrorIs(t, err, ErrCouponMinAmount)
	})

	t.Run("order exactly at minimum amount", func(t *testing.T) {
		coupon := activeCoupon(model.DiscountTypePercentage, 20, 1000)

		discount, err := EvaluateCoupon(coupon, 1000, now)
		assert.NoError(t, err)
		assert.Equal(t, 200.0, discount)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, round2(10.567))
	assert.Equal(t, 10.56, round2(10.564))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 200.0, round2(200))
}
