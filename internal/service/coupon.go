package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// round2 rounds to two decimals, the resolution of all stored amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EvaluateCoupon validates a coupon against an order amount and returns
// the discount. A fixed discount is returned verbatim and may exceed the
// order amount; it is deliberately not capped.
func EvaluateCoupon(c *model.Coupon, orderAmount float64, now time.Time) (float64, error) {
	if c == nil || !c.IsActive {
		return 0, ErrCouponInvalid
	}
	if now.After(c.ExpiryDate) {
		return 0, ErrCouponExpired
	}
	if orderAmount < c.MinOrderAmount {
		return 0, ErrCouponMinAmount
	}

	if c.DiscountType == model.DiscountTypePercentage {
		return round2(orderAmount * c.DiscountValue / 100), nil
	}
	return c.DiscountValue, nil
}

// CouponUpdate carries the fields of an admin coupon edit; nil pointers
// are left untouched.
type CouponUpdate struct {
	Code           *string    `json:"code"`
	DiscountType   *string    `json:"discountType"`
	DiscountValue  *float64   `json:"discountValue"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	MinOrderAmount *float64   `json:"minOrderAmount"`
	IsActive       *bool      `json:"isActive"`
}

type CouponService interface {
	// Apply is the preview check used before checkout. It surfaces
	// rejections and never touches the used counter. On
	// ErrCouponMinAmount the coupon is returned alongside the error so
	// callers can report the required minimum.
	Apply(ctx context.Context, code string, orderAmount float64) (*model.Coupon, float64, error)

	// Redeem applies a coupon inside an order flow: rejections yield a
	// zero discount with no error surfaced, success bumps usedCount.
	// The increment is a plain $inc with no cap and no per-user limit.
	Redeem(ctx context.Context, code string, orderAmount float64) float64

	List(ctx context.Context) ([]model.Coupon, error)
	Create(ctx context.Context, c *model.Coupon) (*model.Coupon, error)
	Update(ctx context.Context, id string, upd CouponUpdate) (*model.Coupon, error)
	Delete(ctx context.Context, id string) error
}

type couponService struct {
	db *mongo.Database
}

func NewCouponService(db *mongo.Database) CouponService {
	return &couponService{db: db}
}

func (s *couponService) col() *mongo.Collection {
	return s.db.Collection("coupons")
}

func (s *couponService) findByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := s.col().FindOne(ctx, bson.M{
		"code":     strings.ToUpper(code),
		"isActive": true,
	}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCouponInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	return &coupon, nil
}

func (s *couponService) Apply(ctx context.Context, code string, orderAmount float64) (*model.Coupon, float64, error) {
	coupon, err := s.findByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}

	discount, err := EvaluateCoupon(coupon, orderAmount, time.Now())
	if err != nil {
		return coupon, 0, err
	}
	return coupon, discount, nil
}

func (s *couponService) Redeem(ctx context.Context, code string, orderAmount float64) float64 {
	coupon, err := s.findByCode(ctx, code)
	if err != nil {
		return 0
	}
	discount, err := EvaluateCoupon(coupon, orderAmount, time.Now())
	if err != nil {
		return 0
	}

	if _, err := s.col().UpdateByID(ctx, coupon.ID, bson.M{"$inc": bson.M{"usedCount": 1}}); err != nil {
		// The discount was already granted; losing the counter bump is
		// acceptable.
		return discount
	}
	return discount
}

func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []model.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

func (s *couponService) Create(ctx context.Context, c *model.Coupon) (*model.Coupon, error) {
	now := time.Now()
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.UsedCount = 0
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := s.col().InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCouponExists
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c, nil
}

func (s *couponService) Update(ctx context.Context, id string, upd CouponUpdate) (*model.Coupon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Code != nil {
		set["code"] = strings.ToUpper(strings.TrimSpace(*upd.Code))
	}
	if upd.DiscountType != nil {
		set["discountType"] = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		set["discountValue"] = *upd.DiscountValue
	}
	if upd.ExpiryDate != nil {
		set["expiryDate"] = *upd.ExpiryDate
	}
	if upd.MinOrderAmount != nil {
		set["minOrderAmount"] = *upd.MinOrderAmount
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	var coupon model.Coupon
	err = s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return &coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
