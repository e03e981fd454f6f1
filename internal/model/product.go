package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a buyer review embedded in a product document.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"` // 1..5
	Comment   string             `bson:"comment" json:"comment"`
	Images    []string           `bson:"images" json:"images"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Category       string             `bson:"category" json:"category"`
	Price          float64            `bson:"price" json:"price"`
	DiscountPrice  float64            `bson:"discountPrice" json:"discountPrice"`
	Images         []string           `bson:"images" json:"images"`
	Description    string             `bson:"description" json:"description"`
	KeyFeatures    []string           `bson:"keyFeatures" json:"keyFeatures"`
	Specifications map[string]string  `bson:"specifications" json:"specifications"`
	Stock          int                `bson:"stock" json:"stock"`
	Rating         float64            `bson:"rating" json:"rating"`
	NumReviews     int                `bson:"numReviews" json:"numReviews"`
	Reviews        []Review           `bson:"reviews" json:"reviews"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	Tags           []string           `bson:"tags" json:"tags"`
	Brand          string             `bson:"brand" json:"brand"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice is the price a buyer pays right now: the discount price
// when one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// FirstImage returns the primary image URL, or "" when none is set.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// ReviewBy returns the review left by the given user, or nil. Duplicate
// detection is a linear scan, so two concurrent submissions can both
// pass it.
func (p *Product) ReviewBy(userID primitive.ObjectID) *Review {
	for i := range p.Reviews {
		if p.Reviews[i].User == userID {
			return &p.Reviews[i]
		}
	}
	return nil
}

// AddReview appends the review and recomputes the aggregates:
// numReviews is the list length, rating the mean rounded to one decimal.
func (p *Product) AddReview(r Review) {
	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)

	sum := 0
	for _, rev := range p.Reviews {
		sum += rev.Rating
	}
	p.Rating = math.Round(float64(sum)/float64(len(p.Reviews))*10) / 10
}
