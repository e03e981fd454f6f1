package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: 1000}
	if got := p.EffectivePrice(); got != 1000 {
		t.Errorf("EffectivePrice() = %v, want 1000", got)
	}

	p.DiscountPrice = 750
	if got := p.EffectivePrice(); got != 750 {
		t.Errorf("EffectivePrice() with discount = %v, want 750", got)
	}
}

func TestAddReviewAggregates(t *testing.T) {
	p := Product{}

	p.AddReview(Review{User: primitive.NewObjectID(), Rating: 5})
	if p.NumReviews != 1 || p.Rating != 5 {
		t.Errorf("after first review: numReviews=%d rating=%v, want 1 and 5", p.NumReviews, p.Rating)
	}

	p.AddReview(Review{User: primitive.NewObjectID(), Rating: 4})
	if p.NumReviews != 2 || p.Rating != 4.5 {
		t.Errorf("after second review: numReviews=%d rating=%v, want 2 and 4.5", p.NumReviews, p.Rating)
	}

	// 5, 4, 4 -> mean 4.333... -> one decimal
	p.AddReview(Review{User: primitive.NewObjectID(), Rating: 4})
	if p.Rating != 4.3 {
		t.Errorf("rating = %v, want 4.3", p.Rating)
	}
}

func TestReviewBy(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	p := Product{Reviews: []Review{{User: alice, Rating: 5, Comment: "great"}}}

	if got := p.ReviewBy(alice); got == nil || got.Comment != "great" {
		t.Errorf("ReviewBy(alice) = %v, want the existing review", got)
	}
	if got := p.ReviewBy(bob); got != nil {
		t.Errorf("ReviewBy(bob) = %v, want nil", got)
	}
}

func TestFirstImage(t *testing.T) {
	p := Product{}
	if got := p.FirstImage(); got != "" {
		t.Errorf("FirstImage() on empty = %q, want \"\"", got)
	}

	p.Images = []string{"/uploads/a.jpg", "/uploads/b.jpg"}
	if got := p.FirstImage(); got != "/uploads/a.jpg" {
		t.Errorf("FirstImage() = %q, want /uploads/a.jpg", got)
	}
}
