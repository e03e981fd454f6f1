package infrastructure

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Seeder populates an empty database with a starter catalog, an admin
// account and a pair of coupons so both frontends work out of the box.
type Seeder struct {
	db *mongo.Database
}

func NewSeeder(db *mongo.Database) *Seeder {
	return &Seeder{db: db}
}

// SeedAll inserts seed data unless an admin account already exists.
func (s *Seeder) SeedAll(ctx context.Context) error {
	n, err := s.db.Collection("users").CountDocuments(ctx, bson.M{"role": model.RoleAdmin})
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	if err := s.seedCatalog(ctx); err != nil {
		return err
	}
	if err := s.seedCoupons(ctx); err != nil {
		return err
	}

	log.Println("[SEED] Database seeded with starter data")
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := model.User{
		Name:      "Admin",
		Email:     "admin@ecombazaar.dev",
		Password:  string(hash),
		Role:      model.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.db.Collection("users").InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

func (s *Seeder) seedCatalog(ctx context.Context) error {
	now := time.Now()

	categories := []interface{}{
		model.Category{Name: "Electronics", Slug: model.ToSlug("Electronics"), Icon: "💻", IsActive: true, CreatedAt: now, UpdatedAt: now},
		model.Category{Name: "Fashion", Slug: model.ToSlug("Fashion"), Icon: "👕", IsActive: true, CreatedAt: now, UpdatedAt: now},
		model.Category{Name: "Home & Kitchen", Slug: model.ToSlug("Home & Kitchen"), Icon: "🏠", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	if _, err := s.db.Collection("categories").InsertMany(ctx, categories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []interface{}{
		model.Product{
			Name:        "Wireless Headphones",
			Category:    "Electronics",
			Price:       2999,
			Description: "Over-ear wireless headphones with 30h battery life.",
			KeyFeatures: []string{"Bluetooth 5.3", "30h battery", "Fast charge"},
			Stock:       50,
			IsActive:    true,
			Brand:       "SoundCore",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		model.Product{
			Name:          "Cotton T-Shirt",
			Category:      "Fashion",
			Price:         799,
			DiscountPrice: 599,
			Description:   "Plain crew-neck t-shirt, 100% combed cotton.",
			Stock:         200,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		model.Product{
			Name:        "Stainless Steel Kettle",
			Category:    "Home & Kitchen",
			Price:       1499,
			Description: "1.8L electric kettle with auto shut-off.",
			Stock:       80,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	if _, err := s.db.Collection("products").InsertMany(ctx, products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

func (s *Seeder) seedCoupons(ctx context.Context) error {
	now := time.Now()
	coupons := []interface{}{
		model.Coupon{
			Code:           "SAVE20",
			DiscountType:   model.DiscountTypePercentage,
			DiscountValue:  20,
			ExpiryDate:     now.AddDate(1, 0, 0),
			MinOrderAmount: 1000,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		model.Coupon{
			Code:           "WELCOME100",
			DiscountType:   model.DiscountTypeFixed,
			DiscountValue:  100,
			ExpiryDate:     now.AddDate(0, 6, 0),
			MinOrderAmount: 500,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	if _, err := s.db.Collection("coupons").InsertMany(ctx, coupons); err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}
	return nil
}
