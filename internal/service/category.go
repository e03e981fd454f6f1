package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryUpdate carries the fields of an admin category edit; nil
// pointers are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryService manages the category collection. Deleting a category
// never cascades to products: they reference the category by name, and
// a dangling name is legal.
type CategoryService interface {
	List(ctx context.Context, includeInactive bool) ([]model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, name, description, icon, image string, isActive bool) (*model.Category, error)
	Update(ctx context.Context, id string, upd CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	db *mongo.Database
}

func NewCategoryService(db *mongo.Database) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) col() *mongo.Collection {
	return s.db.Collection("categories")
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]model.Category, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var category model.Category
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) Create(ctx context.Context, name, description, icon, image string, isActive bool) (*model.Category, error) {
	name = strings.TrimSpace(name)

	n, err := s.col().CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if n > 0 {
		return nil, ErrCategoryExists
	}

	if icon == "" {
		icon = "📦"
	}
	now := time.Now()
	category := &model.Category{
		Name:        name,
		Slug:        model.ToSlug(name),
		Description: description,
		Icon:        icon,
		Image:       image,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.col().InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, upd CategoryUpdate) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		set["name"] = name
		set["slug"] = model.ToSlug(name)
		category.Name = name
		category.Slug = model.ToSlug(name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
		category.Description = *upd.Description
	}
	if upd.Icon != nil {
		set["icon"] = *upd.Icon
		category.Icon = *upd.Icon
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
		category.Image = *upd.Image
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
		category.IsActive = *upd.IsActive
	}

	if _, err := s.col().UpdateByID(ctx, category.ID, bson.M{"$set": set}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
