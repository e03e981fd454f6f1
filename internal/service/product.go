package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilters are the storefront listing parameters.
type ProductFilters struct {
	Keyword  string
	Category string
	MinPrice float64
	MaxPrice float64
	InStock  bool
	Sort     string
	Page     int64
	Limit    int64
}

// ProductUpdate carries the fields of an admin product edit; nil
// pointers are left untouched.
type ProductUpdate struct {
	Name           *string            `json:"name"`
	Category       *string            `json:"category"`
	Price          *float64           `json:"price"`
	DiscountPrice  *float64           `json:"discountPrice"`
	Images         *[]string          `json:"images"`
	Description    *string            `json:"description"`
	KeyFeatures    *[]string          `json:"keyFeatures"`
	Specifications *map[string]string `json:"specifications"`
	Stock          *int               `json:"stock"`
	IsActive       *bool              `json:"isActive"`
	Tags           *[]string          `json:"tags"`
	Brand          *string            `json:"brand"`
}

type ProductService interface {
	List(ctx context.Context, f ProductFilters) ([]model.Product, int64, error)
	ListAdmin(ctx context.Context, page, limit int64) ([]model.Product, int64, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, upd ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID string, review model.Review) (*model.Product, error)
	CategoryNames(ctx context.Context) ([]string, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error)
}

type productService struct {
	db *mongo.Database
}

func NewProductService(db *mongo.Database) ProductService {
	return &productService{db: db}
}

func (s *productService) col() *mongo.Collection {
	return s.db.Collection("products")
}

// sortSpecs maps the public sort keys onto mongo sort documents.
var sortSpecs = map[string]bson.D{
	"price-asc":  {{Key: "price", Value: 1}},
	"price-desc": {{Key: "price", Value: -1}},
	"rating":     {{Key: "rating", Value: -1}},
	"newest":     {{Key: "createdAt", Value: -1}},
	"popular":    {{Key: "numReviews", Value: -1}},
}

func (s *productService) List(ctx context.Context, f ProductFilters) ([]model.Product, int64, error) {
	filter := bson.M{"isActive": true}
	if f.Keyword != "" {
		filter["$text"] = bson.M{"$search": f.Keyword}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		price := bson.M{}
		if f.MinPrice > 0 {
			price["$gte"] = f.MinPrice
		}
		if f.MaxPrice > 0 {
			price["$lte"] = f.MaxPrice
		}
		filter["price"] = price
	}
	if f.InStock {
		filter["stock"] = bson.M{"$gt": 0}
	}

	sort, ok := sortSpecs[f.Sort]
	if !ok {
		sort = sortSpecs["newest"]
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	total, err := s.col().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().SetSort(sort).SetSkip((page - 1) * limit).SetLimit(limit)
	cursor, err := s.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (s *productService) ListAdmin(ctx context.Context, page, limit int64) ([]model.Product, int64, error) {
	total, err := s.col().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := s.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product model.Product
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Reviews == nil {
		p.Reviews = []model.Review{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	res, err := s.col().InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (s *productService) Update(ctx context.Context, id string, upd ProductUpdate) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.DiscountPrice != nil {
		set["discountPrice"] = *upd.DiscountPrice
	}
	if upd.Images != nil {
		set["images"] = *upd.Images
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.KeyFeatures != nil {
		set["keyFeatures"] = *upd.KeyFeatures
	}
	if upd.Specifications != nil {
		set["specifications"] = *upd.Specifications
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Brand != nil {
		set["brand"] = *upd.Brand
	}

	after := options.After
	var product model.Product
	err = s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReview appends a review after a duplicate scan and rewrites the
// aggregates. The scan is not a storage-level uniqueness constraint, so
// two concurrent submissions by the same user can both land.
func (s *productService) AddReview(ctx context.Context, productID string, review model.Review) (*model.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ReviewBy(review.User) != nil {
		return nil, ErrAlreadyReviewed
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	product.AddReview(review)

	_, err = s.col().UpdateByID(ctx, product.ID, bson.M{"$set": bson.M{
		"reviews":    product.Reviews,
		"numReviews": product.NumReviews,
		"rating":     product.Rating,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return product, nil
}

// ByIDs fetches the products referenced by ids. Missing ids are simply
// absent from the result, which is how deleted wishlist entries vanish.
func (s *productService) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	cursor, err := s.col().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// CategoryNames lists the active category names for the storefront
// dropdown.
func (s *productService) CategoryNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.db.Collection("categories").Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}
