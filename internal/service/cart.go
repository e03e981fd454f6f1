package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartLine is a cart item joined with its current product document for
// the storefront view. The captured price may differ from the product's
// current price.
type CartLine struct {
	Product  *model.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
}

// CartService mutates the cart embedded in the user document. All
// operations are read-modify-write without cross-call locking; checkout
// reads whatever snapshot is current at that moment.
type CartService interface {
	Get(ctx context.Context, userID string) ([]CartLine, error)
	Add(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error)
	Update(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error)
	Remove(ctx context.Context, userID, productID string) ([]CartLine, error)
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	db *mongo.Database
}

func NewCartService(db *mongo.Database) CartService {
	return &cartService{db: db}
}

func (s *cartService) users() *mongo.Collection {
	return s.db.Collection("users")
}

func (s *cartService) getUser(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	var user model.User
	err = s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *cartService) saveCart(ctx context.Context, user *model.User) error {
	if user.Cart == nil {
		user.Cart = []model.CartItem{}
	}
	_, err := s.users().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"cart":      user.Cart,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// populate joins cart items with their product documents.
func (s *cartService) populate(ctx context.Context, cart []model.CartItem) ([]CartLine, error) {
	if len(cart) == 0 {
		return []CartLine{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.Product)
	}

	cursor, err := s.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cart products: %w", err)
	}

	byID := make(map[primitive.ObjectID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]CartLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, CartLine{
			Product:  byID[item.Product], // nil when the product was deleted
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return lines, nil
}

func (s *cartService) Get(ctx context.Context, userID string) ([]CartLine, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, user.Cart)
}

func (s *cartService) Add(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if quantity < 1 {
		quantity = 1
	}

	var product model.Product
	err = s.db.Collection("products").FindOne(ctx, bson.M{"_id": pid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Unit price is captured now; a later product price change does not
	// touch this line.
	user.UpsertCartItem(pid, quantity, product.EffectivePrice())
	if err := s.saveCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user.Cart)
}

func (s *cartService) Update(ctx context.Context, userID, productID string, quantity int) ([]CartLine, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.SetCartQuantity(pid, quantity) {
		return nil, ErrItemNotInCart
	}
	if err := s.saveCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user.Cart)
}

func (s *cartService) Remove(ctx context.Context, userID, productID string) ([]CartLine, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RemoveCartItem(pid)
	if err := s.saveCart(ctx, user); err != nil {
		return nil, err
	}
	return s.populate(ctx, user.Cart)
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}
	_, err = s.users().UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"cart":      []model.CartItem{},
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
