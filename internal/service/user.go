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
	"golang.org/x/crypto/bcrypt"
)

// AddressUpdate carries the fields of an address PATCH; nil pointers
// are left untouched.
type AddressUpdate struct {
	Label     *string `json:"label"`
	FullName  *string `json:"fullName"`
	Phone     *string `json:"phone"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
	Country   *string `json:"country"`
	IsDefault *bool   `json:"isDefault"`
}

// UserService manages accounts: identity, profile, embedded addresses,
// saved cards and the wishlist. Cart mutations live in CartService.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, name, password string) (*model.User, error)

	AddAddress(ctx context.Context, userID string, addr model.Address) ([]model.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, upd AddressUpdate) ([]model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) ([]model.Address, error)

	AddCard(ctx context.Context, userID string, card model.SavedCard) ([]model.SavedCard, error)
	DeleteCard(ctx context.Context, userID, cardID string) ([]model.SavedCard, error)

	ToggleWishlist(ctx context.Context, userID, productID string) ([]primitive.ObjectID, error)

	ListUsers(ctx context.Context, page, limit int64) ([]model.User, int64, error)
	ToggleBlock(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	db *mongo.Database
}

func NewUserService(db *mongo.Database) UserService {
	return &userService{db: db}
}

func (s *userService) col() *mongo.Collection {
	return s.db.Collection("users")
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	n, err := s.col().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  string(hash),
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.col().InsertOne(ctx, user)
	if err != nil {
		// The unique index closes the check-then-insert window.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	err := s.col().FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}
	return &user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user model.User
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id, name, password string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if name != "" {
		user.Name = name
		set["name"] = name
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		set["password"] = string(hash)
	}

	if _, err := s.col().UpdateByID(ctx, user.ID, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// saveAddresses writes the whole embedded address list back in one
// update, so default-flag exclusivity holds relative to this write.
func (s *userService) saveAddresses(ctx context.Context, user *model.User) error {
	_, err := s.col().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"addresses": user.Addresses,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to save addresses: %w", err)
	}
	return nil
}

func (s *userService) AddAddress(ctx context.Context, userID string, addr model.Address) ([]model.Address, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if addr.IsDefault {
		user.ClearDefaultAddresses()
	}
	if addr.Label == "" {
		addr.Label = "Home"
	}
	if addr.Country == "" {
		addr.Country = "India"
	}
	addr.ID = primitive.NewObjectID()
	addr.CreatedAt = time.Now()
	user.Addresses = append(user.Addresses, addr)

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

func (s *userService) UpdateAddress(ctx context.Context, userID, addressID string, upd AddressUpdate) ([]model.Address, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	aid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, ErrInvalidID
	}
	addr := user.AddressByID(aid)
	if addr == nil {
		return nil, ErrNotFound
	}

	if upd.IsDefault != nil && *upd.IsDefault {
		user.ClearDefaultAddresses()
	}
	if upd.Label != nil {
		addr.Label = *upd.Label
	}
	if upd.FullName != nil {
		addr.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		addr.Phone = *upd.Phone
	}
	if upd.Street != nil {
		addr.Street = *upd.Street
	}
	if upd.City != nil {
		addr.City = *upd.City
	}
	if upd.State != nil {
		addr.State = *upd.State
	}
	if upd.Zip != nil {
		addr.Zip = *upd.Zip
	}
	if upd.Country != nil {
		addr.Country = *upd.Country
	}
	if upd.IsDefault != nil {
		addr.IsDefault = *upd.IsDefault
	}

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

func (s *userService) DeleteAddress(ctx context.Context, userID, addressID string) ([]model.Address, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	aid, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if !user.RemoveAddress(aid) {
		return nil, ErrNotFound
	}

	if err := s.saveAddresses(ctx, user); err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

func (s *userService) AddCard(ctx context.Context, userID string, card model.SavedCard) ([]model.SavedCard, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	card.ID = primitive.NewObjectID()
	card.CreatedAt = time.Now()
	user.SavedCards = append(user.SavedCards, card)

	_, err = s.col().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"savedCards": user.SavedCards,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return user.SavedCards, nil
}

func (s *userService) DeleteCard(ctx context.Context, userID, cardID string) ([]model.SavedCard, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if !user.RemoveSavedCard(cid) {
		return nil, ErrNotFound
	}

	_, err = s.col().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"savedCards": user.SavedCards,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}
	return user.SavedCards, nil
}

func (s *userService) ToggleWishlist(ctx context.Context, userID, productID string) ([]primitive.ObjectID, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user.ToggleWishlist(pid)
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}

	_, err = s.col().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"wishlist":  user.Wishlist,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}
	return user.Wishlist, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int64) ([]model.User, int64, error) {
	filter := bson.M{"role": model.RoleUser}

	total, err := s.col().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := s.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

func (s *userService) ToggleBlock(ctx context.Context, id string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsBlocked = !user.IsBlocked
	_, err = s.col().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"isBlocked": user.IsBlocked,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle block: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
