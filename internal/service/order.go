package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PricingConfig holds the deployment-level pricing knobs. Tax applies
// uniformly to the whole subtotal; shipping is a flat charge.
type PricingConfig struct {
	TaxRate        float64
	ShippingCharge float64
}

// DefaultPricing returns the standard 10% tax and flat 50 shipping.
func DefaultPricing() PricingConfig {
	return PricingConfig{TaxRate: 0.10, ShippingCharge: 50}
}

// Totals is the amount breakdown stored on an order at creation.
type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Discount float64
	Total    float64
}

// computeTotals derives the amount breakdown. The fixed-discount case
// can legally drive Total negative; no clamping happens here.
func computeTotals(subtotal, discount float64, pricing PricingConfig) Totals {
	tax := round2(subtotal * pricing.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: pricing.ShippingCharge,
		Discount: discount,
		Total:    round2(subtotal + tax + pricing.ShippingCharge - discount),
	}
}

// buildOrderItems snapshots cart lines into immutable order items. The
// unit price is the product's effective price at this instant, not the
// price captured when the line entered the cart.
func buildOrderItems(cart []model.CartItem, products map[primitive.ObjectID]*model.Product) ([]model.OrderItem, float64, error) {
	items := make([]model.OrderItem, 0, len(cart))
	subtotal := 0.0

	for _, line := range cart {
		product, ok := products[line.Product]
		if !ok {
			return nil, 0, fmt.Errorf("cart references product %s: %w", line.Product.Hex(), ErrNotFound)
		}
		price := product.EffectivePrice()
		subtotal += price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Image:    product.FirstImage(),
			Price:    price,
			Quantity: line.Quantity,
		})
	}
	return items, subtotal, nil
}

// PlaceOrderInput is the request payload common to both checkout paths.
type PlaceOrderInput struct {
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
	CouponCode      string
	PaymentID       string // gateway path only
}

// OrderStats is the admin dashboard aggregate.
type OrderStats struct {
	TotalOrders    int64          `json:"totalOrders"`
	PendingOrders  int64          `json:"pendingOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	OrdersByStatus []StatusCount  `json:"ordersByStatus"`
	MonthlySales   []MonthlySales `json:"monthlySales"`
}

type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type MonthlySales struct {
	Period struct {
		Year  int `bson:"year" json:"year"`
		Month int `bson:"month" json:"month"`
	} `bson:"_id" json:"period"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders" json:"orders"`
}

// OrderService turns carts into orders and owns the order ledger.
//
// The checkout sequence (persist order, decrement stock, clear cart)
// runs without a transaction or compensation. A failure between the
// writes leaves an order whose stock and cart effects are incomplete.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error)
	PlaceOrderAfterPayment(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error)
	MyOrders(ctx context.Context, userID string) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, status string, page, limit int64) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id, status, note string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	PendingOrders(ctx context.Context) ([]model.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

type orderService struct {
	db      *mongo.Database
	coupons CouponService
	pricing PricingConfig
}

func NewOrderService(db *mongo.Database, coupons CouponService, pricing PricingConfig) OrderService {
	return &orderService{db: db, coupons: coupons, pricing: pricing}
}

func (s *orderService) col() *mongo.Collection {
	return s.db.Collection("orders")
}

func (s *orderService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error) {
	if in.PaymentMethod == "" {
		in.PaymentMethod = model.PaymentMethodCOD
	}
	return s.checkout(ctx, userID, in, model.OrderStatusPending, "", model.PaymentStatusPending)
}

// PlaceOrderAfterPayment materializes the order once the gateway has
// confirmed payment. It recomputes the totals from the current cart;
// nothing re-verifies them against the amount authorized at
// payment-intent time.
func (s *orderService) PlaceOrderAfterPayment(ctx context.Context, userID string, in PlaceOrderInput) (*model.Order, error) {
	if in.PaymentMethod == "" {
		in.PaymentMethod = model.PaymentMethodRazorpay
	}
	return s.checkout(ctx, userID, in, model.OrderStatusProcessing, "Payment received via Razorpay", model.PaymentStatusPaid)
}

func (s *orderService) checkout(ctx context.Context, userID string, in PlaceOrderInput, status, note, paymentStatus string) (*model.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user model.User
	err = s.db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(user.Cart) == 0 {
		return nil, ErrCartEmpty
	}

	products, err := s.loadProducts(ctx, user.Cart)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := buildOrderItems(user.Cart, products)
	if err != nil {
		return nil, err
	}

	// An invalid or ineligible coupon code is silently ignored: the
	// order proceeds with a zero discount.
	discount := 0.0
	if in.CouponCode != "" {
		discount = s.coupons.Redeem(ctx, in.CouponCode, subtotal)
	}

	totals := computeTotals(subtotal, discount, s.pricing)

	now := time.Now()
	order := &model.Order{
		User:            uid,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatus,
		PaymentID:       in.PaymentID,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		ShippingCharge:  totals.Shipping,
		Discount:        totals.Discount,
		TotalAmount:     totals.Total,
		CouponCode:      in.CouponCode,
		Status:          status,
		StatusHistory:   []model.StatusEntry{{Status: status, Note: note, UpdatedAt: now}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	res, err := s.col().InsertOne(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)

	// Stock decrement is unconditional: no availability re-check since
	// cart-add time, and stock may go negative. A failure mid-loop
	// leaves the order in place with partially applied stock effects.
	for _, item := range order.Items {
		_, err := s.db.Collection("products").UpdateByID(ctx, item.Product,
			bson.M{"$inc": bson.M{"stock": -item.Quantity}})
		if err != nil {
			log.Printf("[ORDER] stock decrement failed for product %s on order %s: %v",
				item.Product.Hex(), order.ID.Hex(), err)
		}
	}

	_, err = s.db.Collection("users").UpdateByID(ctx, uid, bson.M{"$set": bson.M{
		"cart":      []model.CartItem{},
		"updatedAt": time.Now(),
	}})
	if err != nil {
		log.Printf("[ORDER] cart clear failed for user %s on order %s: %v", userID, order.ID.Hex(), err)
	}

	log.Printf("[ORDER] Created: %s (amount: %.2f, method: %s)", order.ID.Hex(), order.TotalAmount, order.PaymentMethod)
	return order, nil
}

func (s *orderService) loadProducts(ctx context.Context, cart []model.CartItem) (map[primitive.ObjectID]*model.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, line := range cart {
		ids = append(ids, line.Product)
	}

	cursor, err := s.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	byID := make(map[primitive.ObjectID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (s *orderService) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return s.ListByUser(ctx, userID)
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col().Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var order model.Order
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *orderService) List(ctx context.Context, status string, page, limit int64) ([]model.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.col().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := s.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus sets the order status and appends one immutable history
// entry. Any known status may be set directly; there is no adjacency
// rule. Cancelling does not restock.
func (s *orderService) UpdateStatus(ctx context.Context, id, status, note string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	entry := model.StatusEntry{Status: status, Note: note, UpdatedAt: time.Now()}
	var order model.Order
	err = s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":  bson.M{"status": status, "updatedAt": time.Now()},
			"$push": bson.M{"statusHistory": entry},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

func (s *orderService) PendingOrders(ctx context.Context) ([]model.Order, error) {
	cursor, err := s.col().Find(ctx, bson.M{"status": model.OrderStatusPending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode pending orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Stats(ctx context.Context) (*OrderStats, error) {
	stats := &OrderStats{}

	var err error
	stats.TotalOrders, err = s.col().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	stats.PendingOrders, err = s.col().CountDocuments(ctx, bson.M{"status": model.OrderStatusPending})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	// Revenue excludes cancelled orders.
	revenuePipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": model.OrderStatusCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}
	cursor, err := s.col().Aggregate(ctx, revenuePipe)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	var revenue []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &revenue); err != nil {
		return nil, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(revenue) > 0 {
		stats.TotalRevenue = revenue[0].Total
	}

	statusPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err = s.col().Aggregate(ctx, statusPipe)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status breakdown: %w", err)
	}
	if err := cursor.All(ctx, &stats.OrdersByStatus); err != nil {
		return nil, fmt.Errorf("failed to decode status breakdown: %w", err)
	}

	yearAgo := time.Now().AddDate(-1, 0, 0)
	monthlyPipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    bson.M{"$ne": model.OrderStatusCancelled},
			"createdAt": bson.M{"$gte": yearAgo},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue": bson.M{"$sum": "$totalAmount"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	}
	cursor, err = s.col().Aggregate(ctx, monthlyPipe)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sales: %w", err)
	}
	if err := cursor.All(ctx, &stats.MonthlySales); err != nil {
		return nil, fmt.Errorf("failed to decode monthly sales: %w", err)
	}

	return stats, nil
}
