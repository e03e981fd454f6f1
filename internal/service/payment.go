package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is the payment intent handed to the storefront so it can
// open the Razorpay checkout widget. Amount is in minor currency units.
type GatewayOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifySignature checks the callback signature Razorpay sends after a
// successful payment: hex HMAC-SHA256 over "<orderId>|<paymentId>" keyed
// with the API secret.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return expected == signature
}

// PaymentService wraps the Razorpay client for order creation and
// callback verification.
type PaymentService interface {
	CreateGatewayOrder(amount float64, currency string) (*GatewayOrder, error)
	Verify(orderID, paymentID, signature string) bool
}

type paymentService struct {
	client    *razorpay.Client
	keySecret string
}

func NewPaymentService(keyID, keySecret string) PaymentService {
	return &paymentService{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (s *paymentService) CreateGatewayOrder(amount float64, currency string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   int(amount * 100),
		"currency": currency,
		"receipt":  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	order := &GatewayOrder{Currency: currency}
	if id, ok := body["id"].(string); ok {
		order.OrderID = id
	}
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	return order, nil
}

func (s *paymentService) Verify(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, s.keySecret)
}
