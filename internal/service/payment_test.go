package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_key_secret"

	orderID := "order_MNqzXJ6ZQ3pBtW"
	paymentID := "pay_MNr0kqgXgTm41x"
	signature := sign(orderID, paymentID, secret)

	if !VerifySignature(orderID, paymentID, signature, secret) {
		t.Error("expected a genuine signature to verify")
	}

	if VerifySignature(orderID, paymentID, signature, "other_secret") {
		t.Error("expected verification with the wrong secret to fail")
	}
	if VerifySignature("order_tampered", paymentID, signature, secret) {
		t.Error("expected a tampered order id to fail verification")
	}
	if VerifySignature(orderID, "pay_tampered", signature, secret) {
		t.Error("expected a tampered payment id to fail verification")
	}
	if VerifySignature(orderID, paymentID, "deadbeef", secret) {
		t.Error("expected a forged signature to fail verification")
	}
	if VerifySignature(orderID, paymentID, "", secret) {
		t.Error("expected an empty signature to fail verification")
	}
}
