package auth

import (
	"testing"
)

func TestService_GenerateAndValidateToken(t *testing.T) {
	svc := NewService("test-secret-key")

	userID := "64f1a2b3c4d5e6f7a8b9c0d1"

	token, err := svc.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	got, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if got != userID {
		t.Errorf("ValidateToken() = %v, want %v", got, userID)
	}
}

func TestService_InvalidToken(t *testing.T) {
	svc := NewService("test-secret-key")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			if err == nil {
				t.Error("ValidateToken() should return error for invalid token")
			}
			if err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestService_WrongSecretKey(t *testing.T) {
	svc1 := NewService("secret-key-1")
	svc2 := NewService("secret-key-2")

	token, err := svc1.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(token); err == nil {
		t.Error("ValidateToken() should fail with different secret key")
	}
}
