package service

import (
	"testing"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"
)

func TestCheckPermission(t *testing.T) {
	authz, err := NewAuthorizationService()
	if err != nil {
		t.Fatalf("failed to build authorization service: %v", err)
	}

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"admin manages products", model.RoleAdmin, "products", "manage", true},
		{"admin manages orders", model.RoleAdmin, "orders", "manage", true},
		{"admin manages coupons", model.RoleAdmin, "coupons", "manage", true},
		{"admin reads stats", model.RoleAdmin, "stats", "read", true},
		{"admin cannot use unknown action", model.RoleAdmin, "products", "explode", false},
		{"user cannot manage products", model.RoleUser, "products", "manage", false},
		{"user cannot read stats", model.RoleUser, "stats", "read", false},
		{"unknown role denied", "superuser", "products", "manage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.CheckPermission(tt.role, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("CheckPermission returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPermission(%q, %q, %q) = %v, want %v",
					tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}
