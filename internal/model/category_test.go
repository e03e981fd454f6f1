package model

import "testing"

func TestToSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Electronics", "electronics"},
		{"Home & Kitchen", "home--kitchen"},
		{"  Mobile   Phones  ", "-mobile-phones-"},
		{"Déjà Vu", "dj-vu"},
		{"Books", "books"},
		{"TVs / Audio", "tvs--audio"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ToSlug(tt.name); got != tt.want {
			t.Errorf("ToSlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
