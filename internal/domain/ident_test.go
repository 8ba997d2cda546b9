package domain_test

import (
	"strings"
	"testing"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

func TestValidID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"minted id", domain.NewID(), true},
		{"canonical literal", "11111111-1111-4111-8111-111111111111", true},
		{"empty", "", false},
		{"too short", "1234", false},
		{"right length wrong alphabet", strings.Repeat("z", 36), false},
		{"undashed hex", strings.Repeat("a", 32), false},
		{"trailing junk", domain.NewID() + "x", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.ValidID(tc.in); got != tc.want {
				t.Fatalf("ValidID(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := domain.NewID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
