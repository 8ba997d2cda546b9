package domain

import "github.com/google/uuid"

// Identifiers are canonical RFC 4122 UUIDs: 36 chars, hex plus hyphens.
const idLength = 36

// NewID mints a fresh identifier.
func NewID() string { return uuid.NewString() }

// ValidID reports whether s is a well-formed identifier. Pure; callers must
// reject invalid ids before any store lookup.
func ValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
