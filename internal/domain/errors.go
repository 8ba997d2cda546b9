package domain

import "errors"

// Error taxonomy. Handlers map these onto HTTP statuses in one place;
// services wrap them with context via fmt.Errorf("...: %w", err).
var (
	ErrInvalidID        = errors.New("invalid identifier")
	ErrInvalidInput     = errors.New("missing or invalid input")
	ErrNotFound         = errors.New("not found")
	ErrDateConflict     = errors.New("date already booked")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrBookingFailed    = errors.New("booking failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)
