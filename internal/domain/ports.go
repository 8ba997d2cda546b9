package domain

import "context"

// UpdateResult reports how many records an update matched and how many it
// changed. The coordinator uses Matched==0 to distinguish "not found" from
// store failure; the conditional array updates only match rows they change.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Store is the room/booking storage contract. Array updates are conditional:
// remove and replace are keyed on a current element and touch exactly one
// occurrence, so a stale date makes them match nothing.
type Store interface {
	// Rooms
	GetRoom(ctx context.Context, id string) (Room, error)
	// LockRoom reads the room and, inside a transaction, locks its row until
	// commit. Outside a transaction it is a plain read.
	LockRoom(ctx context.Context, id string) (Room, error)
	GetRoomsByID(ctx context.Context, ids []string) (map[string]Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	InsertRoom(ctx context.Context, r Room) error
	AppendBookedDate(ctx context.Context, roomID, date string) (UpdateResult, error)
	RemoveBookedDate(ctx context.Context, roomID, date string) (UpdateResult, error)
	ReplaceBookedDate(ctx context.Context, roomID, current, next string) (UpdateResult, error)

	// Bookings
	InsertBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	DeleteBooking(ctx context.Context, id string) (UpdateResult, error)
	SetBookingDate(ctx context.Context, id, date string) (UpdateResult, error)
	ListBookingsByOwner(ctx context.Context, email string) ([]Booking, error)

	// Reviews
	InsertReview(ctx context.Context, rv Review) error
	ListReviews(ctx context.Context, roomID string) ([]Review, error)
}

// TxStore adds a transactional scope: fn runs against a Store whose writes
// commit together or not at all.
type TxStore interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
