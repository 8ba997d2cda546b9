package domain

import "time"

// Booking reserves a single date on one room. Rooms are shared; a booking
// points at its room by id and carries the date it occupies.
type Booking struct {
	ID         string
	RoomID     string
	OwnerEmail string
	Date       string // "YYYY-MM-DD"
	// GuestInfo carries whatever extra fields the client sent with the
	// booking (guest name, phone, head count...). Opaque to the coordinator.
	GuestInfo map[string]any
	CreatedAt time.Time
}

// BookingView annotates a booking with its room's full booked-dates list.
// Display-only join; not part of the consistency invariant.
type BookingView struct {
	Booking
	RoomBookedDates []string
}
