package domain

import "time"

// Room is a bookable unit. BookedDates is denormalized: the coordinator in
// internal/app keeps it in step with the bookings table on every mutation.
type Room struct {
	ID            string
	Name          string
	City          *string
	PricePerNight float64
	Images        []string
	BookedDates   []string // "YYYY-MM-DD", one entry per active booking
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasDate reports whether date is already present in BookedDates.
func (r Room) HasDate(date string) bool {
	for _, d := range r.BookedDates {
		if d == date {
			return true
		}
	}
	return false
}

// RoomView is the read model returned by the API: the room plus its reviews.
type RoomView struct {
	Room
	Reviews []Review
}
