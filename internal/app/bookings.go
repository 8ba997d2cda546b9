package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shahedul-alam/the-hotel-server/internal/adapters/observability"
	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

// BookingService coordinates the paired mutations that keep a room's
// booked-dates list and the bookings table consistent. It holds no locks of
// its own; the store (via the strategy's transaction) is the serialization
// point.
type BookingService struct {
	strategy ConsistencyStrategy
	store    domain.Store // read paths outside the mutation scope
	cache    domain.Cache
}

func NewBookingService(strategy ConsistencyStrategy, store domain.Store, cache domain.Cache) *BookingService {
	return &BookingService{strategy: strategy, store: store, cache: cache}
}

type CreateBookingInput struct {
	RoomID     string
	Date       string
	OwnerEmail string
	GuestInfo  map[string]any
}

type CancelBookingInput struct {
	BookingID   string
	RoomID      string
	Date        string
	CallerEmail string
}

type RescheduleInput struct {
	BookingID   string
	RoomID      string
	CurrentDate string
	NewDate     string
	CallerEmail string
}

// Create inserts a booking and appends its date to the room's booked-dates
// list. Under the transactional strategy the room row is locked before the
// duplicate check, so at most one of two concurrent creates for the same
// room/date can succeed.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (string, error) {
	if !domain.ValidID(in.RoomID) {
		return "", fmt.Errorf("room id %q: %w", in.RoomID, domain.ErrInvalidID)
	}
	if in.Date == "" {
		return "", fmt.Errorf("booking date is required: %w", domain.ErrInvalidInput)
	}

	id := domain.NewID()
	err := s.strategy.Run(ctx, func(st domain.Store) error {
		room, err := st.LockRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if room.HasDate(in.Date) {
			return fmt.Errorf("room %s on %s: %w", in.RoomID, in.Date, domain.ErrDateConflict)
		}
		if err := st.InsertBooking(ctx, domain.Booking{
			ID:         id,
			RoomID:     in.RoomID,
			OwnerEmail: in.OwnerEmail,
			Date:       in.Date,
			GuestInfo:  in.GuestInfo,
		}); err != nil {
			return fmt.Errorf("%w: insert booking: %v", domain.ErrBookingFailed, err)
		}
		res, err := st.AppendBookedDate(ctx, in.RoomID, in.Date)
		if err != nil {
			return fmt.Errorf("%w: append date: %v", domain.ErrBookingFailed, err)
		}
		if res.Matched == 0 {
			return fmt.Errorf("%w: room date not appended", domain.ErrBookingFailed)
		}
		return nil
	})
	if err != nil {
		observability.ObserveBooking("create", outcome(err))
		return "", err
	}

	s.invalidateRoom(ctx, in.RoomID)
	observability.ObserveBooking("create", "ok")
	log.Info().Str("booking", id).Str("room", in.RoomID).Str("date", in.Date).Msg("booking created")
	return id, nil
}

// Cancel removes one occurrence of the date from the room and deletes the
// booking. Both halves must land for the call to succeed; the strategy
// decides whether a partial failure is rolled back.
func (s *BookingService) Cancel(ctx context.Context, in CancelBookingInput) error {
	if !domain.ValidID(in.BookingID) || !domain.ValidID(in.RoomID) {
		return fmt.Errorf("cancel ids: %w", domain.ErrInvalidID)
	}
	if in.Date == "" {
		return fmt.Errorf("booking date is required: %w", domain.ErrInvalidInput)
	}

	err := s.strategy.Run(ctx, func(st domain.Store) error {
		b, err := st.GetBooking(ctx, in.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
			}
			return err
		}
		if b.OwnerEmail != in.CallerEmail {
			return fmt.Errorf("booking belongs to another user: %w", domain.ErrForbidden)
		}
		res, err := st.RemoveBookedDate(ctx, in.RoomID, in.Date)
		if err != nil {
			return fmt.Errorf("%w: remove date: %v", domain.ErrBookingFailed, err)
		}
		if res.Matched == 0 {
			return fmt.Errorf("date not found or already removed: %w", domain.ErrNotFound)
		}
		del, err := st.DeleteBooking(ctx, in.BookingID)
		if err != nil {
			return fmt.Errorf("%w: delete booking: %v", domain.ErrBookingFailed, err)
		}
		if del.Matched == 0 {
			return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		observability.ObserveBooking("cancel", outcome(err))
		return err
	}

	s.invalidateRoom(ctx, in.RoomID)
	observability.ObserveBooking("cancel", "ok")
	log.Info().Str("booking", in.BookingID).Str("room", in.RoomID).Msg("booking cancelled")
	return nil
}

// Reschedule replaces exactly one occurrence of the current date with the new
// one, keyed on the current date so a stale client loses cleanly, then fixes
// the booking's own date field. The new date is checked for conflicts on the
// same room before the replace.
func (s *BookingService) Reschedule(ctx context.Context, in RescheduleInput) error {
	if !domain.ValidID(in.BookingID) || !domain.ValidID(in.RoomID) {
		return fmt.Errorf("reschedule ids: %w", domain.ErrInvalidID)
	}
	if in.CurrentDate == "" || in.NewDate == "" {
		return fmt.Errorf("both dates are required: %w", domain.ErrInvalidInput)
	}

	err := s.strategy.Run(ctx, func(st domain.Store) error {
		b, err := st.GetBooking(ctx, in.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
			}
			return err
		}
		if b.OwnerEmail != in.CallerEmail {
			return fmt.Errorf("booking belongs to another user: %w", domain.ErrForbidden)
		}
		room, err := st.LockRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if in.NewDate != in.CurrentDate && room.HasDate(in.NewDate) {
			return fmt.Errorf("room %s on %s: %w", in.RoomID, in.NewDate, domain.ErrDateConflict)
		}
		res, err := st.ReplaceBookedDate(ctx, in.RoomID, in.CurrentDate, in.NewDate)
		if err != nil {
			return fmt.Errorf("%w: replace date: %v", domain.ErrBookingFailed, err)
		}
		if res.Matched == 0 {
			return fmt.Errorf("room or current booking date not found: %w", domain.ErrNotFound)
		}
		upd, err := st.SetBookingDate(ctx, in.BookingID, in.NewDate)
		if err != nil {
			return fmt.Errorf("%w: update booking date: %v", domain.ErrBookingFailed, err)
		}
		if upd.Matched == 0 {
			return fmt.Errorf("booking not found: %w", domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		observability.ObserveBooking("reschedule", outcome(err))
		return err
	}

	s.invalidateRoom(ctx, in.RoomID)
	observability.ObserveBooking("reschedule", "ok")
	log.Info().Str("booking", in.BookingID).Str("room", in.RoomID).
		Str("from", in.CurrentDate).Str("to", in.NewDate).Msg("booking rescheduled")
	return nil
}

// ListForOwner returns the owner's bookings newest-first, each annotated with
// its room's full booked-dates list.
func (s *BookingService) ListForOwner(ctx context.Context, ownerEmail, callerEmail string) ([]domain.BookingView, error) {
	if ownerEmail != callerEmail {
		return nil, fmt.Errorf("bookings belong to another user: %w", domain.ErrForbidden)
	}
	bookings, err := s.store.ListBookingsByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return []domain.BookingView{}, nil
	}

	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.RoomID]; ok {
			continue
		}
		seen[b.RoomID] = struct{}{}
		ids = append(ids, b.RoomID)
	}
	rooms, err := s.store.GetRoomsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := domain.BookingView{Booking: b}
		if r, ok := rooms[b.RoomID]; ok {
			v.RoomBookedDates = r.BookedDates
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *BookingService) invalidateRoom(ctx context.Context, roomID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "rooms:all")
	_ = s.cache.Del(ctx, "room:"+roomID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDateConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
