package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/shahedul-alam/the-hotel-server/internal/adapters/token"
	"github.com/shahedul-alam/the-hotel-server/internal/app"
	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

type Handlers struct {
	Rooms    *app.QueryService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
	Tokens   *token.Manager
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// public
	s.mux.Get("/rooms", h.listRooms)
	s.mux.Get("/rooms/{id}", h.getRoom)
	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(rate.Limit(2), 5))
		r.Post("/get-token", h.getToken)
		r.Get("/remove-token", h.removeToken)
	})

	// authenticated
	s.mux.Group(func(r chi.Router) {
		r.Use(Auth(h.Tokens))
		r.Post("/booking", h.createBooking)
		r.Get("/my-bookings", h.myBookings)
		r.Delete("/cancel-booking", h.cancelBooking)
		r.Patch("/update-booking", h.updateBooking)
		r.Post("/review", h.postReview)
	})
}

// ---- response envelope ----

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// writeErr maps the domain error taxonomy onto HTTP statuses. Internal
// detail stays in the logs; the caller gets a stable human-readable message.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid identifier")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "missing or invalid input")
	case errors.Is(err, domain.ErrDateConflict):
		writeError(w, http.StatusConflict, "date already booked")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusInternalServerError, "store unavailable")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// ---- rooms ----

type roomResp struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	City          *string      `json:"city,omitempty"`
	PricePerNight float64      `json:"pricePerNight"`
	Images        []string     `json:"images"`
	BookedDates   []string     `json:"bookedDates"`
	Reviews       []reviewResp `json:"reviews,omitempty"`
}

type reviewResp struct {
	Email   string  `json:"email"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func toRoomResp(r domain.Room, reviews []domain.Review) roomResp {
	out := roomResp{
		ID:            r.ID,
		Name:          r.Name,
		City:          r.City,
		PricePerNight: r.PricePerNight,
		Images:        orEmpty(r.Images),
		BookedDates:   orEmpty(r.BookedDates),
	}
	for _, rv := range reviews {
		out.Reviews = append(out.Reviews, reviewResp{Email: rv.AuthorEmail, Rating: rv.Rating, Comment: rv.Comment})
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.ListRooms(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]roomResp, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomResp(rm, nil))
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	view, err := h.Rooms.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: toRoomResp(view.Room, view.Reviews)})
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	// roomId and bookingDate are pulled out; everything else in the body is
	// guest info the coordinator stores verbatim.
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	roomID, _ := body["roomId"].(string)
	date, _ := body["bookingDate"].(string)
	delete(body, "roomId")
	delete(body, "bookingDate")

	bookingID, err := h.Bookings.Create(r.Context(), app.CreateBookingInput{
		RoomID:     roomID,
		Date:       date,
		OwnerEmail: id.Email,
		GuestInfo:  body,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]string{"bookingId": bookingID}})
}

type myBookingResp struct {
	ID              string         `json:"id"`
	RoomID          string         `json:"roomId"`
	Date            string         `json:"bookingDate"`
	GuestInfo       map[string]any `json:"guestInfo,omitempty"`
	RoomBookedDates []string       `json:"roomBookedDates"`
}

func (h *Handlers) myBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	owner := r.URL.Query().Get("email")

	views, err := h.Bookings.ListForOwner(r.Context(), owner, id.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]myBookingResp, 0, len(views))
	for _, v := range views {
		out = append(out, myBookingResp{
			ID:              v.ID,
			RoomID:          v.RoomID,
			Date:            v.Date,
			GuestInfo:       v.GuestInfo,
			RoomBookedDates: orEmpty(v.RoomBookedDates),
		})
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	q := r.URL.Query()
	if email := q.Get("email"); email != "" && email != id.Email {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	err := h.Bookings.Cancel(r.Context(), app.CancelBookingInput{
		BookingID:   q.Get("bookingId"),
		RoomID:      q.Get("roomId"),
		Date:        q.Get("date"),
		CallerEmail: id.Email,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "booking cancelled"})
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	var in struct {
		RoomID             string `json:"roomId"`
		BookingID          string `json:"bookingId"`
		UserEmail          string `json:"userEmail"`
		CurrentBookingDate string `json:"currentBookingDate"`
		NewBookingDate     string `json:"newBookingDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.UserEmail != "" && in.UserEmail != id.Email {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	err := h.Bookings.Reschedule(r.Context(), app.RescheduleInput{
		BookingID:   in.BookingID,
		RoomID:      in.RoomID,
		CurrentDate: in.CurrentBookingDate,
		NewDate:     in.NewBookingDate,
		CallerEmail: id.Email,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "booking updated"})
}

// ---- reviews ----

func (h *Handlers) postReview(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	q := r.URL.Query()
	if email := q.Get("email"); email != "" && email != id.Email {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var in struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.Reviews.Post(r.Context(), app.PostReviewInput{
		RoomID:      q.Get("id"),
		AuthorEmail: id.Email,
		Rating:      in.Rating,
		Comment:     in.Comment,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "review posted"})
}

// ---- auth cookie ----

func (h *Handlers) getToken(w http.ResponseWriter, r *http.Request) {
	var in token.Identity
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	tok, err := h.Tokens.Issue(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.Tokens.SetCookie(w, tok)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "token issued"})
}

func (h *Handlers) removeToken(w http.ResponseWriter, r *http.Request) {
	h.Tokens.ClearCookie(w)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "token cleared"})
}
