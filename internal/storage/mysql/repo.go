package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

// queryer is satisfied by *sql.DB and *sql.Tx so the same methods serve both
// the base store and the transactional scope handed out by InTx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repo struct {
	q    queryer
	db   *sql.DB
	inTx bool
}

func New(db *sql.DB) *Repo { return &Repo{q: db, db: db} }

// InTx runs fn against a store whose writes commit together or not at all.
// Run on the DSN with clientFoundRows=true so RowsAffected reports matched
// rows; every conditional update here changes the rows it matches.
func (r *Repo) InTx(ctx context.Context, fn func(domain.Store) error) error {
	if r.inTx {
		return errors.New("mysql: nested transaction")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	if err := fn(&Repo{q: tx, db: r.db, inTx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr(err)
	}
	return nil
}

// ---- rooms ----

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return r.getRoom(ctx, id, false)
}

// LockRoom takes a row lock inside a transaction (plain read otherwise).
// This is the serialization point for the per-room check-then-act sequence.
func (r *Repo) LockRoom(ctx context.Context, id string) (domain.Room, error) {
	return r.getRoom(ctx, id, r.inTx)
}

func (r *Repo) getRoom(ctx context.Context, id string, forUpdate bool) (domain.Room, error) {
	q := getRoomSQL
	if forUpdate {
		q += " FOR UPDATE"
	}
	row := r.q.QueryRowContext(ctx, q, id)
	room, err := scanRoom(row)
	if err != nil {
		return domain.Room{}, mapErr(err)
	}
	return room, nil
}

func (r *Repo) GetRoomsByID(ctx context.Context, ids []string) (map[string]domain.Room, error) {
	if len(ids) == 0 {
		return map[string]domain.Room{}, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE id IN (` + strings.Join(ph, ",") + `)`
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make(map[string]domain.Room, len(ids))
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out[room.ID] = room
	}
	return out, mapErr(rows.Err())
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.q.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, room)
	}
	return out, mapErr(rows.Err())
}

func (r *Repo) InsertRoom(ctx context.Context, room domain.Room) error {
	imgs, _ := json.Marshal(emptyIfNil(room.Images))
	dates, _ := json.Marshal(emptyIfNil(room.BookedDates))
	_, err := r.q.ExecContext(ctx, insertRoomSQL,
		room.ID, room.Name, valStr(room.City), room.PricePerNight, string(imgs), string(dates))
	return mapErr(err)
}

func (r *Repo) AppendBookedDate(ctx context.Context, roomID, date string) (domain.UpdateResult, error) {
	return r.exec(ctx, appendDateSQL, date, roomID, date)
}

func (r *Repo) RemoveBookedDate(ctx context.Context, roomID, date string) (domain.UpdateResult, error) {
	return r.exec(ctx, removeDateSQL, date, roomID, date)
}

func (r *Repo) ReplaceBookedDate(ctx context.Context, roomID, current, next string) (domain.UpdateResult, error) {
	return r.exec(ctx, replaceDateSQL, current, next, roomID, current)
}

// ---- bookings ----

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) error {
	info, _ := json.Marshal(b.GuestInfo)
	_, err := r.q.ExecContext(ctx, insertBookingSQL,
		b.ID, b.RoomID, b.OwnerEmail, b.Date, string(info))
	return mapErr(err)
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	row := r.q.QueryRowContext(ctx, getBookingSQL, id)
	b, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, mapErr(err)
	}
	return b, nil
}

func (r *Repo) DeleteBooking(ctx context.Context, id string) (domain.UpdateResult, error) {
	return r.exec(ctx, deleteBookingSQL, id)
}

func (r *Repo) SetBookingDate(ctx context.Context, id, date string) (domain.UpdateResult, error) {
	return r.exec(ctx, setBookingDateSQL, date, id)
}

func (r *Repo) ListBookingsByOwner(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, listBookingsByOwnerSQL, email)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, b)
	}
	return out, mapErr(rows.Err())
}

// ---- reviews ----

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) error {
	_, err := r.q.ExecContext(ctx, insertReviewSQL,
		rv.RoomID, rv.AuthorEmail, rv.Rating, valStr(rv.Comment))
	return mapErr(err)
}

func (r *Repo) ListReviews(ctx context.Context, roomID string) ([]domain.Review, error) {
	rows, err := r.q.QueryContext(ctx, listReviewsSQL, roomID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.RoomID, &rv.AuthorEmail, &rv.Rating, &comment, &rv.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		if comment.Valid {
			c := comment.String
			rv.Comment = &c
		}
		out = append(out, rv)
	}
	return out, mapErr(rows.Err())
}

// ---- internals ----

func (r *Repo) exec(ctx context.Context, query string, args ...any) (domain.UpdateResult, error) {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.UpdateResult{}, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.UpdateResult{}, mapErr(err)
	}
	return domain.UpdateResult{Matched: n, Modified: n}, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRoom(row rowScanner) (domain.Room, error) {
	var room domain.Room
	var city sql.NullString
	var imagesJSON, datesJSON []byte
	if err := row.Scan(&room.ID, &room.Name, &city, &room.PricePerNight,
		&imagesJSON, &datesJSON, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return domain.Room{}, err
	}
	if city.Valid {
		c := city.String
		room.City = &c
	}
	_ = json.Unmarshal(imagesJSON, &room.Images)
	_ = json.Unmarshal(datesJSON, &room.BookedDates)
	return room, nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var infoJSON []byte
	if err := row.Scan(&b.ID, &b.RoomID, &b.OwnerEmail, &b.Date, &infoJSON, &b.CreatedAt); err != nil {
		return domain.Booking{}, err
	}
	if len(infoJSON) > 0 {
		_ = json.Unmarshal(infoJSON, &b.GuestInfo)
	}
	return b, nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	default:
		return err
	}
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
