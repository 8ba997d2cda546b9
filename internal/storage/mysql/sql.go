package mysql

const roomColumns = `id, name, city, price_per_night, images, booked_dates, created_at, updated_at`

const getRoomSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`

const listRoomsSQL = `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at DESC, id`

const insertRoomSQL = `
INSERT INTO rooms (id, name, city, price_per_night, images, booked_dates)
VALUES (?, ?, ?, ?, ?, ?)
`

// Conditional array updates on rooms.booked_dates. JSON_SEARCH with 'one'
// resolves the path of the first occurrence, so remove and replace touch
// exactly one element; the WHERE guard makes a stale date match zero rows.

const appendDateSQL = `
UPDATE rooms
SET booked_dates = JSON_ARRAY_APPEND(booked_dates, '$', ?)
WHERE id = ? AND JSON_SEARCH(booked_dates, 'one', ?) IS NULL
`

const removeDateSQL = `
UPDATE rooms
SET booked_dates = JSON_REMOVE(booked_dates, JSON_UNQUOTE(JSON_SEARCH(booked_dates, 'one', ?)))
WHERE id = ? AND JSON_SEARCH(booked_dates, 'one', ?) IS NOT NULL
`

const replaceDateSQL = `
UPDATE rooms
SET booked_dates = JSON_SET(booked_dates, JSON_UNQUOTE(JSON_SEARCH(booked_dates, 'one', ?)), ?)
WHERE id = ? AND JSON_SEARCH(booked_dates, 'one', ?) IS NOT NULL
`

const bookingColumns = `id, room_id, owner_email, booking_date, guest_info, created_at`

const getBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

const insertBookingSQL = `
INSERT INTO bookings (id, room_id, owner_email, booking_date, guest_info)
VALUES (?, ?, ?, ?, ?)
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

const setBookingDateSQL = `UPDATE bookings SET booking_date = ? WHERE id = ?`

// Newest first; aligns with the index on (owner_email, created_at).
const listBookingsByOwnerSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE owner_email = ?
ORDER BY created_at DESC, id DESC
`

const insertReviewSQL = `
INSERT INTO room_reviews (room_id, author_email, rating, comment)
VALUES (?, ?, ?, ?)
`

const listReviewsSQL = `
SELECT id, room_id, author_email, rating, comment, created_at
FROM room_reviews
WHERE room_id = ?
ORDER BY created_at DESC, id DESC
`
