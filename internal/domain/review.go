package domain

import "time"

type Review struct {
	ID          int64
	RoomID      string
	AuthorEmail string
	Rating      int // 1..5
	Comment     *string
	CreatedAt   time.Time
}
