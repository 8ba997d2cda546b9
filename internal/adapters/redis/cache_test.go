package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/shahedul-alam/the-hotel-server/internal/adapters/redis"
	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

func newCache(t *testing.T) *redisad.Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	return redisad.New(srv.Addr(), "", 0)
}

func TestCacheRoundTrip(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	room := domain.Room{ID: domain.NewID(), Name: "Sea View", BookedDates: []string{"2024-05-01"}}
	if err := c.Set(ctx, "room:"+room.ID, room, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Room
	ok, err := c.Get(ctx, "room:"+room.ID, &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != room.ID || len(got.BookedDates) != 1 || got.BookedDates[0] != "2024-05-01" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := newCache(t)

	var dst domain.Room
	ok, err := c.Get(context.Background(), "room:absent", &dst)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss")
	}
}

func TestCacheDel(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "rooms:all", []domain.Room{}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "rooms:all"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var dst []domain.Room
	if ok, _ := c.Get(ctx, "rooms:all", &dst); ok {
		t.Fatalf("key survived deletion")
	}
}
