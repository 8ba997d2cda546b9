package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

type QueryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(s domain.Store, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	const key = "rooms:all"
	var rooms []domain.Room
	if ok, _ := s.cache.Get(ctx, key, &rooms); ok {
		return rooms, nil
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rooms, int(s.cacheTTL.Seconds()))
	return rooms, nil
}

func (s *QueryService) GetRoom(ctx context.Context, id string) (domain.RoomView, error) {
	if !domain.ValidID(id) {
		return domain.RoomView{}, fmt.Errorf("room id %q: %w", id, domain.ErrInvalidID)
	}
	key := "room:" + id
	var view domain.RoomView
	if ok, _ := s.cache.Get(ctx, key, &view); ok {
		return view, nil
	}
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return domain.RoomView{}, err
	}
	reviews, err := s.store.ListReviews(ctx, id)
	if err != nil {
		return domain.RoomView{}, err
	}
	view = domain.RoomView{Room: room, Reviews: reviews}
	_ = s.cache.Set(ctx, key, view, int(s.cacheTTL.Seconds()))
	return view, nil
}
