package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
)

type ReviewService struct {
	store domain.Store
	cache domain.Cache
}

func NewReviewService(s domain.Store, c domain.Cache) *ReviewService {
	return &ReviewService{store: s, cache: c}
}

type PostReviewInput struct {
	RoomID      string
	AuthorEmail string
	Rating      int
	Comment     string
}

// Post appends a review to a room. Append-only; no consistency invariant
// rides on reviews, so this is a single write plus a cache eviction.
func (s *ReviewService) Post(ctx context.Context, in PostReviewInput) error {
	if !domain.ValidID(in.RoomID) {
		return fmt.Errorf("room id %q: %w", in.RoomID, domain.ErrInvalidID)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrInvalidInput)
	}
	rv := domain.Review{
		RoomID:      in.RoomID,
		AuthorEmail: in.AuthorEmail,
		Rating:      in.Rating,
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		rv.Comment = &c
	}
	if err := s.store.InsertReview(ctx, rv); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, "room:"+in.RoomID)
	}
	return nil
}
