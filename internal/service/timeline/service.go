package timeline

import (
	"context"
	"fmt"

	"minitweet/internal/model"
)

type Store interface {
	ListTimeline(ctx context.Context, userID int64) ([]model.Tweet, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get composes the timeline of userID: own tweets plus followees' tweets in
// insertion order. Unknown users get an empty timeline.
func (s *Service) Get(ctx context.Context, userID int64) (*model.Timeline, error) {
	tweets, err := s.store.ListTimeline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	if tweets == nil {
		tweets = []model.Tweet{}
	}
	return &model.Timeline{UserID: userID, Tweets: tweets}, nil
}
