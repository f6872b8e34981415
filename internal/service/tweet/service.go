package tweet

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/internal/model"
	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
	"minitweet/pkg/mq"
)

type Store interface {
	CreateTweet(ctx context.Context, t *model.Tweet) error
}

type Service struct {
	store     Store
	events    mq.EventPublisher
	maxLength int
	logger    *zap.Logger
}

// NewService builds the tweet service. maxLength 0 accepts any length.
func NewService(store Store, maxLength int, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		events:    mq.NopPublisher{},
		maxLength: maxLength,
		logger:    logger,
	}
}

// WithEvents publishes tweet.created through pub.
func (s *Service) WithEvents(pub mq.EventPublisher) *Service {
	s.events = pub
	return s
}

// Post appends a tweet authored by userID.
func (s *Service) Post(ctx context.Context, userID int64, text string) (*model.Tweet, error) {
	if s.maxLength > 0 && utf8.RuneCountInString(text) > s.maxLength {
		return nil, fmt.Errorf("tweet exceeds %d characters: %w", s.maxLength, apperr.ErrValidation)
	}

	t := &model.Tweet{
		UserID: userID,
		Text:   text,
	}
	if err := s.store.CreateTweet(ctx, t); err != nil {
		return nil, fmt.Errorf("post tweet: %w", err)
	}

	metrics.IncrementTweetsPosted()
	logger.WithTrace(ctx, s.logger).Debug("Tweet posted",
		zap.Int64("user_id", userID),
		zap.Int64("tweet_id", t.ID),
	)

	// best-effort; the publisher logs failures
	_ = s.events.Publish(ctx, mqcontracts.RoutingKeyTweetCreated, mqcontracts.TweetCreatedPayload{
		TweetID:   t.ID,
		UserID:    t.UserID,
		Tweet:     t.Text,
		CreatedAt: t.CreatedAt,
	})

	return t, nil
}
