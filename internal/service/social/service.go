// Package social maintains the follow graph.
package social

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
	"minitweet/pkg/mq"
)

// Store persists follow edges. Both calls are idempotent and report whether
// the edge set changed.
type Store interface {
	Follow(ctx context.Context, followerID, followeeID int64) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error)
}

type Service struct {
	store  Store
	events mq.EventPublisher
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		events: mq.NopPublisher{},
		logger: logger,
	}
}

// WithEvents publishes user.followed / user.unfollowed through pub.
func (s *Service) WithEvents(pub mq.EventPublisher) *Service {
	s.events = pub
	return s
}

// Follow makes followerID see followeeID's tweets. Following twice is a
// no-op; an unknown followee yields apperr.ErrNotFound.
func (s *Service) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followeeID <= 0 {
		return fmt.Errorf("follow: invalid user id %d: %w", followeeID, apperr.ErrValidation)
	}

	created, err := s.store.Follow(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	if created {
		s.changed(ctx, "follow", mqcontracts.RoutingKeyUserFollowed, followerID, followeeID)
	}
	return nil
}

// Unfollow removes the edge if present.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if followeeID <= 0 {
		return fmt.Errorf("unfollow: invalid user id %d: %w", followeeID, apperr.ErrValidation)
	}

	removed, err := s.store.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	if removed {
		s.changed(ctx, "unfollow", mqcontracts.RoutingKeyUserUnfollowed, followerID, followeeID)
	}
	return nil
}

func (s *Service) changed(ctx context.Context, action, routingKey string, followerID, followeeID int64) {
	metrics.IncrementFollowChange(action)
	logger.WithTrace(ctx, s.logger).Debug("Follow graph changed",
		zap.String("action", action),
		zap.Int64("follower_id", followerID),
		zap.Int64("followee_id", followeeID),
	)

	// best-effort; the publisher logs failures
	_ = s.events.Publish(ctx, routingKey, mqcontracts.FollowChangedPayload{
		FollowerID: followerID,
		FolloweeID: followeeID,
		OccurredAt: time.Now(),
	})
}
