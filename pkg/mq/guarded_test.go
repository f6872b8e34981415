package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"minitweet/pkg/circuitbreaker"
)

type recordingPublisher struct {
	keys []string
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	r.keys = append(r.keys, routingKey)
	return r.err
}

func TestGuardedPublisher_PassesThrough(t *testing.T) {
	next := &recordingPublisher{}
	g := NewGuardedPublisher(next, circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()), zap.NewNop())

	assert.NoError(t, g.Publish(context.Background(), "tweet.created", map[string]int{"id": 1}))
	assert.Equal(t, []string{"tweet.created"}, next.keys)
}

func TestGuardedPublisher_OpensAfterFailures(t *testing.T) {
	next := &recordingPublisher{err: errors.New("broker down")}
	cfg := circuitbreaker.Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             time.Hour,
		HalfOpenMaxRequests: 1,
	}
	g := NewGuardedPublisher(next, circuitbreaker.NewCircuitBreaker(cfg), zap.NewNop())
	ctx := context.Background()

	assert.EqualError(t, g.Publish(ctx, "a", nil), "broker down")
	assert.EqualError(t, g.Publish(ctx, "a", nil), "broker down")
	assert.ErrorIs(t, g.Publish(ctx, "a", nil), circuitbreaker.ErrCircuitBreakerOpen)
	assert.Len(t, next.keys, 2, "open breaker must not reach the broker")
}

func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "x", nil))
}
