package mq

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"minitweet/pkg/circuitbreaker"
	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
)

// GuardedPublisher wraps an EventPublisher with a circuit breaker and
// records the outcome of each publish. Failures are logged and returned.
type GuardedPublisher struct {
	next    EventPublisher
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewGuardedPublisher(next EventPublisher, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *GuardedPublisher {
	return &GuardedPublisher{
		next:    next,
		breaker: breaker,
		logger:  logger,
	}
}

func (g *GuardedPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	err := g.breaker.Execute(func() error {
		return g.next.Publish(ctx, routingKey, payload)
	})

	switch {
	case err == nil:
		metrics.IncrementEventPublished(routingKey, "ok")
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen):
		metrics.IncrementEventPublished(routingKey, "skipped")
		logger.WithTrace(ctx, g.logger).Debug("Event dropped, breaker open",
			zap.String("routing_key", routingKey),
		)
	default:
		metrics.IncrementEventPublished(routingKey, "failed")
		logger.WithTrace(ctx, g.logger).Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
	return err
}
