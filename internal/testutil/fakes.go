package testutil

import (
	"context"
	"sync"
	"time"
)

// Denylist is an in-memory revocation store.
type Denylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	Err     error
}

func NewDenylist() *Denylist {
	return &Denylist{revoked: map[string]time.Duration{}}
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return false, d.Err
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// TTL returns the ttl tokenID was revoked with.
func (d *Denylist) TTL(tokenID string) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ttl, ok := d.revoked[tokenID]
	return ttl, ok
}

// Event is one recorded publish.
type Event struct {
	RoutingKey string
	Payload    any
}

// Events records published events.
type Events struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (e *Events) Publish(_ context.Context, routingKey string, payload any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, Event{RoutingKey: routingKey, Payload: payload})
	return e.Err
}

// Keys returns the routing keys published so far, in order.
func (e *Events) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		keys = append(keys, ev.RoutingKey)
	}
	return keys
}

// All returns a copy of the recorded events.
func (e *Events) All() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Event(nil), e.events...)
}
