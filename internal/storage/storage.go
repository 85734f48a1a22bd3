package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// AcceptedEvent is a verified payment event handed down by the gateway.
type AcceptedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"received_at"`
	Payload    []byte    `json:"payload"`
}

// EventStore records accepted events for order/sale processing.
type EventStore interface {
	// Record persists the event. Recording the same event id twice is a
	// no-op, not an error.
	Record(ctx context.Context, event AcceptedEvent) error

	Close() error
}

// ReplayLedger deduplicates redelivered events that are still inside the
// freshness window. Dedup happens after the verdict: a redelivered event is
// still Accepted, it just isn't applied twice.
type ReplayLedger interface {
	// MarkProcessed claims the event id, first writer wins. Returns false
	// when the id was already claimed within the TTL.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}
