package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ EventStore = (*PostgresEventStore)(nil)

type PostgresEventStore struct {
	pool *pgxpool.Pool
}

func NewPostgresEventStore(pool *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{pool: pool}
}

func (s *PostgresEventStore) Record(ctx context.Context, event AcceptedEvent) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO payment_events (event_id, event_type, order_id, amount, currency, event_timestamp, received_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING`,
		event.EventID,
		event.EventType,
		event.OrderID,
		event.Amount,
		event.Currency,
		pgtype.Timestamptz{Time: event.Timestamp, Valid: true},
		pgtype.Timestamptz{Time: event.ReceivedAt, Valid: true},
		event.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert payment event: %w", err)
	}
	return nil
}

func (s *PostgresEventStore) Close() error {
	// The pool is owned by main; nothing to release here.
	return nil
}
