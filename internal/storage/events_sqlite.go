package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oakpos/paygate/internal/migrations"
)

var _ EventStore = (*SQLiteEventStore)(nil)

// SQLiteEventStore is the single-binary event ledger for local development.
type SQLiteEventStore struct {
	db *sql.DB
}

func NewSQLiteEventStore(ctx context.Context, path string) (*SQLiteEventStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteEventStore{db: db}, nil
}

func (s *SQLiteEventStore) Record(ctx context.Context, event AcceptedEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_events (event_id, event_type, order_id, amount, currency, event_timestamp, received_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING`,
		event.EventID,
		event.EventType,
		event.OrderID,
		event.Amount,
		event.Currency,
		event.Timestamp.UTC(),
		event.ReceivedAt.UTC(),
		event.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert payment event: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) Close() error {
	return s.db.Close()
}
