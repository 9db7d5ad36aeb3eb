package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertAlert inserts or replaces the alert for a chat and marks it active.
	UpsertAlert(ctx context.Context, chatID int64, targetPrice float64) error

	// GetAlert retrieves the alert for a chat. Returns ErrNotFound when the
	// chat has no alert row.
	GetAlert(ctx context.Context, chatID int64) (*Alert, error)

	// ActiveAlerts retrieves all active alerts.
	ActiveAlerts(ctx context.Context) ([]Alert, error)

	// DeactivateAlert marks a chat's alert inactive. Returns ErrNotFound when
	// the chat has no alert row.
	DeactivateAlert(ctx context.Context, chatID int64) error

	// SaveSnapshot records an observed lowest fare.
	SaveSnapshot(ctx context.Context, snap *PriceSnapshot) error

	// RecentSnapshots retrieves the most recent snapshots for a route, newest first.
	RecentSnapshots(ctx context.Context, origin, destination string, limit int) ([]PriceSnapshot, error)

	// PruneSnapshots deletes snapshots checked before the cutoff, returning
	// the number of rows removed.
	PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *sqlxStore) UpsertAlert(ctx context.Context, chatID int64, targetPrice float64) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO alerts (chat_id, target_price, active, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			target_price = excluded.target_price,
			active = 1,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, chatID, targetPrice, now, now); err != nil {
		return fmt.Errorf("failed to upsert alert for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Alert upserted", "chat_id", chatID, "target_price", targetPrice)
	return nil
}

func (s *sqlxStore) GetAlert(ctx context.Context, chatID int64) (*Alert, error) {
	var alert Alert
	err := s.db.GetContext(ctx, &alert, `SELECT * FROM alerts WHERE chat_id = ?`, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert for chat %d: %w", chatID, err)
	}
	return &alert, nil
}

func (s *sqlxStore) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	err := s.db.SelectContext(ctx, &alerts, `SELECT * FROM alerts WHERE active = 1 ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}
	return alerts, nil
}

func (s *sqlxStore) DeactivateAlert(ctx context.Context, chatID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET active = 0, updated_at = ? WHERE chat_id = ?`, time.Now().UTC(), chatID)
	if err != nil {
		return fmt.Errorf("failed to deactivate alert for chat %d: %w", chatID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.DebugContext(ctx, "Alert deactivated", "chat_id", chatID)
	return nil
}

func (s *sqlxStore) SaveSnapshot(ctx context.Context, snap *PriceSnapshot) error {
	if snap.CheckedAt.IsZero() {
		snap.CheckedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO price_snapshots (origin, destination, price, currency, fare_date, checked_at)
		VALUES (:origin, :destination, :price, :currency, :fare_date, :checked_at)`

	if _, err := s.db.NamedExecContext(ctx, query, snap); err != nil {
		return fmt.Errorf("failed to save price snapshot: %w", err)
	}
	return nil
}

func (s *sqlxStore) RecentSnapshots(ctx context.Context, origin, destination string, limit int) ([]PriceSnapshot, error) {
	var snaps []PriceSnapshot
	query := `
		SELECT * FROM price_snapshots
		WHERE origin = ? AND destination = ?
		ORDER BY checked_at DESC
		LIMIT ?`

	if err := s.db.SelectContext(ctx, &snaps, query, origin, destination, limit); err != nil {
		return nil, fmt.Errorf("failed to list snapshots for %s-%s: %w", origin, destination, err)
	}
	return snaps, nil
}

func (s *sqlxStore) PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM price_snapshots WHERE checked_at < ?`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return removed, nil
}

func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
