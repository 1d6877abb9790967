package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting it instead of *pgxpool.Pool lets integration tests pass a
// transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore persists the same lossy projection as FileStore, one row per
// trip, ordered by its booking sequence number.
type PostgresStore struct {
	db       db
	fallback decimal.Decimal
}

// NewPostgresStore constructs a PostgresStore. Reloaded trips get fallback as
// their budget. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPostgresStore(db db, fallback decimal.Decimal) *PostgresStore {
	return &PostgresStore{db: db, fallback: fallback}
}

// Load returns every row in booking order. An empty table is an empty history.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT destination, departure_date, return_date
		FROM booked_trips
		ORDER BY seq`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresStore.Load: %w: %w", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		var (
			dest     string
			dep, ret pgtype.Date
		)
		if err := rows.Scan(&dest, &dep, &ret); err != nil {
			return nil, fmt.Errorf("repo.PostgresStore.Load: scan: %w: %w", domain.ErrStorageUnavailable, err)
		}
		t := domain.NewTrip(dest, s.fallback)
		if dep.Valid {
			t.DepartureDate = dep.Time
		}
		if ret.Valid {
			t.ReturnDate = ret.Time
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostgresStore.Load: rows: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return trips, nil
}

// Save replaces all rows inside one transaction, so a failed rewrite leaves
// the previous sequence in place.
func (s *PostgresStore) Save(ctx context.Context, trips []domain.Trip) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PostgresStore.Save: begin: %w: %w", domain.ErrStorageUnavailable, err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM booked_trips`); err != nil {
		return fmt.Errorf("repo.PostgresStore.Save: clear: %w: %w", domain.ErrStorageUnavailable, err)
	}

	rows := make([][]any, len(trips))
	for i, t := range trips {
		rows[i] = []any{i, t.Destination, nullableDate(t.DepartureDate), nullableDate(t.ReturnDate)}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"booked_trips"},
		[]string{"seq", "destination", "departure_date", "return_date"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("repo.PostgresStore.Save: copy: %w: %w", domain.ErrStorageUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PostgresStore.Save: commit: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func nullableDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}
