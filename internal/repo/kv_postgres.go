package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agu27/EuroPlan/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgKV is the Postgres implementation of KVStore, backed by the
// local_storage table created in migrations/.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KVStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KVStore {
	return &pgKV{db: db}
}

// Get selects the value for key.
func (r *pgKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
		SELECT value
		FROM local_storage
		WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.pgKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.pgKV.Get: %w", err)
	}
	return []byte(value), nil
}

// Set upserts the value for key in a single statement.
func (r *pgKV) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO local_storage (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": string(value),
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.pgKV.Set: %w", err)
	}
	return nil
}

// Delete removes the row for key. Zero affected rows is not an error.
func (r *pgKV) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM local_storage WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.pgKV.Delete: %w", err)
	}
	return nil
}
