package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the subset of *pgxpool.Pool the recorder needs.
type Execer interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

const insertPostgresSQL = `INSERT INTO cell_audit
	(id, session_id, action, severity, source, row_idx, col_idx, old_value, new_value, target, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// PostgresRecorder writes entries through pgx.
type PostgresRecorder struct {
	db    Execer
	close func()
}

// OpenPostgres connects to url and ensures the journal table exists.
func OpenPostgres(ctx context.Context, url string) (*PostgresRecorder, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("audit: parse database url: %w", err)
	}
	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("audit: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit: ping: %w", err)
	}

	rec, err := NewPostgresRecorder(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	rec.close = pool.Close
	return rec, nil
}

// NewPostgresRecorder wraps an existing connection and creates the journal
// table if needed.
func NewPostgresRecorder(ctx context.Context, db Execer) (*PostgresRecorder, error) {
	if _, err := db.Exec(ctx, fmt.Sprintf(createTableSQL, "UUID", "TIMESTAMPTZ")); err != nil {
		return nil, fmt.Errorf("audit: create table: %w", err)
	}
	return &PostgresRecorder{db: db}, nil
}

// Record inserts e.
func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	var row, col pgtype.Int4
	var oldValue, newValue pgtype.Text
	if e.IsCell() {
		row = pgtype.Int4{Int32: int32(e.Row), Valid: true}
		col = pgtype.Int4{Int32: int32(e.Col), Valid: true}
		oldValue = pgtype.Text{String: e.OldValue, Valid: true}
		newValue = pgtype.Text{String: e.NewValue, Valid: true}
	}

	_, err := r.db.Exec(ctx, insertPostgresSQL,
		pgtype.UUID{Bytes: [16]byte(e.ID), Valid: true},
		e.SessionID,
		string(e.Action),
		string(e.Severity),
		e.Source,
		row,
		col,
		oldValue,
		newValue,
		pgtype.Text{String: e.Target, Valid: e.Target != ""},
		pgtype.Timestamptz{Time: e.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("audit: insert %s: %w", e.Action, err)
	}
	return nil
}

// Close releases the pool if the recorder opened it.
func (r *PostgresRecorder) Close() error {
	if r.close != nil {
		r.close()
	}
	return nil
}
