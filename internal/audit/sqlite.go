package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const insertSQLiteSQL = `INSERT INTO cell_audit
	(id, session_id, action, severity, source, row_idx, col_idx, old_value, new_value, target, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteRecorder writes entries to an embedded SQLite file.
type SQLiteRecorder struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRecorder, error) {
	if path == "" {
		return nil, fmt.Errorf("audit: sqlite path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(createTableSQL, "TEXT", "TEXT")); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: create table: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record inserts e.
func (r *SQLiteRecorder) Record(ctx context.Context, e Entry) error {
	var row, col sql.NullInt64
	var oldValue, newValue sql.NullString
	if e.IsCell() {
		row = sql.NullInt64{Int64: int64(e.Row), Valid: true}
		col = sql.NullInt64{Int64: int64(e.Col), Valid: true}
		oldValue = sql.NullString{String: e.OldValue, Valid: true}
		newValue = sql.NullString{String: e.NewValue, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertSQLiteSQL,
		e.ID.String(),
		e.SessionID,
		string(e.Action),
		string(e.Severity),
		e.Source,
		row,
		col,
		oldValue,
		newValue,
		sql.NullString{String: e.Target, Valid: e.Target != ""},
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("audit: insert %s: %w", e.Action, err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
