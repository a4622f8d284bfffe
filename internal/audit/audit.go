// Package audit journals committed edits and saves.
//
// The journal is optional. [Open] picks a backend from the configured URL:
// postgres:// or postgresql:// uses a pgx pool, sqlite:<path> uses an
// embedded SQLite file, and an empty URL returns [Nop].
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csvedit/internal/logging"
)

// Action represents the type of change being journaled.
type Action string

const (
	ActionCellDelete Action = "cell_delete"
	ActionCellEdit   Action = "cell_edit"
	ActionTableSave  Action = "table_save"
)

// Severity represents the severity level of a journal entry.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action Action) Severity {
	switch action {
	case ActionCellDelete:
		return SeverityHigh
	case ActionTableSave:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// Entry is a single journal record.
// Row and Col are one-based; both are zero for table-level actions.
type Entry struct {
	ID        uuid.UUID
	SessionID string
	Action    Action
	Severity  Severity
	Source    string // file the table was loaded from
	Row       int
	Col       int
	OldValue  string
	NewValue  string
	Target    string // save destination
	CreatedAt time.Time
}

// IsCell reports whether the entry addresses a single cell.
func (e Entry) IsCell() bool {
	return e.Row > 0 && e.Col > 0
}

// NewEntry returns an entry stamped with a fresh id, the session id from ctx,
// the action's severity and the current time.
func NewEntry(ctx context.Context, action Action, source string) Entry {
	return Entry{
		ID:        uuid.New(),
		SessionID: logging.SessionID(ctx),
		Action:    action,
		Severity:  determineSeverity(action),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder persists journal entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error                        { return nil }

// Open returns the recorder selected by url.
func Open(ctx context.Context, url string) (Recorder, error) {
	switch {
	case url == "":
		return Nop{}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		rec, err := OpenPostgres(ctx, url)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case strings.HasPrefix(url, "sqlite:"):
		rec, err := OpenSQLite(ctx, strings.TrimPrefix(url, "sqlite:"))
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("audit: unsupported database url scheme")
	}
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS cell_audit (
	id         %s PRIMARY KEY,
	session_id TEXT NOT NULL,
	action     TEXT NOT NULL,
	severity   TEXT NOT NULL,
	source     TEXT NOT NULL,
	row_idx    INTEGER,
	col_idx    INTEGER,
	old_value  TEXT,
	new_value  TEXT,
	target     TEXT,
	created_at %s NOT NULL
)`
