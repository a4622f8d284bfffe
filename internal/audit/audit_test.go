package audit

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/csvedit/internal/logging"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestNewEntry(t *testing.T) {
	ctx := logging.WithSession(context.Background(), "sess-42")

	e := NewEntry(ctx, ActionCellDelete, "data.csv")

	if e.ID == uuid.Nil {
		t.Error("NewEntry() ID is nil")
	}
	if e.SessionID != "sess-42" {
		t.Errorf("SessionID = %q, want %q", e.SessionID, "sess-42")
	}
	if e.Severity != SeverityHigh {
		t.Errorf("Severity = %q, want %q", e.Severity, SeverityHigh)
	}
	if e.Source != "data.csv" {
		t.Errorf("Source = %q, want %q", e.Source, "data.csv")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestDetermineSeverity(t *testing.T) {
	tests := []struct {
		action Action
		want   Severity
	}{
		{ActionCellDelete, SeverityHigh},
		{ActionCellEdit, SeverityMedium},
		{ActionTableSave, SeverityLow},
	}

	for _, tt := range tests {
		if got := determineSeverity(tt.action); got != tt.want {
			t.Errorf("determineSeverity(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestOpen_Nop(t *testing.T) {
	rec, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if _, ok := rec.(Nop); !ok {
		t.Errorf("Open(\"\") = %T, want Nop", rec)
	}
	if err := rec.Record(context.Background(), Entry{}); err != nil {
		t.Errorf("Nop.Record() error = %v", err)
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	if _, err := Open(context.Background(), "mysql://localhost/db"); err == nil {
		t.Error("Open() expected error for unsupported scheme")
	}
}

func TestPostgresRecorder(t *testing.T) {
	db := &fakeExecer{}
	ctx := context.Background()

	rec, err := NewPostgresRecorder(ctx, db)
	if err != nil {
		t.Fatalf("NewPostgresRecorder() error = %v", err)
	}
	if len(db.calls) != 1 || !strings.Contains(db.calls[0].sql, "CREATE TABLE IF NOT EXISTS cell_audit") {
		t.Fatalf("expected CREATE TABLE call, got %+v", db.calls)
	}
	if !strings.Contains(db.calls[0].sql, "UUID PRIMARY KEY") {
		t.Errorf("postgres schema should use UUID ids: %s", db.calls[0].sql)
	}

	e := NewEntry(ctx, ActionCellEdit, "data.csv")
	e.Row, e.Col = 2, 3
	e.OldValue, e.NewValue = "old", "new"

	if err := rec.Record(ctx, e); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	call := db.calls[1]
	if !strings.HasPrefix(call.sql, "INSERT INTO cell_audit") {
		t.Errorf("Record() sql = %q", call.sql)
	}
	if len(call.args) != 11 {
		t.Fatalf("Record() args = %d, want 11", len(call.args))
	}
	if id := call.args[0].(pgtype.UUID); !id.Valid || uuid.UUID(id.Bytes) != e.ID {
		t.Errorf("id arg = %+v, want %s", id, e.ID)
	}
	if row := call.args[5].(pgtype.Int4); !row.Valid || row.Int32 != 2 {
		t.Errorf("row arg = %+v, want 2", row)
	}
	if nv := call.args[8].(pgtype.Text); !nv.Valid || nv.String != "new" {
		t.Errorf("new_value arg = %+v, want new", nv)
	}
	if target := call.args[9].(pgtype.Text); target.Valid {
		t.Errorf("target arg = %+v, want NULL", target)
	}
}

func TestPostgresRecorder_SaveHasNullCell(t *testing.T) {
	db := &fakeExecer{}
	ctx := context.Background()
	rec, err := NewPostgresRecorder(ctx, db)
	if err != nil {
		t.Fatalf("NewPostgresRecorder() error = %v", err)
	}

	e := NewEntry(ctx, ActionTableSave, "data.csv")
	e.Target = "out.csv"
	if err := rec.Record(ctx, e); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	args := db.calls[1].args
	if row := args[5].(pgtype.Int4); row.Valid {
		t.Errorf("row arg = %+v, want NULL for save", row)
	}
	if target := args[9].(pgtype.Text); !target.Valid || target.String != "out.csv" {
		t.Errorf("target arg = %+v, want out.csv", target)
	}
}

func TestPostgresRecorder_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewPostgresRecorder(ctx, &fakeExecer{err: errors.New("connection refused")}); err == nil {
		t.Error("NewPostgresRecorder() expected error when table creation fails")
	}

	db := &fakeExecer{}
	rec, err := NewPostgresRecorder(ctx, db)
	if err != nil {
		t.Fatalf("NewPostgresRecorder() error = %v", err)
	}
	db.err = errors.New("deadlock detected")

	err = rec.Record(ctx, NewEntry(ctx, ActionCellEdit, "x.csv"))
	if err == nil || !strings.Contains(err.Error(), "cell_edit") {
		t.Errorf("Record() error = %v, want error naming the action", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSQLiteRecorder(t *testing.T) {
	ctx := logging.WithSession(context.Background(), "sess-sqlite")
	path := filepath.Join(t.TempDir(), "audit.db")

	rec, err := Open(ctx, "sqlite:"+path)
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer rec.Close()

	edit := NewEntry(ctx, ActionCellEdit, "data.csv")
	edit.Row, edit.Col = 1, 2
	edit.OldValue, edit.NewValue = "", "Z"
	if err := rec.Record(ctx, edit); err != nil {
		t.Fatalf("Record(edit) error = %v", err)
	}

	save := NewEntry(ctx, ActionTableSave, "data.csv")
	save.Target = "copy.csv"
	if err := rec.Record(ctx, save); err != nil {
		t.Fatalf("Record(save) error = %v", err)
	}

	db := rec.(*SQLiteRecorder).db

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cell_audit WHERE session_id = ?", "sess-sqlite").Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 2 {
		t.Errorf("journal rows = %d, want 2", count)
	}

	var oldValue, newValue sql.NullString
	var row sql.NullInt64
	err = db.QueryRowContext(ctx,
		"SELECT row_idx, old_value, new_value FROM cell_audit WHERE id = ?", edit.ID.String(),
	).Scan(&row, &oldValue, &newValue)
	if err != nil {
		t.Fatalf("edit query error = %v", err)
	}
	if !row.Valid || row.Int64 != 1 {
		t.Errorf("row_idx = %+v, want 1", row)
	}
	if !oldValue.Valid || oldValue.String != "" {
		t.Errorf("old_value = %+v, want empty non-NULL", oldValue)
	}
	if newValue.String != "Z" {
		t.Errorf("new_value = %q, want %q", newValue.String, "Z")
	}

	var target sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT row_idx, target FROM cell_audit WHERE id = ?", save.ID.String()).Scan(&row, &target); err != nil {
		t.Fatalf("save query error = %v", err)
	}
	if row.Valid {
		t.Errorf("save row_idx = %+v, want NULL", row)
	}
	if target.String != "copy.csv" {
		t.Errorf("target = %q, want %q", target.String, "copy.csv")
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), "sqlite:"); err == nil {
		t.Error("Open(\"sqlite:\") expected error")
	}
}
