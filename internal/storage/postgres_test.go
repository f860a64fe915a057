package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type execCall struct {
	sql  string
	args []any
}

type mockRow struct {
	value string
	err   error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

// mockPgQuerier simula la tabla en memoria a partir de los argumentos recibidos.
type mockPgQuerier struct {
	rows  map[string]string
	execs []execCall
	query []execCall

	execErr error
}

func newMockPgQuerier() *mockPgQuerier {
	return &mockPgQuerier{rows: make(map[string]string)}
}

func (m *mockPgQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execs = append(m.execs, execCall{sql: sql, args: args})
	if m.execErr != nil {
		return pgconn.CommandTag{}, m.execErr
	}
	switch {
	case strings.HasPrefix(sql, "INSERT"):
		m.rows[args[0].(string)] = args[1].(string)
	case strings.HasPrefix(sql, "DELETE"):
		delete(m.rows, args[0].(string))
	}
	return pgconn.CommandTag{}, nil
}

func (m *mockPgQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.query = append(m.query, execCall{sql: sql, args: args})
	v, ok := m.rows[args[0].(string)]
	if !ok {
		return mockRow{err: pgx.ErrNoRows}
	}
	return mockRow{value: v}
}

func TestPostgresStore_Basics(t *testing.T) {
	db := newMockPgQuerier()
	store, err := NewPostgresStore(db, "client_storage")
	if err != nil {
		t.Fatalf("new postgres store: %v", err)
	}

	exerciseStore(t, store)

	upsert := db.execs[0]
	if !strings.Contains(upsert.sql, "INSERT INTO client_storage") || !strings.Contains(upsert.sql, "ON CONFLICT (key)") {
		t.Fatalf("unexpected upsert sql: %s", upsert.sql)
	}
	if !strings.Contains(upsert.sql, "$1") || len(upsert.args) != 3 {
		t.Fatalf("expected dollar placeholders with 3 args, got %s %+v", upsert.sql, upsert.args)
	}
	if !strings.Contains(db.query[0].sql, "SELECT value FROM client_storage WHERE key = $1") {
		t.Fatalf("unexpected select sql: %s", db.query[0].sql)
	}
}

func TestPostgresStore_EnsureSchemaAndErrors(t *testing.T) {
	db := newMockPgQuerier()
	store, err := NewPostgresStore(db, "client_storage")
	if err != nil {
		t.Fatalf("new postgres store: %v", err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if !strings.Contains(db.execs[0].sql, "CREATE TABLE IF NOT EXISTS client_storage") {
		t.Fatalf("unexpected schema sql: %s", db.execs[0].sql)
	}

	db.execErr = errors.New("connection reset")
	if err := store.Set(context.Background(), AuthTokenKey, "t"); err == nil {
		t.Fatalf("expected set error")
	}
	if err := store.Remove(context.Background(), AuthTokenKey); err == nil {
		t.Fatalf("expected remove error")
	}
}

func TestNewPostgresStore_RejectsBadTable(t *testing.T) {
	if _, err := NewPostgresStore(newMockPgQuerier(), "storage; DROP TABLE users"); err == nil {
		t.Fatalf("expected invalid table name error")
	}
	if _, err := NewPostgresStore(nil, "client_storage"); err == nil {
		t.Fatalf("expected error for nil connection")
	}
}
