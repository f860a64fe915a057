package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"johar-connect/internal/domain"
)

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	user := domain.User{ID: "u1", Email: "Tourist@Example.com", Name: "Tourist", Role: domain.RoleTourist}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByEmail(ctx, "tourist@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user %+v", got)
	}
	if _, err := repo.GetByID(ctx, "u1"); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if err := repo.Create(ctx, domain.User{ID: "u2", Email: "tourist@example.com"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type userRow struct {
	user domain.User
	err  error
}

func (r userRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.user.ID
	*(dest[1].(*string)) = r.user.Email
	*(dest[2].(*string)) = r.user.Name
	*(dest[3].(*string)) = string(r.user.Role)
	*(dest[4].(*string)) = r.user.WalletAddress
	*(dest[5].(*bool)) = r.user.IsActive
	*(dest[6].(*string)) = r.user.PasswordHash
	*(dest[7].(*time.Time)) = r.user.CreatedAt
	return nil
}

type mockUserDB struct {
	lastSQL  string
	lastArgs []any
	row      userRow
	execErr  error
}

func (m *mockUserDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.lastSQL = sql
	m.lastArgs = args
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockUserDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	m.lastArgs = args
	return m.row
}

func TestPgUserRepository_Create(t *testing.T) {
	db := &mockUserDB{}
	repo := NewPgUserRepository(db)
	user := domain.User{ID: "u1", Email: "Guide@Example.com", Name: "Guide", Role: domain.RoleGuide, IsActive: true}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(db.lastSQL, "INSERT INTO users") {
		t.Fatalf("unexpected sql %s", db.lastSQL)
	}
	if len(db.lastArgs) != 8 || db.lastArgs[1] != "guide@example.com" || db.lastArgs[3] != "guide" {
		t.Fatalf("unexpected args %+v", db.lastArgs)
	}
}

func TestPgUserRepository_CreateDuplicate(t *testing.T) {
	db := &mockUserDB{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewPgUserRepository(db)

	if err := repo.Create(context.Background(), domain.User{ID: "u1", Email: "a@b.c"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestPgUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &mockUserDB{row: userRow{user: domain.User{
		ID: "u1", Email: "vendor@example.com", Name: "Vendor", Role: domain.RoleVendor, IsActive: true, CreatedAt: created,
	}}}
	repo := NewPgUserRepository(db)

	got, err := repo.GetByEmail(context.Background(), "VENDOR@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.Role != domain.RoleVendor || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user %+v", got)
	}
	if !strings.Contains(db.lastSQL, "WHERE email = $1") || db.lastArgs[0] != "vendor@example.com" {
		t.Fatalf("unexpected query %s %+v", db.lastSQL, db.lastArgs)
	}
}

func TestPgUserRepository_GetByIDNotFound(t *testing.T) {
	db := &mockUserDB{row: userRow{err: pgx.ErrNoRows}}
	repo := NewPgUserRepository(db)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPgUserRepository_EnsureSchema(t *testing.T) {
	db := &mockUserDB{}
	repo := NewPgUserRepository(db)

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if !strings.Contains(db.lastSQL, "CREATE TABLE IF NOT EXISTS users") {
		t.Fatalf("unexpected sql %s", db.lastSQL)
	}
}
