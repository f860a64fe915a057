package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	lastSetKey string
	lastSetTTL time.Duration
	lastExists []string

	setErr    error
	existsErr error
	existsN   int64
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func TestMemoryRevokedTokenStore_Basics(t *testing.T) {
	store := NewMemoryRevokedTokenStore()

	ok, err := store.IsRevoked("missing")
	if err != nil || ok {
		t.Fatalf("expected missing jti false,nil; got %v,%v", ok, err)
	}

	if err := store.Revoke("jti-1", 50*time.Millisecond); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err = store.IsRevoked("jti-1")
	if err != nil || !ok {
		t.Fatalf("expected jti revoked, got %v,%v", ok, err)
	}

	time.Sleep(70 * time.Millisecond)
	ok, err = store.IsRevoked("jti-1")
	if err != nil || ok {
		t.Fatalf("expected revocation expired, got %v,%v", ok, err)
	}
}

func TestMemoryRevokedTokenStore_EmptyJTI(t *testing.T) {
	store := NewMemoryRevokedTokenStore()
	if err := store.Revoke("", time.Minute); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}
	if ok, _ := store.IsRevoked(""); ok {
		t.Fatalf("empty jti should never be revoked")
	}
}

func TestRedisRevokedTokenStore_Basics(t *testing.T) {
	mock := &mockRedisKVClient{existsN: 1}
	store := &redisRevokedTokenStore{
		client: mock,
		prefix: "auth:revoked:",
	}

	if err := store.Revoke(" j1 ", 0); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if mock.lastSetKey != "auth:revoked:j1" {
		t.Fatalf("unexpected key, got %q", mock.lastSetKey)
	}
	if mock.lastSetTTL <= 0 {
		t.Fatalf("expected positive TTL fallback, got %v", mock.lastSetTTL)
	}

	ok, err := store.IsRevoked(" j1 ")
	if err != nil || !ok {
		t.Fatalf("expected revoked true,nil; got %v,%v", ok, err)
	}
	if len(mock.lastExists) != 1 || mock.lastExists[0] != "auth:revoked:j1" {
		t.Fatalf("unexpected exists key: %+v", mock.lastExists)
	}
}

func TestRedisRevokedTokenStore_ErrorPaths(t *testing.T) {
	mock := &mockRedisKVClient{
		setErr:    errors.New("set failed"),
		existsErr: errors.New("exists failed"),
	}
	store := &redisRevokedTokenStore{
		client: mock,
		prefix: "auth:revoked:",
	}

	if err := store.Revoke("", time.Minute); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}
	if err := store.Revoke("j2", time.Minute); err == nil {
		t.Fatalf("expected revoke error")
	}
	if _, err := store.IsRevoked("j2"); err == nil {
		t.Fatalf("expected exists error")
	}
}

func TestMemoryRevokedTokenStore_PrunesExpiredOnRevoke(t *testing.T) {
	store := NewMemoryRevokedTokenStore().(*memoryRevokedTokenStore)
	if err := store.Revoke("old-1", 10*time.Millisecond); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := store.Revoke("old-2", 10*time.Millisecond); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if err := store.Revoke("fresh", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	store.mu.Lock()
	n := len(store.items)
	_, kept := store.items["fresh"]
	store.mu.Unlock()
	if n != 1 || !kept {
		t.Fatalf("expected only the live jti kept, got %d entries", n)
	}
	if revoked, _ := store.IsRevoked("fresh"); !revoked {
		t.Fatalf("expected fresh jti revoked")
	}
}
