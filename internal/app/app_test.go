package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"johar-connect/internal/apiclient"
	"johar-connect/internal/config"
	"johar-connect/internal/domain"
	"johar-connect/internal/session"
	"johar-connect/internal/storage"
)

type fakeNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNavigator) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *fakeNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type fakeBackend struct {
	mu          sync.Mutex
	token       string
	logoutAuth  []string
	ordersCalls int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.AuthResponse{
			AccessToken: b.token,
			TokenType:   "bearer",
			ExpiresIn:   1800,
			User:        domain.User{ID: "user_1", Email: "tourist@example.com", Role: domain.RoleTourist},
		})
	})
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.AuthResponse{
			AccessToken: b.token,
			User:        domain.User{ID: "user_9", Email: "new@example.com", Role: domain.RoleGuide},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logoutAuth = append(b.logoutAuth, r.Header.Get("Authorization"))
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(domain.MessageResponse{Message: "Successfully logged out"})
	})
	mux.HandleFunc("/api/marketplace/orders", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.ordersCalls++
		b.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	})
	return mux
}

func newTestApp(t *testing.T, backend *fakeBackend, store storage.KeyValueStore) (*App, *fakeNavigator) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	nav := &fakeNavigator{}
	a, err := New(context.Background(), &config.Config{APIURL: srv.URL + "/api", LoginPath: "/login"}, store, nil, nav)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, nav
}

func TestNew_RestoresPersistedTokenDegraded(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(context.Background(), storage.AuthTokenKey, "persisted")

	a, _ := newTestApp(t, &fakeBackend{token: "tok"}, store)

	if a.Session.State() != session.Degraded {
		t.Fatalf("expected degraded session, got %s", a.Session.State())
	}
	if tok, ok := a.Session.CurrentToken(); !ok || tok != "persisted" {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestSignIn_EstablishesSession(t *testing.T) {
	store := storage.NewMemoryStore()
	a, _ := newTestApp(t, &fakeBackend{token: "tok-1"}, store)

	user, err := a.SignIn(context.Background(), domain.Credentials{Email: "tourist@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.ID != "user_1" || a.Session.State() != session.Authenticated {
		t.Fatalf("unexpected session %s for %+v", a.Session.State(), user)
	}
	if got, ok, _ := store.Get(context.Background(), storage.AuthTokenKey); !ok || got != "tok-1" {
		t.Fatalf("expected persisted token, got %q", got)
	}
}

func TestSignUp_EstablishesSession(t *testing.T) {
	a, _ := newTestApp(t, &fakeBackend{token: "tok-2"}, storage.NewMemoryStore())

	user, err := a.SignUp(context.Background(), domain.RegisterInput{Email: "new@example.com", Name: "New", Password: "secret1", Role: domain.RoleGuide})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if current, ok := a.Session.CurrentUser(); !ok || current.ID != user.ID {
		t.Fatalf("expected current user %s, got %+v", user.ID, current)
	}
}

func TestSignIn_MissingTokenLeavesSessionAnonymous(t *testing.T) {
	store := storage.NewMemoryStore()
	a, _ := newTestApp(t, &fakeBackend{}, store)

	if _, err := a.SignIn(context.Background(), domain.Credentials{Email: "a@b.c", Password: "x"}); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if a.Session.State() != session.Anonymous {
		t.Fatalf("expected anonymous session, got %s", a.Session.State())
	}
	if _, ok, _ := store.Get(context.Background(), storage.AuthTokenKey); ok {
		t.Fatalf("expected no persisted token")
	}
}

func TestSignOut_NotifiesBackendOnlyWithToken(t *testing.T) {
	backend := &fakeBackend{token: "tok-3"}
	store := storage.NewMemoryStore()
	a, _ := newTestApp(t, backend, store)
	ctx := context.Background()

	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("anonymous sign out: %v", err)
	}
	if len(backend.logoutAuth) != 0 {
		t.Fatalf("expected no backend call while anonymous")
	}

	if _, err := a.SignIn(ctx, domain.Credentials{Email: "tourist@example.com", Password: "password123"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(backend.logoutAuth) != 1 || backend.logoutAuth[0] != "Bearer tok-3" {
		t.Fatalf("unexpected logout calls %+v", backend.logoutAuth)
	}
	if a.Session.State() != session.Anonymous {
		t.Fatalf("expected anonymous session, got %s", a.Session.State())
	}
	if _, ok, _ := store.Get(ctx, storage.AuthTokenKey); ok {
		t.Fatalf("expected token removed")
	}
}

func TestUnauthorized_ClearsSessionAndNavigates(t *testing.T) {
	backend := &fakeBackend{token: "tok-4"}
	store := storage.NewMemoryStore()
	a, nav := newTestApp(t, backend, store)
	ctx := context.Background()

	if _, err := a.SignIn(ctx, domain.Credentials{Email: "tourist@example.com", Password: "password123"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	_, err := a.API.Marketplace.GetOrders(ctx)
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if backend.ordersCalls != 1 {
		t.Fatalf("expected exactly one request, got %d", backend.ordersCalls)
	}
	if a.Session.State() != session.Anonymous {
		t.Fatalf("expected anonymous session, got %s", a.Session.State())
	}
	if _, ok, _ := store.Get(ctx, storage.AuthTokenKey); ok {
		t.Fatalf("expected token removed after 401")
	}
	if paths := nav.visited(); len(paths) != 1 || paths[0] != "/login" {
		t.Fatalf("unexpected navigation %+v", paths)
	}
}
