package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"johar-connect/internal/domain"
	"johar-connect/internal/storage"
)

// State resume quién está autenticado en la sesión actual.
type State int

const (
	Anonymous State = iota
	Authenticated
	// Degraded: hay token persistido pero el usuario no se restauró.
	Degraded
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Degraded:
		return "degraded"
	default:
		return "anonymous"
	}
}

var ErrEmptyToken = errors.New("session token is empty")

// Context es la fuente única de verdad sobre el usuario autenticado.
// El token en memoria y el persistido coinciden tras cada mutación completada.
type Context struct {
	mu     sync.RWMutex
	store  storage.KeyValueStore
	logger *zap.Logger

	user  *domain.User
	token string

	listeners []func(State)
}

func New(store storage.KeyValueStore, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		store:  store,
		logger: logger,
	}
}

// Initialize lee el token persistido. No se valida contra el backend: el
// usuario no se restaura y la sesión queda en estado Degraded.
func (c *Context) Initialize(ctx context.Context) error {
	token, ok, err := c.store.Get(ctx, storage.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}

	c.mu.Lock()
	c.user = nil
	c.token = ""
	if ok && token != "" {
		c.token = token
	}
	state := c.stateLocked()
	c.mu.Unlock()

	c.logger.Info("session initialized", zap.Stringer("state", state))
	c.notify(state)
	return nil
}

// Login fija usuario y token y persiste el token bajo storage.AuthTokenKey.
func (c *Context) Login(ctx context.Context, user domain.User, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	c.mu.Lock()
	if err := c.store.Set(ctx, storage.AuthTokenKey, token); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	u := user
	c.user = &u
	c.token = token
	state := c.stateLocked()
	c.mu.Unlock()

	c.logger.Info("session login", zap.String("user", user.Name), zap.String("role", string(user.Role)))
	c.notify(state)
	return nil
}

// Logout limpia la sesión y elimina el token persistido. Es idempotente.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	if err := c.store.Remove(ctx, storage.AuthTokenKey); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("remove persisted token: %w", err)
	}
	wasAnonymous := c.user == nil && c.token == ""
	c.user = nil
	c.token = ""
	c.mu.Unlock()

	if wasAnonymous {
		return nil
	}
	c.logger.Info("session logout")
	c.notify(Anonymous)
	return nil
}

func (c *Context) CurrentUser() (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return domain.User{}, false
	}
	return *c.user, true
}

func (c *Context) CurrentToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

// Subscribe registra fn para cada cambio de estado. Se invoca fuera del lock.
func (c *Context) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Context) stateLocked() State {
	switch {
	case c.token == "":
		return Anonymous
	case c.user == nil:
		return Degraded
	default:
		return Authenticated
	}
}

func (c *Context) notify(state State) {
	c.mu.RLock()
	listeners := make([]func(State), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}
