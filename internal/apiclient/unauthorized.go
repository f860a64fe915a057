package apiclient

import (
	"context"

	"go.uber.org/zap"

	"johar-connect/internal/storage"
)

// UnauthorizedEvent se emite cuando el backend responde 401 a cualquier request.
type UnauthorizedEvent struct {
	Method     string
	Path       string
	RedirectTo string
}

type UnauthorizedHandler func(ctx context.Context, evt UnauthorizedEvent)

// Navigator es la capa de ruteo de la UI.
type Navigator interface {
	Navigate(path string)
}

// NavigateOnUnauthorized adapta un Navigator para redirigir al login.
func NavigateOnUnauthorized(nav Navigator) UnauthorizedHandler {
	return func(_ context.Context, evt UnauthorizedEvent) {
		nav.Navigate(evt.RedirectTo)
	}
}

// OnUnauthorized registra h; los handlers se ejecutan en orden de registro.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

func (c *Client) handleUnauthorized(ctx context.Context, method, path string) {
	// Los handlers corren aunque el contexto del request se cancele después.
	ctx = context.WithoutCancel(ctx)

	if err := c.store.Remove(ctx, storage.AuthTokenKey); err != nil {
		c.logger.Error("remove persisted token failed", zap.Error(err))
	}
	c.logger.Warn("unauthorized response, forcing login",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("redirect", c.loginPath),
	)

	c.mu.RLock()
	handlers := make([]UnauthorizedHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	evt := UnauthorizedEvent{Method: method, Path: path, RedirectTo: c.loginPath}
	for _, h := range handlers {
		h(ctx, evt)
	}
}
