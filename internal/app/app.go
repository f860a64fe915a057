package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"johar-connect/internal/apiclient"
	"johar-connect/internal/config"
	"johar-connect/internal/domain"
	"johar-connect/internal/session"
	"johar-connect/internal/storage"
)

var ErrMissingToken = errors.New("auth response without access token")

// App es la raíz de la aplicación: dueña de la sesión y del cliente API,
// que solo comparten el almacenamiento durable.
type App struct {
	Session *session.Context
	API     *apiclient.Client
	logger  *zap.Logger
}

// New conecta storage, sesión y cliente, suscribe la sesión y el navegador
// al evento 401 e inicializa la sesión desde el token persistido.
func New(ctx context.Context, cfg *config.Config, store storage.KeyValueStore, logger *zap.Logger, nav apiclient.Navigator) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sess := session.New(store, logger.Named("session"))
	client := apiclient.NewClient(cfg.APIURL, store,
		apiclient.WithLogger(logger.Named("api")),
		apiclient.WithLoginPath(cfg.LoginPath),
		apiclient.WithTimeout(cfg.APITimeout),
	)

	client.OnUnauthorized(func(ctx context.Context, _ apiclient.UnauthorizedEvent) {
		if err := sess.Logout(ctx); err != nil {
			logger.Error("session logout after 401 failed", zap.Error(err))
		}
	})
	if nav != nil {
		client.OnUnauthorized(apiclient.NavigateOnUnauthorized(nav))
	}

	if err := sess.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}

	return &App{
		Session: sess,
		API:     client,
		logger:  logger,
	}, nil
}

// SignIn obtiene credenciales del backend y las entrega a la sesión.
func (a *App) SignIn(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	resp, err := a.API.Auth.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	return a.establish(ctx, resp)
}

// SignUp registra al usuario y deja la sesión autenticada.
func (a *App) SignUp(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	resp, err := a.API.Auth.Register(ctx, in)
	if err != nil {
		return domain.User{}, err
	}
	return a.establish(ctx, resp)
}

// SignOut avisa al backend (best effort) y limpia la sesión local.
func (a *App) SignOut(ctx context.Context) error {
	if _, ok := a.Session.CurrentToken(); ok {
		if _, err := a.API.Auth.Logout(ctx); err != nil {
			a.logger.Warn("backend logout failed", zap.Error(err))
		}
	}
	return a.Session.Logout(ctx)
}

func (a *App) establish(ctx context.Context, resp domain.AuthResponse) (domain.User, error) {
	if resp.AccessToken == "" {
		return domain.User{}, ErrMissingToken
	}
	if err := a.Session.Login(ctx, resp.User, resp.AccessToken); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}
