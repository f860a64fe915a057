package apiclient

import (
	"context"

	"johar-connect/internal/domain"
)

// AuthService expone los endpoints de autenticación. No modifica la sesión:
// quien llama entrega el token obtenido a session.Context.Login.
type AuthService struct {
	c *Client
}

func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := s.c.post(ctx, "/auth/login", creds, &out)
	return out, err
}

func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := s.c.post(ctx, "/auth/register", in, &out)
	return out, err
}

func (s *AuthService) Logout(ctx context.Context) (domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := s.c.post(ctx, "/auth/logout", nil, &out)
	return out, err
}

// Me llama GET /auth/me y devuelve el usuario dueño del token actual.
func (s *AuthService) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	err := s.c.get(ctx, "/auth/me", &out)
	return out, err
}
