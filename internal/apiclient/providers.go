package apiclient

import (
	"context"
	"net/url"

	"johar-connect/internal/domain"
)

type ProvidersService struct {
	c *Client
}

func (s *ProvidersService) GetProviders(ctx context.Context) ([]domain.Provider, error) {
	var out []domain.Provider
	err := s.c.get(ctx, "/providers", &out)
	return out, err
}

// VerifyProvider llama POST /providers/{id}/verify sin cuerpo.
func (s *ProvidersService) VerifyProvider(ctx context.Context, providerID string) (domain.ProviderVerification, error) {
	var out domain.ProviderVerification
	err := s.c.post(ctx, "/providers/"+url.PathEscape(providerID)+"/verify", nil, &out)
	return out, err
}

func (s *ProvidersService) CreateProvider(ctx context.Context, in domain.ProviderInput) (domain.Provider, error) {
	var out domain.Provider
	err := s.c.post(ctx, "/providers", in, &out)
	return out, err
}
