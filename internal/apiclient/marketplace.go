package apiclient

import (
	"context"

	"johar-connect/internal/domain"
)

type MarketplaceService struct {
	c *Client
}

func (s *MarketplaceService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.c.get(ctx, "/marketplace/products", &out)
	return out, err
}

func (s *MarketplaceService) CreateOrder(ctx context.Context, in domain.OrderInput) (domain.Order, error) {
	var out domain.Order
	err := s.c.post(ctx, "/marketplace/orders", in, &out)
	return out, err
}

func (s *MarketplaceService) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := s.c.get(ctx, "/marketplace/orders", &out)
	return out, err
}
