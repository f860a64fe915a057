package apiclient

import (
	"context"
	"net/url"

	"johar-connect/internal/domain"
)

type AnalyticsService struct {
	c *Client
}

// GetAnalytics llama GET /analytics.
func (s *AnalyticsService) GetAnalytics(ctx context.Context) (domain.AnalyticsSummary, error) {
	var out domain.AnalyticsSummary
	err := s.c.get(ctx, "/analytics", &out)
	return out, err
}

// GetTrends llama GET /analytics/trends?period=.
func (s *AnalyticsService) GetTrends(ctx context.Context, period string) ([]domain.TrendPoint, error) {
	var out []domain.TrendPoint
	q := url.Values{"period": []string{period}}
	err := s.c.get(ctx, "/analytics/trends?"+q.Encode(), &out)
	return out, err
}
