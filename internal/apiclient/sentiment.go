package apiclient

import (
	"context"

	"johar-connect/internal/domain"
)

type SentimentService struct {
	c *Client
}

func (s *SentimentService) GetAnalysis(ctx context.Context) (domain.SentimentOverview, error) {
	var out domain.SentimentOverview
	err := s.c.get(ctx, "/sentiment/analysis", &out)
	return out, err
}

func (s *SentimentService) AnalyzeText(ctx context.Context, text string) (domain.SentimentAnalysis, error) {
	var out domain.SentimentAnalysis
	err := s.c.post(ctx, "/sentiment/analyze", domain.AnalyzeTextRequest{Text: text}, &out)
	return out, err
}
