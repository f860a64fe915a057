package apiclient

import (
	"context"

	"johar-connect/internal/domain"
)

type FeedbackService struct {
	c *Client
}

func (s *FeedbackService) GetFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := s.c.get(ctx, "/feedback", &out)
	return out, err
}

func (s *FeedbackService) SubmitFeedback(ctx context.Context, in domain.FeedbackInput) (domain.Feedback, error) {
	var out domain.Feedback
	err := s.c.post(ctx, "/feedback", in, &out)
	return out, err
}
