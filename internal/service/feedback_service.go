package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"johar-connect/internal/domain"
)

var feedbackCategories = map[domain.FeedbackCategory]bool{
	domain.FeedbackGeneral:       true,
	domain.FeedbackGuide:         true,
	domain.FeedbackAccommodation: true,
	domain.FeedbackTransport:     true,
	domain.FeedbackMarketplace:   true,
	domain.FeedbackPlatform:      true,
}

// FeedbackService guarda opiniones y las etiqueta con SentimentService.
type FeedbackService struct {
	mu        sync.RWMutex
	items     []domain.Feedback
	sentiment *SentimentService
	now       func() time.Time
}

func NewFeedbackService(sentiment *SentimentService) *FeedbackService {
	if sentiment == nil {
		sentiment = NewSentimentService()
	}
	s := &FeedbackService{
		sentiment: sentiment,
		now:       func() time.Time { return time.Now().UTC() },
	}
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	seed := []domain.FeedbackInput{
		{Rating: 5, Comment: "Amazing guide, loved the Hundru falls trek", Category: domain.FeedbackGuide},
		{Rating: 4, Comment: "Beautiful homestay and friendly hosts", Category: domain.FeedbackAccommodation},
		{Rating: 2, Comment: "Bus was late and crowded", Category: domain.FeedbackTransport},
		{Rating: 3, Comment: "Booking took a while on the website", Category: domain.FeedbackPlatform},
		{Rating: 5, Comment: "Authentic Dokra craft, great quality", Category: domain.FeedbackMarketplace},
	}
	for i, in := range seed {
		s.items = append(s.items, domain.Feedback{
			ID:        fmt.Sprintf("feedback_%d", i+1),
			User:      "Anonymous",
			Rating:    in.Rating,
			Comment:   in.Comment,
			Category:  in.Category,
			Sentiment: sentiment.Analyze(in.Comment).Sentiment,
			Date:      base.AddDate(0, 0, i*3),
		})
	}
	return s
}

func (s *FeedbackService) List() []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Feedback(nil), s.items...)
}

// Submit valida y almacena una opinión; user vacío se registra como anónimo.
func (s *FeedbackService) Submit(user string, in domain.FeedbackInput) (domain.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Feedback{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return domain.Feedback{}, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	category := in.Category
	if category == "" {
		category = domain.FeedbackGeneral
	}
	if !feedbackCategories[category] {
		return domain.Feedback{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if strings.TrimSpace(user) == "" {
		user = "Anonymous"
	}
	fb := domain.Feedback{
		ID:        "feedback_" + uuid.NewString(),
		User:      user,
		Rating:    in.Rating,
		Comment:   comment,
		Category:  category,
		Sentiment: s.sentiment.Analyze(comment).Sentiment,
		Date:      s.now(),
	}
	s.mu.Lock()
	s.items = append(s.items, fb)
	s.mu.Unlock()
	return fb, nil
}

// Overview resume el sentimiento de todas las opiniones almacenadas.
func (s *FeedbackService) Overview() domain.SentimentOverview {
	return s.sentiment.Overview(s.List())
}
