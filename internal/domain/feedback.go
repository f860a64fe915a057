package domain

import "time"

type FeedbackCategory string

const (
	FeedbackGeneral       FeedbackCategory = "general"
	FeedbackGuide         FeedbackCategory = "guide"
	FeedbackAccommodation FeedbackCategory = "accommodation"
	FeedbackTransport     FeedbackCategory = "transport"
	FeedbackMarketplace   FeedbackCategory = "marketplace"
	FeedbackPlatform      FeedbackCategory = "platform"
)

// FeedbackInput es el cuerpo de POST /feedback.
type FeedbackInput struct {
	Rating   int              `json:"rating"`
	Comment  string           `json:"comment"`
	Category FeedbackCategory `json:"category"`
}

type Feedback struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment"`
	Category  FeedbackCategory `json:"category"`
	Sentiment SentimentLabel   `json:"sentiment"`
	Date      time.Time        `json:"date"`
}
