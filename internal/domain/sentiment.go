package domain

import "time"

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentOverview agrega el sentimiento de todo el feedback recibido.
type SentimentOverview struct {
	OverallScore          float64                    `json:"overall_score"`
	SentimentDistribution map[SentimentLabel]float64 `json:"sentiment_distribution"`
	TotalFeedback         int                        `json:"total_feedback"`
	AverageRating         float64                    `json:"average_rating"`
}

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type SentimentAnalysis struct {
	Text       string         `json:"text"`
	Sentiment  SentimentLabel `json:"sentiment"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
	Keywords   []string       `json:"keywords,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
