package service

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"johar-connect/internal/domain"
)

var positiveWords = map[string]bool{
	"amazing": true, "beautiful": true, "excellent": true, "friendly": true, "good": true,
	"great": true, "helpful": true, "love": true, "loved": true, "nice": true,
	"perfect": true, "recommend": true, "clean": true, "wonderful": true, "authentic": true,
}

var negativeWords = map[string]bool{
	"bad": true, "dirty": true, "disappointing": true, "expensive": true, "late": true,
	"poor": true, "rude": true, "terrible": true, "unsafe": true, "worst": true,
	"crowded": true, "broken": true, "awful": true, "slow": true, "overpriced": true,
}

// SentimentService clasifica texto contando palabras positivas y negativas.
type SentimentService struct {
	now func() time.Time
}

func NewSentimentService() *SentimentService {
	return &SentimentService{now: func() time.Time { return time.Now().UTC() }}
}

func (s *SentimentService) Analyze(text string) domain.SentimentAnalysis {
	out := domain.SentimentAnalysis{
		Text:      text,
		Sentiment: domain.SentimentNeutral,
		Timestamp: s.now(),
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return out
	}
	var pos, neg int
	seen := make(map[string]bool)
	for _, w := range words {
		switch {
		case positiveWords[w]:
			pos++
		case negativeWords[w]:
			neg++
		default:
			continue
		}
		if !seen[w] {
			seen[w] = true
			out.Keywords = append(out.Keywords, w)
		}
	}
	sort.Strings(out.Keywords)

	if pos+neg > 0 {
		out.Score = float64(pos-neg) / float64(pos+neg)
	}
	switch {
	case out.Score > 0.1:
		out.Sentiment = domain.SentimentPositive
		out.Confidence = math.Min(out.Score, 1)
	case out.Score < -0.1:
		out.Sentiment = domain.SentimentNegative
		out.Confidence = math.Min(-out.Score, 1)
	default:
		out.Confidence = 1 - math.Abs(out.Score)
	}
	return out
}

// Overview agrega el feedback recibido en porcentajes por etiqueta.
func (s *SentimentService) Overview(feedback []domain.Feedback) domain.SentimentOverview {
	out := domain.SentimentOverview{
		SentimentDistribution: map[domain.SentimentLabel]float64{
			domain.SentimentPositive: 0,
			domain.SentimentNeutral:  0,
			domain.SentimentNegative: 0,
		},
		TotalFeedback: len(feedback),
	}
	if len(feedback) == 0 {
		return out
	}
	var ratings, score float64
	counts := make(map[domain.SentimentLabel]int)
	for _, f := range feedback {
		counts[f.Sentiment]++
		ratings += float64(f.Rating)
		switch f.Sentiment {
		case domain.SentimentPositive:
			score++
		case domain.SentimentNegative:
			score--
		}
	}
	total := float64(len(feedback))
	for label, n := range counts {
		out.SentimentDistribution[label] = round2(float64(n) / total * 100)
	}
	out.OverallScore = round2(score / total)
	out.AverageRating = round2(ratings / total)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
