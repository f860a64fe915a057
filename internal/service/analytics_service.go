package service

import (
	"time"

	"johar-connect/internal/domain"
)

// AnalyticsService produce los indicadores simulados del panel.
type AnalyticsService struct {
	now func() time.Time
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{now: func() time.Time { return time.Now().UTC() }}
}

func (s *AnalyticsService) Summary() domain.AnalyticsSummary {
	return domain.AnalyticsSummary{
		TotalVisitors:     15420,
		Revenue:           2450000,
		ActiveGuides:      156,
		MarketplaceOrders: 892,
		AverageRating:     4.6,
		CompletionRate:    87.5,
	}
}

// Trends devuelve la serie del periodo pedido; un periodo desconocido se trata como mensual.
func (s *AnalyticsService) Trends(period string) []domain.TrendPoint {
	now := s.now()
	switch period {
	case "daily":
		return buildTrend(7, func(i int) string {
			return now.AddDate(0, 0, i-6).Format("2006-01-02")
		}, 450, 180000, 70)
	case "weekly":
		return buildTrend(12, func(i int) string {
			return now.AddDate(0, 0, 7*(i-11)).Format("2006-01-02")
		}, 800, 300000, 150)
	default:
		return buildTrend(12, func(i int) string {
			return now.AddDate(0, i-11, 0).Format("2006-01")
		}, 3200, 1200000, 600)
	}
}

func buildTrend(n int, label func(int) string, visitors int, revenue float64, bookings int) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, n)
	for i := 0; i < n; i++ {
		// variación determinista para que el panel no sea plano
		step := (i*37)%11 - 5
		points = append(points, domain.TrendPoint{
			Period:   label(i),
			Visitors: visitors + step*visitors/40,
			Revenue:  revenue + float64(step)*revenue/40,
			Bookings: bookings + step*bookings/40,
		})
	}
	return points
}
