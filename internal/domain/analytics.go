package domain

// AnalyticsSummary resume los indicadores generales de la plataforma.
type AnalyticsSummary struct {
	TotalVisitors     int     `json:"total_visitors"`
	Revenue           float64 `json:"revenue"`
	ActiveGuides      int     `json:"active_guides"`
	MarketplaceOrders int     `json:"marketplace_orders"`
	AverageRating     float64 `json:"average_rating"`
	CompletionRate    float64 `json:"completion_rate"`
}

type TrendPoint struct {
	Period   string  `json:"period"`
	Visitors int     `json:"visitors"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}
