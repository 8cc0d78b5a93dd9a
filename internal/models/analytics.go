package models

// DailyTrendPoint is the per-day aggregate for the trend chart: number of
// feedback entries and their mean rating on one calendar date.
type DailyTrendPoint struct {
	Date          string  `json:"date"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// AnalyticsSummary is the on-demand aggregate over a set of feedback records.
// RatingDistribution always carries all five keys 1..5, zero-valued when no
// record has that rating. It is computed fresh per request and never stored.
type AnalyticsSummary struct {
	TotalCount              int               `json:"total_count"`
	AverageRating           float64           `json:"average_rating"`
	SatisfactionRatePercent float64           `json:"satisfaction_rate_percent"`
	RatingDistribution      map[int]int       `json:"rating_distribution"`
	DailyTrend              []DailyTrendPoint `json:"daily_trend"`
}
