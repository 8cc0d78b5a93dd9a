// Package analytics computes on-demand summary statistics over feedback
// records. Summarize is pure: it never touches storage and calling it twice
// on the same records yields identical output.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/healthassistant/hub/internal/models"
)

// trendWindowDays is the fixed trailing window for the daily trend. The trend
// is windowed independently of the since/until filter so the chart stays
// recent regardless of the report range.
const trendWindowDays = 7

// Summarize aggregates the given records into an AnalyticsSummary.
//
// The scalar fields (count, average rating, satisfaction rate, distribution)
// cover records with SubmittedAt inside [since, until], both bounds inclusive
// and nil meaning unbounded. The daily trend always covers the trailing seven
// days before now, regardless of since/until.
//
// Ratings are assumed to be within 1..5; out-of-range values are rejected at
// ingestion and never reach this function.
func Summarize(records []models.FeedbackRecord, since, until *time.Time, now time.Time) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		RatingDistribution: emptyDistribution(),
		DailyTrend:         []models.DailyTrendPoint{},
	}

	var (
		ratingSum      int
		satisfiedCount int
	)

	for _, rec := range records {
		if !inRange(rec.SubmittedAt, since, until) {
			continue
		}

		summary.TotalCount++
		ratingSum += rec.Rating
		summary.RatingDistribution[rec.Rating]++

		if rec.Satisfied {
			satisfiedCount++
		}
	}

	if summary.TotalCount > 0 {
		summary.AverageRating = round2(float64(ratingSum) / float64(summary.TotalCount))
		summary.SatisfactionRatePercent = round2(float64(satisfiedCount) / float64(summary.TotalCount) * 100)
	}

	summary.DailyTrend = dailyTrend(records, now)

	return summary
}

func inRange(t time.Time, since, until *time.Time) bool {
	if since != nil && t.Before(*since) {
		return false
	}

	if until != nil && t.After(*until) {
		return false
	}

	return true
}

func emptyDistribution() map[int]int {
	dist := make(map[int]int, 5)
	for rating := 1; rating <= 5; rating++ {
		dist[rating] = 0
	}

	return dist
}

// dailyTrend groups the records of the trailing window by calendar date (UTC)
// and returns per-day count and mean rating, ascending by date.
func dailyTrend(records []models.FeedbackRecord, now time.Time) []models.DailyTrendPoint {
	windowStart := now.UTC().AddDate(0, 0, -trendWindowDays)

	type bucket struct {
		count     int
		ratingSum int
	}

	buckets := make(map[string]*bucket)

	for _, rec := range records {
		submitted := rec.SubmittedAt.UTC()
		if submitted.Before(windowStart) || submitted.After(now.UTC()) {
			continue
		}

		date := submitted.Format(time.DateOnly)
		if buckets[date] == nil {
			buckets[date] = &bucket{}
		}

		buckets[date].count++
		buckets[date].ratingSum += rec.Rating
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	trend := make([]models.DailyTrendPoint, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		trend = append(trend, models.DailyTrendPoint{
			Date:          date,
			Count:         b.count,
			AverageRating: round2(float64(b.ratingSum) / float64(b.count)),
		})
	}

	return trend
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
