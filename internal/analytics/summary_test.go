package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassistant/hub/internal/models"
)

func feedbackAt(rating int, satisfied bool, submittedAt time.Time) models.FeedbackRecord {
	return models.FeedbackRecord{Rating: rating, Satisfied: satisfied, SubmittedAt: submittedAt}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty record set returns all zeros and a full distribution", func(t *testing.T) {
		got := Summarize(nil, nil, nil, now)

		assert.Equal(t, 0, got.TotalCount)
		assert.Zero(t, got.AverageRating)
		assert.Zero(t, got.SatisfactionRatePercent)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, got.RatingDistribution)
		assert.Empty(t, got.DailyTrend)
	})

	t.Run("computes rounded averages, rate, and distribution", func(t *testing.T) {
		records := []models.FeedbackRecord{
			feedbackAt(5, true, now.Add(-1*time.Hour)),
			feedbackAt(5, true, now.Add(-2*time.Hour)),
			feedbackAt(4, true, now.Add(-3*time.Hour)),
			feedbackAt(3, false, now.Add(-4*time.Hour)),
		}

		got := Summarize(records, nil, nil, now)

		assert.Equal(t, 4, got.TotalCount)
		assert.InDelta(t, 4.25, got.AverageRating, 0.0001)
		assert.InDelta(t, 75.0, got.SatisfactionRatePercent, 0.0001)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 2}, got.RatingDistribution)
	})

	t.Run("average rounds to two decimals", func(t *testing.T) {
		records := []models.FeedbackRecord{
			feedbackAt(5, true, now),
			feedbackAt(4, true, now),
			feedbackAt(1, false, now),
		}

		got := Summarize(records, nil, nil, now)
		assert.InDelta(t, 3.33, got.AverageRating, 0.0001)
		assert.InDelta(t, 66.67, got.SatisfactionRatePercent, 0.0001)
	})

	t.Run("since and until are inclusive and bound only the scalar fields", func(t *testing.T) {
		since := now.AddDate(0, 0, -2)
		until := now.AddDate(0, 0, -1)
		records := []models.FeedbackRecord{
			feedbackAt(5, true, since),              // on the lower bound: included
			feedbackAt(3, false, until),             // on the upper bound: included
			feedbackAt(1, false, now.Add(-1*time.Hour)), // inside the trend window, outside [since, until]
		}

		got := Summarize(records, &since, &until, now)

		assert.Equal(t, 2, got.TotalCount)
		assert.InDelta(t, 4.0, got.AverageRating, 0.0001)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 1}, got.RatingDistribution)

		// The excluded record still contributes to the 7-day trend.
		var trendCount int
		for _, p := range got.DailyTrend {
			trendCount += p.Count
		}
		assert.Equal(t, 3, trendCount)
	})

	t.Run("trend covers only the trailing seven days and ascends by date", func(t *testing.T) {
		records := []models.FeedbackRecord{
			feedbackAt(4, true, now.AddDate(0, 0, -10)), // outside the trend window
			feedbackAt(5, true, now.AddDate(0, 0, -3)),
			feedbackAt(3, true, now.AddDate(0, 0, -3)),
			feedbackAt(2, false, now.AddDate(0, 0, -1)),
		}

		got := Summarize(records, nil, nil, now)

		require.Len(t, got.DailyTrend, 2)
		assert.Equal(t, "2025-06-12", got.DailyTrend[0].Date)
		assert.Equal(t, 2, got.DailyTrend[0].Count)
		assert.InDelta(t, 4.0, got.DailyTrend[0].AverageRating, 0.0001)
		assert.Equal(t, "2025-06-14", got.DailyTrend[1].Date)
		assert.Equal(t, 1, got.DailyTrend[1].Count)
		assert.InDelta(t, 2.0, got.DailyTrend[1].AverageRating, 0.0001)

		// The 10-day-old record is still counted in the scalar summary.
		assert.Equal(t, 4, got.TotalCount)
	})

	t.Run("is idempotent over the same record set", func(t *testing.T) {
		records := []models.FeedbackRecord{
			feedbackAt(5, true, now.Add(-1*time.Hour)),
			feedbackAt(2, false, now.AddDate(0, 0, -2)),
		}

		first := Summarize(records, nil, nil, now)
		second := Summarize(records, nil, nil, now)
		assert.Equal(t, first, second)
	})
}
