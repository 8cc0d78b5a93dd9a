package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassistant/hub/internal/apperrors"
	"github.com/healthassistant/hub/internal/models"
)

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("stores a valid submission", func(t *testing.T) {
		comment := "very helpful"
		satisfied := false

		repo := &mockFeedbackStore{
			createFunc: func(_ context.Context, userID int64, rating int, comment *string, satisfied bool) (*models.FeedbackRecord, error) {
				assert.Equal(t, int64(1), userID)
				assert.Equal(t, 4, rating)
				require.NotNil(t, comment)
				assert.Equal(t, "very helpful", *comment)
				assert.False(t, satisfied)

				return &models.FeedbackRecord{ID: 10, UserID: userID, Rating: rating, Comment: comment, Satisfied: satisfied, SubmittedAt: time.Now()}, nil
			},
		}

		svc := NewFeedbackService(repo)

		rec, err := svc.Submit(context.Background(), userSession(), &models.SubmitFeedbackRequest{
			Rating:    4,
			Comment:   &comment,
			Satisfied: &satisfied,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), rec.ID)
	})

	t.Run("satisfied defaults to true", func(t *testing.T) {
		repo := &mockFeedbackStore{
			createFunc: func(_ context.Context, _ int64, _ int, _ *string, satisfied bool) (*models.FeedbackRecord, error) {
				assert.True(t, satisfied)

				return &models.FeedbackRecord{ID: 1}, nil
			},
		}

		_, err := NewFeedbackService(repo).Submit(context.Background(), userSession(), &models.SubmitFeedbackRequest{Rating: 5})
		require.NoError(t, err)
	})

	t.Run("empty comment stored as null", func(t *testing.T) {
		empty := ""

		repo := &mockFeedbackStore{
			createFunc: func(_ context.Context, _ int64, _ int, comment *string, _ bool) (*models.FeedbackRecord, error) {
				assert.Nil(t, comment)

				return &models.FeedbackRecord{ID: 1}, nil
			},
		}

		_, err := NewFeedbackService(repo).Submit(context.Background(), userSession(), &models.SubmitFeedbackRequest{Rating: 3, Comment: &empty})
		require.NoError(t, err)
	})

	t.Run("rejects out-of-range ratings before storage", func(t *testing.T) {
		repo := &mockFeedbackStore{
			createFunc: func(_ context.Context, _ int64, _ int, _ *string, _ bool) (*models.FeedbackRecord, error) {
				return &models.FeedbackRecord{}, nil
			},
		}
		svc := NewFeedbackService(repo)

		for _, rating := range []int{0, -1, 6, 100} {
			_, err := svc.Submit(context.Background(), userSession(), &models.SubmitFeedbackRequest{Rating: rating})
			assert.ErrorIs(t, err, apperrors.ErrValidation, "rating %d", rating)
		}

		assert.Zero(t, repo.createCalls)
	})
}

func TestFeedbackService_Summary(t *testing.T) {
	t.Run("non-admin is refused", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackStore{})

		_, err := svc.Summary(context.Background(), userSession(), nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("aggregates all records", func(t *testing.T) {
		now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
		repo := &mockFeedbackStore{
			listFunc: func(_ context.Context, filters models.ListFeedbackFilters) ([]models.FeedbackRecord, error) {
				// The trailing-7-day trend is independent of the caller's
				// bounds, so the service always lists unfiltered.
				assert.Nil(t, filters.Since)
				assert.Nil(t, filters.Until)

				return []models.FeedbackRecord{
					{ID: 1, Rating: 5, Satisfied: true, SubmittedAt: now.Add(-2 * time.Hour)},
					{ID: 2, Rating: 3, Satisfied: false, SubmittedAt: now.Add(-26 * time.Hour)},
				}, nil
			},
		}

		svc := NewFeedbackService(repo)
		svc.now = func() time.Time { return now }

		summary, err := svc.Summary(context.Background(), adminSession(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalCount)
		assert.InDelta(t, 4.0, summary.AverageRating, 1e-9)
		assert.InDelta(t, 50.0, summary.SatisfactionRatePercent, 1e-9)
		assert.Len(t, summary.DailyTrend, 2)
	})

	t.Run("bounds narrow scalars but not the trend", func(t *testing.T) {
		now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
		since := now.Add(-3 * time.Hour)
		repo := &mockFeedbackStore{
			listFunc: func(_ context.Context, _ models.ListFeedbackFilters) ([]models.FeedbackRecord, error) {
				return []models.FeedbackRecord{
					{ID: 1, Rating: 5, Satisfied: true, SubmittedAt: now.Add(-2 * time.Hour)},
					{ID: 2, Rating: 1, Satisfied: false, SubmittedAt: now.Add(-26 * time.Hour)},
				}, nil
			},
		}

		svc := NewFeedbackService(repo)
		svc.now = func() time.Time { return now }

		summary, err := svc.Summary(context.Background(), adminSession(), &since, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalCount)
		assert.InDelta(t, 5.0, summary.AverageRating, 1e-9)
		assert.Len(t, summary.DailyTrend, 2, "record outside the bounds still feeds the trend")
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		cause := errors.New("connection refused")
		repo := &mockFeedbackStore{
			listFunc: func(_ context.Context, _ models.ListFeedbackFilters) ([]models.FeedbackRecord, error) {
				return nil, cause
			},
		}

		_, err := NewFeedbackService(repo).Summary(context.Background(), adminSession(), nil, nil)
		assert.ErrorIs(t, err, cause)
	})
}

func TestFeedbackService_Details(t *testing.T) {
	t.Run("non-admin is refused", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackStore{})

		_, err := svc.Details(context.Background(), userSession())
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("returns joined records", func(t *testing.T) {
		repo := &mockFeedbackStore{
			listWithUsersFunc: func(_ context.Context) ([]models.FeedbackRecordWithUser, error) {
				return []models.FeedbackRecordWithUser{
					{FeedbackRecord: models.FeedbackRecord{ID: 2, Rating: 4}, Username: "john_doe"},
					{FeedbackRecord: models.FeedbackRecord{ID: 1, Rating: 5}, Username: "admin"},
				}, nil
			},
		}

		records, err := NewFeedbackService(repo).Details(context.Background(), adminSession())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "john_doe", records[0].Username)
	})
}
