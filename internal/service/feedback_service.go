package service

import (
	"context"
	"fmt"
	"time"

	"github.com/healthassistant/hub/internal/analytics"
	"github.com/healthassistant/hub/internal/apperrors"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/session"
)

// FeedbackStore defines the feedback data access the service needs.
type FeedbackStore interface {
	Create(ctx context.Context, userID int64, rating int, comment *string, satisfied bool) (*models.FeedbackRecord, error)
	List(ctx context.Context, filters models.ListFeedbackFilters) ([]models.FeedbackRecord, error)
	ListWithUsers(ctx context.Context) ([]models.FeedbackRecordWithUser, error)
}

// FeedbackService handles feedback submission and the admin-only analytics
// summary and details views.
type FeedbackService struct {
	repo FeedbackStore

	// now is swappable in tests; the trend window hangs off it.
	now func() time.Time
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(repo FeedbackStore) *FeedbackService {
	return &FeedbackService{repo: repo, now: time.Now}
}

// Submit appends one feedback record for the session's user. Ratings outside
// 1..5 are rejected here, before storage, so the aggregator never sees an
// out-of-range value. A nil Satisfied defaults to true.
func (s *FeedbackService) Submit(
	ctx context.Context, sess session.Session, req *models.SubmitFeedbackRequest,
) (*models.FeedbackRecord, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("rating", fmt.Sprintf("rating must be between 1 and 5, got %d", req.Rating))
	}

	satisfied := true
	if req.Satisfied != nil {
		satisfied = *req.Satisfied
	}

	var comment *string
	if req.Comment != nil && *req.Comment != "" {
		comment = req.Comment
	}

	return s.repo.Create(ctx, sess.UserID, req.Rating, comment, satisfied)
}

// Summary computes the feedback analytics summary. Admin only. The since and
// until bounds (inclusive, nil for unbounded) filter the scalar fields; the
// daily trend is windowed to the trailing seven days independent of them, so
// the whole record set is listed and both windows are applied in memory.
func (s *FeedbackService) Summary(
	ctx context.Context, sess session.Session, since, until *time.Time,
) (*models.AnalyticsSummary, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.NewNotAuthorizedError(sess.Role, "admin role required for feedback analytics")
	}

	records, err := s.repo.List(ctx, models.ListFeedbackFilters{})
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	summary := analytics.Summarize(records, since, until, s.now())

	return &summary, nil
}

// Details returns all feedback records with usernames, newest first.
// Admin only.
func (s *FeedbackService) Details(ctx context.Context, sess session.Session) ([]models.FeedbackRecordWithUser, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.NewNotAuthorizedError(sess.Role, "admin role required for feedback details")
	}

	records, err := s.repo.ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback details: %w", err)
	}

	return records, nil
}
