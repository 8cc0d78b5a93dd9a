package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthassistant/hub/internal/models"
)

// FeedbackRepository handles data access for the feedback table. The table is
// append-only: rows are never updated, and deletion happens only through the
// ON DELETE CASCADE constraint on the owning user.
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create appends one feedback record for the given user and returns the
// stored row. The rating is validated by the service before this is called;
// the table CHECK constraint is the backstop.
func (r *FeedbackRepository) Create(
	ctx context.Context, userID int64, rating int, comment *string, satisfied bool,
) (*models.FeedbackRecord, error) {
	var rec models.FeedbackRecord

	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (user_id, rating, comment, satisfied)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, rating, comment, satisfied, submitted_at`,
		userID, rating, comment, satisfied,
	).Scan(&rec.ID, &rec.UserID, &rec.Rating, &rec.Comment, &rec.Satisfied, &rec.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	return &rec, nil
}

// List returns feedback records with submitted_at inside the given bounds,
// both inclusive and nil meaning unbounded, ordered oldest first.
func (r *FeedbackRepository) List(ctx context.Context, filters models.ListFeedbackFilters) ([]models.FeedbackRecord, error) {
	query := `SELECT id, user_id, rating, comment, satisfied, submitted_at FROM feedback WHERE 1=1`

	args := []any{}
	argPos := 1

	if filters.Since != nil {
		query += fmt.Sprintf(" AND submitted_at >= $%d", argPos)
		args = append(args, *filters.Since)
		argPos++
	}

	if filters.Until != nil {
		query += fmt.Sprintf(" AND submitted_at <= $%d", argPos)
		args = append(args, *filters.Until)
		argPos++
	}

	query += " ORDER BY submitted_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord

	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Rating, &rec.Comment, &rec.Satisfied, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return records, nil
}

// ListWithUsers returns all feedback records joined with the submitting
// user's name, newest first, for the admin details view.
func (r *FeedbackRepository) ListWithUsers(ctx context.Context) ([]models.FeedbackRecordWithUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.user_id, f.rating, f.comment, f.satisfied, f.submitted_at, u.name
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		ORDER BY f.submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list feedback with users: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecordWithUser

	for rows.Next() {
		var rec models.FeedbackRecordWithUser
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Rating, &rec.Comment, &rec.Satisfied, &rec.SubmittedAt, &rec.Username,
		); err != nil {
			return nil, fmt.Errorf("scan feedback with user: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback with users: %w", err)
	}

	return records, nil
}
