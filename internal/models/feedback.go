package models

import "time"

// FeedbackRecord is one submitted feedback entry. Records are immutable once
// created and are deleted in cascade with the owning user.
type FeedbackRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	Satisfied   bool      `json:"satisfied"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackRecordWithUser is a feedback record joined with the submitting
// user's name, for the admin details listing.
type FeedbackRecordWithUser struct {
	FeedbackRecord

	Username string `json:"username"`
}

// SubmitFeedbackRequest is the payload for POST /v1/feedback. Ratings outside
// 1..5 are rejected here, before storage, so out-of-range values can never
// reach the aggregator.
type SubmitFeedbackRequest struct {
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
	Satisfied *bool   `json:"satisfied,omitempty"`
}

// ListFeedbackFilters narrows a feedback listing by submission time.
// Nil bounds mean unbounded on that side; both bounds are inclusive.
type ListFeedbackFilters struct {
	Since *time.Time
	Until *time.Time
}
