package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/healthassistant/hub/internal/api/middleware"
	"github.com/healthassistant/hub/internal/api/response"
	"github.com/healthassistant/hub/internal/api/validation"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/session"
)

// FeedbackService defines the feedback operations the handler needs.
type FeedbackService interface {
	Submit(ctx context.Context, sess session.Session, req *models.SubmitFeedbackRequest) (*models.FeedbackRecord, error)
	Summary(ctx context.Context, sess session.Session, since, until *time.Time) (*models.AnalyticsSummary, error)
	Details(ctx context.Context, sess session.Session) ([]models.FeedbackRecordWithUser, error)
}

// FeedbackHandler handles feedback submission and the admin analytics views.
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /v1/feedback.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	var req models.SubmitFeedbackRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid request body")

		return
	}

	if err := validation.ValidateStruct(req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	record, err := h.service.Submit(r.Context(), sess, &req)
	if err != nil {
		respondPipelineError(w, err)

		return
	}

	response.RespondJSON(w, http.StatusCreated, record)
}

// Summary handles GET /v1/feedback/summary. Optional since/until query
// parameters (RFC3339, inclusive) narrow the aggregate window.
func (h *FeedbackHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	since, err := parseTimeParam(r, "since")
	if err != nil {
		response.RespondBadRequest(w, "since must be in RFC3339 format")

		return
	}

	until, err := parseTimeParam(r, "until")
	if err != nil {
		response.RespondBadRequest(w, "until must be in RFC3339 format")

		return
	}

	summary, err := h.service.Summary(r.Context(), sess, since, until)
	if err != nil {
		respondPipelineError(w, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Records handles GET /v1/feedback/records.
func (h *FeedbackHandler) Records(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	records, err := h.service.Details(r.Context(), sess)
	if err != nil {
		respondPipelineError(w, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}

// parseTimeParam returns the named query parameter as a time, or nil when absent.
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // caller reports a fixed message
	}

	return &t, nil
}
