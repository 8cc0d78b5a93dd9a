package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthassistant/hub/internal/api/middleware"
	"github.com/healthassistant/hub/internal/api/response"
	"github.com/healthassistant/hub/internal/api/validation"
	"github.com/healthassistant/hub/internal/apperrors"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/session"
)

// ChatService answers a user question through the retrieval pipeline.
type ChatService interface {
	AnswerQuestion(ctx context.Context, sess session.Session, question string) (string, error)
}

// SmartQuestionsService produces personalized question suggestions.
type SmartQuestionsService interface {
	Generate(ctx context.Context, sess session.Session) ([]string, error)
}

// ChatHandler handles the chat and smart-questions endpoints.
type ChatHandler struct {
	chat      ChatService
	questions SmartQuestionsService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat ChatService, questions SmartQuestionsService) *ChatHandler {
	return &ChatHandler{chat: chat, questions: questions}
}

// Chat handles POST /v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	var req models.ChatRequest

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

	answer, err := h.chat.AnswerQuestion(r.Context(), sess, req.Message)
	if err != nil {
		respondPipelineError(w, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, models.ChatResponse{Answer: answer})
}

// SmartQuestions handles GET /v1/smart-questions.
func (h *ChatHandler) SmartQuestions(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	questions, err := h.questions.Generate(r.Context(), sess)
	if err != nil {
		respondPipelineError(w, err)

		return
	}

	response.RespondJSON(w, http.StatusOK, models.SmartQuestionsResponse{Questions: questions})
}

// respondPipelineError maps service errors to problem responses. Retrieval and
// generation failures are upstream-provider problems, so they map to 502
// rather than 500.
func respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		response.RespondBadRequest(w, err.Error())
	case errors.Is(err, apperrors.ErrUnknownIdentity):
		response.RespondNotFound(w, err.Error())
	case errors.Is(err, apperrors.ErrNotAuthorized):
		response.RespondForbidden(w, err.Error())
	case errors.Is(err, apperrors.ErrRetrieval):
		response.RespondError(w, http.StatusBadGateway, "Bad Gateway", "Retrieval failed")
	case errors.Is(err, apperrors.ErrGeneration):
		response.RespondError(w, http.StatusBadGateway, "Bad Gateway", "Generation failed")
	default:
		response.RespondInternalServerError(w, "Internal error")
	}
}
