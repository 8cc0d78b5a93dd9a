// Package service contains the application's business logic: the chat query
// pipeline, smart-question generation, feedback handling, and login.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/healthassistant/hub/internal/apperrors"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/prompt"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/internal/session"
)

// topKPassages is the fixed number of passages requested per query.
const topKPassages = 3

// Fixed pipeline responses. NoResultsMessage is returned without calling the
// generator when retrieval finds nothing; GenerationFailedMessage masks a
// generator failure as a successful-looking answer so raw provider errors
// never reach an end user.
const (
	NoResultsMessage        = "I apologize, but I don't have any relevant medical information to answer this question."
	GenerationFailedMessage = "I apologize, but I encountered an error. Please try again."
)

// PassageRetriever provides similarity search over the medical corpus.
type PassageRetriever interface {
	Search(ctx context.Context, query string, k int) ([]models.RetrievedPassage, error)
}

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProfileStore provides health-profile lookup. A user without a profile
// yields (nil, nil), not an error.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
}

// UserStore resolves identities to stored users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ChatService runs the retrieval-augmented query pipeline:
// retrieve -> assemble -> prompt -> generate -> normalize. Each collaborator
// is called at most once per invocation; there are no retries.
type ChatService struct {
	retriever PassageRetriever
	generator TextGenerator
	profiles  ProfileStore
	users     UserStore
	logger    *slog.Logger
}

// ChatServiceParams configures ChatService.
type ChatServiceParams struct {
	Retriever PassageRetriever
	Generator TextGenerator
	Profiles  ProfileStore
	Users     UserStore
	Logger    *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(p ChatServiceParams) *ChatService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ChatService{
		retriever: p.Retriever,
		generator: p.Generator,
		profiles:  p.Profiles,
		users:     p.Users,
		logger:    logger,
	}
}

// AnswerQuestion answers the question for the session's user.
//
// Failure handling is deliberately asymmetric: retrieval failures propagate
// as RetrievalError, while generator failures are masked into
// GenerationFailedMessage. Zero retrieved passages short-circuit to
// NoResultsMessage without calling the generator, so an empty context can
// never produce a hallucinated answer.
func (s *ChatService) AnswerQuestion(ctx context.Context, sess session.Session, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.NewValidationError("message", "message is required")
	}

	if _, err := resolveUser(ctx, s.users, sess); err != nil {
		return "", err
	}

	passages, err := s.retriever.Search(ctx, question, topKPassages)
	if err != nil {
		s.logger.Error("chat: retrieval failed", "error", err, "user_id", sess.UserID)

		return "", apperrors.NewRetrievalError(err)
	}

	if len(passages) == 0 {
		s.logger.Info("chat: no relevant passages", "user_id", sess.UserID)

		return NoResultsMessage, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}

	answerPrompt := prompt.BuildAnswerPrompt(prompt.Assemble(passages, profile), question)

	answer, err := s.generator.Complete(ctx, answerPrompt)
	if err != nil {
		s.logger.Error("chat: generation failed", "error", err, "user_id", sess.UserID)

		return GenerationFailedMessage, nil
	}

	return answer, nil
}

// resolveUser maps a session identity to its stored user. An identity with no
// user row is a caller error (UnknownIdentityError), not a pipeline failure.
func resolveUser(ctx context.Context, users UserStore, sess session.Session) (*models.User, error) {
	user, err := users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewUnknownIdentityError(sess.Username)
		}

		return nil, fmt.Errorf("resolve user: %w", err)
	}

	return user, nil
}
