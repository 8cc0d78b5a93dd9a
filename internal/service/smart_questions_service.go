package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/healthassistant/hub/internal/apperrors"
	"github.com/healthassistant/hub/internal/prompt"
	"github.com/healthassistant/hub/internal/session"
)

// questionCount is the exact number of questions every successful call
// returns. This is an invariant, not a best-effort target.
const questionCount = 4

// FallbackQuestion pads a short generator response up to questionCount.
const FallbackQuestion = "What are some general health tips?"

// genericQuestions are returned when the user has no profile to personalize
// from; the generator is not called in that case.
var genericQuestions = [questionCount]string{
	"What are some general health tips?",
	"How can I improve my sleep quality?",
	"What does a balanced diet look like?",
	"How much exercise is recommended each week?",
}

// enumerationMarkers are the characters stripped from the start of each
// generated line. This is a best-effort heuristic for numbered lists
// ("1. Question"), not a strict parser of model output.
const enumerationMarkers = "0123456789."

// SmartQuestionsService derives personalized questions from a user's health
// profile with a single generator call.
type SmartQuestionsService struct {
	generator TextGenerator
	profiles  ProfileStore
	users     UserStore
	logger    *slog.Logger
}

// SmartQuestionsServiceParams configures SmartQuestionsService.
type SmartQuestionsServiceParams struct {
	Generator TextGenerator
	Profiles  ProfileStore
	Users     UserStore
	Logger    *slog.Logger
}

// NewSmartQuestionsService creates a SmartQuestionsService.
func NewSmartQuestionsService(p SmartQuestionsServiceParams) *SmartQuestionsService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SmartQuestionsService{
		generator: p.Generator,
		profiles:  p.Profiles,
		users:     p.Users,
		logger:    logger,
	}
}

// Generate returns exactly four questions for the session's user.
//
// A user with no profile (or a profile with nothing to render) gets the fixed
// generic questions without a generator call. Unlike the chat pipeline, a
// generator failure here is a hard error and propagates as GenerationError;
// the padding rule applies only to a successful-but-short response.
func (s *SmartQuestionsService) Generate(ctx context.Context, sess session.Session) ([]string, error) {
	if _, err := resolveUser(ctx, s.users, sess); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if prompt.RenderProfileFields(profile) == "" {
		s.logger.Debug("smart questions: no profile, using generic questions", "user_id", sess.UserID)

		return append([]string(nil), genericQuestions[:]...), nil
	}

	raw, err := s.generator.Complete(ctx, prompt.BuildProfileQuestionPrompt(profile))
	if err != nil {
		s.logger.Error("smart questions: generation failed", "error", err, "user_id", sess.UserID)

		return nil, apperrors.NewGenerationError(err)
	}

	return normalizeQuestions(raw), nil
}

// normalizeQuestions splits the raw completion into lines, strips leading
// enumeration markers and whitespace, drops empty lines, keeps at most the
// first four, and pads with FallbackQuestion until exactly four remain.
func normalizeQuestions(raw string) []string {
	questions := make([]string, 0, questionCount)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, enumerationMarkers)
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		questions = append(questions, line)
		if len(questions) == questionCount {
			break
		}
	}

	for len(questions) < questionCount {
		questions = append(questions, FallbackQuestion)
	}

	return questions
}
