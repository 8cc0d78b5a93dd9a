package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/internal/session"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords, so login responses don't reveal which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserReader resolves usernames to stored users.
type UserReader interface {
	GetByName(ctx context.Context, name string) (*models.User, error)
}

// AuthService verifies credentials and manages sessions.
type AuthService struct {
	users    UserReader
	profiles ProfileStore
	sessions *session.Store
	logger   *slog.Logger
}

// AuthServiceParams configures AuthService.
type AuthServiceParams struct {
	Users    UserReader
	Profiles ProfileStore
	Sessions *session.Store
	Logger   *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(p AuthServiceParams) *AuthService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:    p.Users,
		profiles: p.Profiles,
		sessions: p.Sessions,
		logger:   logger,
	}
}

// Login verifies the credentials, issues a session, and returns the user with
// their health profile (nil when they have none).
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	user, err := s.users.GetByName(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("login failed: unknown user", "username", username)

			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed: wrong password", "username", username)

		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	sess := s.sessions.Create(user.ID, user.Name, user.Role)
	s.logger.Info("login succeeded", "username", user.Name, "role", user.Role)

	return &models.LoginResponse{
		User:    *user,
		Profile: profile,
		Token:   sess.Token,
	}, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
}
