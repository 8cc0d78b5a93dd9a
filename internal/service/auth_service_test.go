package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/internal/session"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	sessions := session.NewStore(16, time.Minute)

	t.Run("valid credentials issue a session", func(t *testing.T) {
		age := 42

		svc := NewAuthService(AuthServiceParams{
			Users: &mockUserReader{getByNameFunc: func(_ context.Context, name string) (*models.User, error) {
				assert.Equal(t, "john_doe", name)

				return &models.User{ID: 1, Name: "john_doe", Role: models.RoleUser, PasswordHash: hashPassword(t, "password123")}, nil
			}},
			Profiles: &mockProfileStore{getByUserIDFunc: func(_ context.Context, _ int64) (*models.HealthProfile, error) {
				return &models.HealthProfile{UserID: 1, Age: &age}, nil
			}},
			Sessions: sessions,
		})

		resp, err := svc.Login(context.Background(), "john_doe", "password123")
		require.NoError(t, err)
		assert.Equal(t, "john_doe", resp.User.Name)
		require.NotNil(t, resp.Profile)
		assert.Equal(t, 42, *resp.Profile.Age)
		require.NotEmpty(t, resp.Token)

		sess, ok := sessions.Get(resp.Token)
		require.True(t, ok)
		assert.Equal(t, int64(1), sess.UserID)
		assert.Equal(t, models.RoleUser, sess.Role)
	})

	t.Run("missing profile yields nil profile", func(t *testing.T) {
		svc := NewAuthService(AuthServiceParams{
			Users: &mockUserReader{getByNameFunc: func(_ context.Context, _ string) (*models.User, error) {
				return &models.User{ID: 2, Name: "admin", Role: models.RoleAdmin, PasswordHash: hashPassword(t, "admin123")}, nil
			}},
			Profiles: noProfiles(),
			Sessions: sessions,
		})

		resp, err := svc.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)
		assert.Nil(t, resp.Profile)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(AuthServiceParams{
			Users: &mockUserReader{getByNameFunc: func(_ context.Context, _ string) (*models.User, error) {
				return &models.User{ID: 1, Name: "john_doe", PasswordHash: hashPassword(t, "password123")}, nil
			}},
			Profiles: noProfiles(),
			Sessions: sessions,
		})

		_, err := svc.Login(context.Background(), "john_doe", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error as wrong password", func(t *testing.T) {
		svc := NewAuthService(AuthServiceParams{
			Users: &mockUserReader{getByNameFunc: func(_ context.Context, _ string) (*models.User, error) {
				return nil, repository.ErrUserNotFound
			}},
			Profiles: noProfiles(),
			Sessions: sessions,
		})

		_, err := svc.Login(context.Background(), "nobody", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		cause := errors.New("connection refused")

		svc := NewAuthService(AuthServiceParams{
			Users: &mockUserReader{getByNameFunc: func(_ context.Context, _ string) (*models.User, error) {
				return nil, cause
			}},
			Profiles: noProfiles(),
			Sessions: sessions,
		})

		_, err := svc.Login(context.Background(), "john_doe", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, cause)
	})
}

func TestAuthService_Logout(t *testing.T) {
	sessions := session.NewStore(16, time.Minute)

	svc := NewAuthService(AuthServiceParams{
		Users: &mockUserReader{getByNameFunc: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Name: "john_doe", PasswordHash: hashPassword(t, "password123")}, nil
		}},
		Profiles: noProfiles(),
		Sessions: sessions,
	})

	resp, err := svc.Login(context.Background(), "john_doe", "password123")
	require.NoError(t, err)

	svc.Logout(resp.Token)

	_, ok := sessions.Get(resp.Token)
	assert.False(t, ok)

	// Logging out an unknown token is a no-op.
	svc.Logout("no-such-token")
}
