package service

import (
	"context"
	"time"

	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/session"
)

type mockRetriever struct {
	searchFunc  func(ctx context.Context, query string, k int) ([]models.RetrievedPassage, error)
	searchCalls int
}

func (m *mockRetriever) Search(ctx context.Context, query string, k int) ([]models.RetrievedPassage, error) {
	m.searchCalls++

	return m.searchFunc(ctx, query, k)
}

type mockGenerator struct {
	completeFunc  func(ctx context.Context, prompt string) (string, error)
	completeCalls int
}

func (m *mockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.completeCalls++

	return m.completeFunc(ctx, prompt)
}

type mockProfileStore struct {
	getByUserIDFunc func(ctx context.Context, userID int64) (*models.HealthProfile, error)
}

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	return m.getByUserIDFunc(ctx, userID)
}

type mockUserStore struct {
	getByIDFunc func(ctx context.Context, id int64) (*models.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getByIDFunc(ctx, id)
}

type mockUserReader struct {
	getByNameFunc func(ctx context.Context, name string) (*models.User, error)
}

func (m *mockUserReader) GetByName(ctx context.Context, name string) (*models.User, error) {
	return m.getByNameFunc(ctx, name)
}

type mockFeedbackStore struct {
	createFunc        func(ctx context.Context, userID int64, rating int, comment *string, satisfied bool) (*models.FeedbackRecord, error)
	listFunc          func(ctx context.Context, filters models.ListFeedbackFilters) ([]models.FeedbackRecord, error)
	listWithUsersFunc func(ctx context.Context) ([]models.FeedbackRecordWithUser, error)
	createCalls       int
}

func (m *mockFeedbackStore) Create(
	ctx context.Context, userID int64, rating int, comment *string, satisfied bool,
) (*models.FeedbackRecord, error) {
	m.createCalls++

	return m.createFunc(ctx, userID, rating, comment, satisfied)
}

func (m *mockFeedbackStore) List(ctx context.Context, filters models.ListFeedbackFilters) ([]models.FeedbackRecord, error) {
	return m.listFunc(ctx, filters)
}

func (m *mockFeedbackStore) ListWithUsers(ctx context.Context) ([]models.FeedbackRecordWithUser, error) {
	return m.listWithUsersFunc(ctx)
}

func userSession() session.Session {
	return session.Session{Token: "tok-user", UserID: 1, Username: "john_doe", Role: models.RoleUser}
}

func adminSession() session.Session {
	return session.Session{Token: "tok-admin", UserID: 2, Username: "admin", Role: models.RoleAdmin}
}

func knownUsers() *mockUserStore {
	return &mockUserStore{
		getByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Name: "john_doe", Role: models.RoleUser, CreatedAt: time.Now()}, nil
		},
	}
}

func noProfiles() *mockProfileStore {
	return &mockProfileStore{
		getByUserIDFunc: func(_ context.Context, _ int64) (*models.HealthProfile, error) {
			return nil, nil
		},
	}
}
