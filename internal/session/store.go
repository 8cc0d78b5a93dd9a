// Package session provides the typed session contract and an in-process
// token store. The core never authenticates; it only trusts the identity and
// role carried by a Session that the auth layer resolved and passed in
// explicitly.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/healthassistant/hub/internal/models"
)

// Session carries the caller-asserted identity and role for one request.
// It is produced by the auth layer and passed explicitly into core calls,
// never read from ambient state.
type Session struct {
	Token    string
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the session's role grants admin access.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// Store holds active sessions keyed by token. Entries expire after the
// configured TTL; the LRU bound caps memory under login churn.
type Store struct {
	cache *expirable.LRU[string, Session]
}

// NewStore creates a session store holding at most maxSessions sessions,
// each expiring ttl after creation.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, Session](maxSessions, nil, ttl),
	}
}

// Create issues a new session for the given user and returns it.
func (s *Store) Create(userID int64, username, role string) Session {
	sess := Session{
		Token:    uuid.Must(uuid.NewV7()).String(),
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	s.cache.Add(sess.Token, sess)

	return sess
}

// Get returns the session for the given token, if present and unexpired.
func (s *Store) Get(token string) (Session, bool) {
	return s.cache.Get(token)
}

// Delete removes the session for the given token. Deleting an unknown token
// is a no-op.
func (s *Store) Delete(token string) {
	s.cache.Remove(token)
}
