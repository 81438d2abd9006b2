package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tombola/internal/cache"
	"tombola/internal/model"
)

const sessionKeyPrefix = "tombola:session:"

// SessionStoreInterface defines the session snapshot storage contract.
// The snapshot is the credential-free user record the client restores on
// startup; losing it only logs the user out.
type SessionStoreInterface interface {
	Put(ctx context.Context, user *model.User) error
	// Get returns the stored snapshot, or nil when it is missing or corrupt.
	Get(ctx context.Context, userID string) (*model.User, error)
	// Refresh rewrites the snapshot only when one already exists, so balance
	// mutations never resurrect a logged-out session.
	Refresh(ctx context.Context, user *model.User) error
	Clear(ctx context.Context, userID string) error
}

// SessionStore keeps session snapshots in Redis with a TTL.
type SessionStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// Put stores the user snapshot under the session key.
func (s *SessionStore) Put(ctx context.Context, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(user.ID), payload, s.ttl)
}

// Get retrieves the user snapshot. Missing and corrupt snapshots both read
// as "no session"; corruption must never break the startup bootstrap.
func (s *SessionStore) Get(ctx context.Context, userID string) (*model.User, error) {
	data, err := s.cache.Get(ctx, sessionKey(userID))
	if err != nil || data == nil {
		return nil, nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Refresh rewrites the snapshot if one exists.
func (s *SessionStore) Refresh(ctx context.Context, user *model.User) error {
	existing, err := s.Get(ctx, user.ID)
	if err != nil || existing == nil {
		return err
	}
	return s.Put(ctx, user)
}

// Clear removes the session snapshot; clearing an absent session is a no-op.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	return s.cache.Delete(ctx, sessionKey(userID))
}
