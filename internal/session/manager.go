// Package session resolves session cookies to authenticated users.
// Sessions live in Redis with TTL-based expiration; the external auth
// service creates them at login, the gateway reads them per request.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when no session exists for an ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when the session has lapsed.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidSession is returned when stored session data is unreadable.
	ErrInvalidSession = errors.New("invalid session")
)

// Manager is the session surface consumed by the gateway middleware.
type Manager interface {
	Create(ctx context.Context, userID, username string, maxAge int) (string, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type manager struct {
	store Store
}

// NewManager creates a session manager on top of a Store.
func NewManager(store Store) Manager {
	return &manager{store: store}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create stores a new session and returns its ID.
func (m *manager) Create(ctx context.Context, userID, username string, maxAge int) (string, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(maxAge) * time.Second),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Duration(maxAge) * time.Second
	if err := m.store.Set(ctx, sessionKey(sess.ID), string(data), ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return sess.ID, nil
}

// Get retrieves and validates a session.
func (m *manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := m.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, ErrInvalidSession
	}

	// Redis TTL normally evicts first; the explicit check covers clock
	// skew between writer and reader.
	if time.Now().After(sess.ExpiresAt) {
		m.store.Delete(ctx, sessionKey(sessionID))
		return nil, ErrSessionExpired
	}

	return &sess, nil
}

// Delete removes a session.
func (m *manager) Delete(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionKey(sessionID))
}
