// Package session binds opaque session IDs to user identities. The browser
// only ever sees a signed token carrying the session ID; the user binding
// lives server-side in the store.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is a server-side binding between an opaque ID and a user.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// Store persists sessions. Implementations must treat a missing or expired
// session as (nil, nil), never as an error: an unauthenticated request is a
// normal state, not a failure.
type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// MemoryStore keeps sessions in process memory. Used for development and
// tests, and as the fallback when Redis is not reachable at startup.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Create(_ context.Context, userID uint, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }
