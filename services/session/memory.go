// File: services/session/memory.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"innkeeper/models"
)

// MemorySessionStore is a mutex-protected map store for tests and redis-less
// development. Idle expiry is checked lazily on Get, mirroring the redis TTL
// behaviour. Sessions are stored as deep copies so concurrent turns never
// share a live pointer.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore constructs an empty store with the given idle TTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the time source; tests use this to force idle expiry.
func (s *MemorySessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(sess.LastActivity) > s.ttl {
		delete(s.sessions, id)
		return nil, nil
	}
	return copySession(sess)
}

func (s *MemorySessionStore) Put(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.LastActivity = s.now()
	cp, err := copySession(sess)
	if err != nil {
		return err
	}
	s.sessions[sess.ID] = cp
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func copySession(sess *models.Session) (*models.Session, error) {
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	var cp models.Session
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
