package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/careerforge/interviewer/internal/model/interview"
)

// MemoryStore keeps sessions in-process. It is the default when no Redis
// address is configured and the implementation used throughout the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	now func() time.Time
}

type memoryEntry struct {
	blob      []byte
	expiresAt time.Time
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the stored session, treating expired entries as absent and
// reclaiming them lazily.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*interview.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionExpired
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, ErrSessionExpired
	}

	var sess interview.Session
	if err := json.Unmarshal(entry.blob, &sess); err != nil {
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Set stores the session and resets its expiry.
func (s *MemoryStore) Set(_ context.Context, sess *interview.Session, ttl time.Duration) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[sess.ID] = memoryEntry{blob: blob, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes the session. Deleting an unknown ID is not an error.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// StartJanitor sweeps expired entries on the given interval until ctx is
// done. Get already reclaims lazily; the sweep bounds memory for sessions
// nobody touches again.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}
