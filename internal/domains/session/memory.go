package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	transcription string
	expiresAt     time.Time
}

// MemoryStore is a mutex-guarded map with per-entry TTL. Expired entries
// are treated as absent on read and swept by a janitor goroutine so memory
// stays bounded over the process lifetime.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Put(_ context.Context, sessionID, transcription string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{
		transcription: transcription,
		expiresAt:     time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.transcription, true, nil
}

func (s *MemoryStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, ok, err := s.Get(ctx, sessionID)
	return ok, err
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) janitor() {
	interval := s.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
