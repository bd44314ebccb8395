package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	url       string
	expiresAt time.Time
	touchedAt time.Time
}

// MemoryStore is a bounded in-process store with per-entry TTL. When full it
// evicts expired entries first, then the least recently touched one, keeping
// memory flat for the process lifetime.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[int64]memoryEntry
	ttl      time.Duration
	capacity int
	done     chan struct{}
}

func NewMemoryStore(ttl time.Duration, capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	s := &MemoryStore{
		entries:  make(map[int64]memoryEntry),
		ttl:      ttl,
		capacity: capacity,
		done:     make(chan struct{}),
	}

	go s.cleanup()

	return s
}

func (s *MemoryStore) SetPendingURL(ctx context.Context, chatID int64, url string) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[chatID]; !exists && len(s.entries) >= s.capacity {
		s.evictLocked(now)
	}

	s.entries[chatID] = memoryEntry{
		url:       url,
		expiresAt: now.Add(s.ttl),
		touchedAt: now,
	}
	return nil
}

func (s *MemoryStore) GetPendingURL(ctx context.Context, chatID int64) (string, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[chatID]
	if !ok {
		return "", nil
	}
	if now.After(entry.expiresAt) {
		delete(s.entries, chatID)
		return "", nil
	}

	entry.touchedAt = now
	s.entries[chatID] = entry
	return entry.url, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	close(s.done)
	return nil
}

// evictLocked frees one slot: drop everything expired, and if nothing was,
// drop the least recently touched entry.
func (s *MemoryStore) evictLocked(now time.Time) {
	var evicted bool
	for chatID, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, chatID)
			evicted = true
		}
	}
	if evicted {
		return
	}

	var oldestChat int64
	var oldestTime time.Time
	first := true
	for chatID, entry := range s.entries {
		if first || entry.touchedAt.Before(oldestTime) {
			oldestChat = chatID
			oldestTime = entry.touchedAt
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestChat)
	}
}

func (s *MemoryStore) cleanup() {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for chatID, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, chatID)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
