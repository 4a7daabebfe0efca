package memory

import (
	"context"
	"sync"
	"time"

	"github.com/garagehub/garage_services/internal/core/ports"
)

// DefaultMaxEntries caps the in-memory revocation set.
const DefaultMaxEntries = 10000

// RevocationStore is the single-instance fallback used when no Redis is configured.
// Entries expire with their token and the set never grows past maxEntries.
type RevocationStore struct {
	mu         sync.Mutex
	entries    map[string]time.Time
	maxEntries int
	logger     ports.LoggerPort
	now        func() time.Time
}

var _ ports.RevocationStore = (*RevocationStore)(nil)

func NewRevocationStore(maxEntries int, logger ports.LoggerPort) *RevocationStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &RevocationStore{
		entries:    make(map[string]time.Time),
		maxEntries: maxEntries,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, ok := s.entries[tokenID]; !ok && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[tokenID] = now.Add(ttl)
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *RevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLocked drops expired entries, then the one closest to expiry if still full.
func (s *RevocationStore) evictLocked(now time.Time) {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, id)
			continue
		}
		if oldestID == "" || expiresAt.Before(oldestAt) {
			oldestID, oldestAt = id, expiresAt
		}
	}
	if len(s.entries) >= s.maxEntries && oldestID != "" {
		delete(s.entries, oldestID)
		// The dropped token is still unexpired and is accepted again from now on.
		s.logger.Warn("Revocation store full, evicted a live revocation", map[string]interface{}{
			"token_id":    oldestID,
			"expires_at":  oldestAt,
			"max_entries": s.maxEntries,
		})
	}
}
