// Package revocation keeps the set of session tokens that were invalidated
// before their natural expiry (logout). Entries drop out once the token
// would have expired anyway.
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
)

// MemoryStore is a process-local revocation set.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.revoked[tokenID] = until
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
}

var _ ports.RevocationStore = (*MemoryStore)(nil)
