package lockout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
)

type entry struct {
	failures    int
	lockedUntil time.Time
}

// MemoryStore is an in-memory LoginLockoutStore suitable for single-instance deployment.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]*entry
	max      int
	cooldown time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a lockout store with given max attempts and cooldown. maxAttempts 0 = disabled.
func NewMemoryStore(maxAttempts int, cooldown time.Duration) *MemoryStore {
	if cooldown <= 0 {
		cooldown = 15 * time.Minute
	}
	return &MemoryStore{
		data:     make(map[string]*entry),
		max:      maxAttempts,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Emails are matched exactly, so "A@x.io" and "a@x.io" are separate accounts and separate counters.
func key(email string) string {
	return strings.TrimSpace(email)
}

func (s *MemoryStore) IsLocked(_ context.Context, email string) (bool, int) {
	if s.max <= 0 {
		return false, 0
	}
	s.mu.Lock()
	e, ok := s.data[key(email)]
	s.mu.Unlock()
	if !ok {
		return false, 0
	}
	now := s.now()
	if now.Before(e.lockedUntil) {
		secs := int(e.lockedUntil.Sub(now).Seconds())
		if secs < 1 {
			secs = 1
		}
		return true, secs
	}
	return false, 0
}

func (s *MemoryStore) RecordFailure(_ context.Context, email string) {
	if s.max <= 0 {
		return
	}
	k := key(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.data[k]
	if e == nil {
		e = &entry{}
		s.data[k] = e
	}
	now := s.now()
	// A lapsed lock starts a fresh count.
	if !e.lockedUntil.IsZero() && !now.Before(e.lockedUntil) {
		e.failures = 0
		e.lockedUntil = time.Time{}
	}
	e.failures++
	if e.failures >= s.max {
		e.lockedUntil = now.Add(s.cooldown)
	}
}

func (s *MemoryStore) RecordSuccess(_ context.Context, email string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	delete(s.data, key(email))
	s.mu.Unlock()
}

var _ ports.LoginLockoutStore = (*MemoryStore)(nil)
