package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type window struct {
	// limiter never refills: its burst is what is left of the window.
	limiter      *rate.Limiter
	resetAt      time.Time
	blockedUntil time.Time
	lastSeen     time.Time
}

// MemoryStore counts requests per key in fixed windows. The first request
// for a key opens a window of Window length that admits Max requests, the
// same accounting RedisStore does with INCR and PEXPIRE.
type MemoryStore struct {
	mu      sync.Mutex
	policy  Policy
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryStore(policy Policy) *MemoryStore {
	return NewMemoryStoreWithClock(policy, time.Now)
}

func NewMemoryStoreWithClock(policy Policy, now func() time.Time) *MemoryStore {
	if policy.Max < 1 {
		policy.Max = 1
	}
	if policy.Window <= 0 {
		policy.Window = time.Minute
	}
	return &MemoryStore{
		policy:  policy,
		windows: make(map[string]*window),
		now:     now,
	}
}

func (s *MemoryStore) Take(_ context.Context, key string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	w.lastSeen = now

	if now.Before(w.blockedUntil) {
		return Decision{RetryAfter: w.blockedUntil.Sub(now)}, nil
	}

	if w.limiter == nil || !now.Before(w.resetAt) {
		w.limiter = rate.NewLimiter(0, s.policy.Max)
		w.resetAt = now.Add(s.policy.Window)
	}

	if w.limiter.AllowN(now, 1) {
		return Decision{Allowed: true}, nil
	}

	if s.policy.BlockFor > 0 {
		w.blockedUntil = now.Add(s.policy.BlockFor)
		return Decision{RetryAfter: s.policy.BlockFor}, nil
	}
	return Decision{RetryAfter: w.resetAt.Sub(now)}, nil
}

// Prune drops keys not seen for idle whose window has closed and which are
// not blocked. It returns how many were removed.
func (s *MemoryStore) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, w := range s.windows {
		if now.Sub(w.lastSeen) >= idle && !now.Before(w.resetAt) && !now.Before(w.blockedUntil) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
