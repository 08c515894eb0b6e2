package http

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

// SessionFactory builds the session for a new shopper id.
type SessionFactory func(id string) *storefront.Session

type SessionsOption func(*Sessions)

// WithMaxSessions caps the number of live sessions. Past the cap the least
// recently used session is closed.
func WithMaxSessions(n int) SessionsOption {
	return func(s *Sessions) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithIdleTTL closes sessions that saw no request for d. Zero keeps idle
// sessions until they are pushed out by the cap.
func WithIdleTTL(d time.Duration) SessionsOption {
	return func(s *Sessions) { s.idleTTL = d }
}

func WithSessionClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) { s.now = now }
}

type sessionEntry struct {
	session  *storefront.Session
	lastSeen time.Time
}

// Sessions keeps one storefront session per shopper, bounded by count and
// idle time. Removed sessions are closed outside the registry lock.
type Sessions struct {
	mu      sync.Mutex
	factory SessionFactory
	max     int
	idleTTL time.Duration
	now     func() time.Time
	cache   *lru.Cache
	evicted []*storefront.Session
}

func NewSessions(factory SessionFactory, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		factory: factory,
		max:     DefaultMaxSessions,
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	// only fails for a non-positive size
	s.cache, _ = lru.NewWithEvict(s.max, s.onEvict)
	return s
}

// onEvict runs inside cache calls made with s.mu held.
func (s *Sessions) onEvict(_, value interface{}) {
	s.evicted = append(s.evicted, value.(*sessionEntry).session)
}

// Get returns the session for id, creating it when unknown. An empty id
// gets a fresh one.
func (s *Sessions) Get(id string) *storefront.Session {
	s.mu.Lock()
	now := s.now()
	s.expireLocked(now)

	if id == "" {
		id = uuid.NewString()
	}
	var sess *storefront.Session
	if v, ok := s.cache.Get(id); ok {
		e := v.(*sessionEntry)
		e.lastSeen = now
		sess = e.session
	} else {
		sess = s.factory(id)
		s.cache.Add(id, &sessionEntry{session: sess, lastSeen: now})
	}
	evicted := s.takeEvictedLocked()
	s.mu.Unlock()

	closeSessions(evicted)
	return sess
}

// Sweep closes the sessions idle for longer than the TTL and returns how
// many it removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	s.expireLocked(s.now())
	evicted := s.takeEvictedLocked()
	s.mu.Unlock()

	closeSessions(evicted)
	return len(evicted)
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Close closes every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	s.cache.Purge()
	evicted := s.takeEvictedLocked()
	s.mu.Unlock()

	closeSessions(evicted)
}

// expireLocked walks from the least recently used end, which is also the
// longest idle.
func (s *Sessions) expireLocked(now time.Time) {
	if s.idleTTL <= 0 {
		return
	}
	for {
		_, v, ok := s.cache.GetOldest()
		if !ok || now.Sub(v.(*sessionEntry).lastSeen) < s.idleTTL {
			return
		}
		s.cache.RemoveOldest()
	}
}

func (s *Sessions) takeEvictedLocked() []*storefront.Session {
	evicted := s.evicted
	s.evicted = nil
	return evicted
}

func closeSessions(sessions []*storefront.Session) {
	for _, sess := range sessions {
		sess.Close()
	}
}
