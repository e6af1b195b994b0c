package service

import (
	"sync"
	"time"

	"campusmove/internal/navigation/session"
	"campusmove/pkg/metrics"
)

// registry holds the live sessions and evicts the ones left idle longer than
// ttl, which covers clients that never send the DELETE.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	ttl      time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newRegistry(ttl time.Duration) *registry {
	r := &registry{
		sessions: make(map[string]*session.Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *registry) add(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	metrics.NavigationSessionsActive.Set(float64(len(r.sessions)))
}

func (r *registry) get(id string) (*session.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		metrics.NavigationSessionsActive.Set(float64(len(r.sessions)))
	}
	return s, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *registry) cleanupLoop() {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *registry) evictIdle(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if now.Sub(s.LastActive()) > r.ttl {
			s.Close()
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		metrics.NavigationSessionsActive.Set(float64(len(r.sessions)))
	}
	return evicted
}

func (r *registry) stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}
