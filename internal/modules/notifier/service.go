// Package notifier holds the transient per-user payment status banner. A
// status lives in memory only, replaces any previous one, and clears itself
// after a short interval unless dismissed first.
package notifier

import (
	"sync"
	"time"
)

const (
	KindSuccess = "success"
	KindError   = "error"
)

// DefaultTTL is how long a status stays visible before it clears itself.
const DefaultTTL = 5 * time.Second

type Status struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shown_at"`
}

type entry struct {
	status Status
	timer  *time.Timer
}

// Service keeps at most one live status per user.
type Service struct {
	mu      sync.RWMutex
	entries map[int64]*entry
	ttl     time.Duration
	hub     *Hub
}

// NewService builds a notifier with the given auto-clear interval. hub may
// be nil when no live push channel is wanted.
func NewService(ttl time.Duration, hub *Hub) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		entries: make(map[int64]*entry),
		ttl:     ttl,
		hub:     hub,
	}
}

// Show replaces the user's current status and restarts the clear timer.
func (s *Service) Show(userID int64, kind, message string) {
	st := Status{Kind: kind, Message: message, ShownAt: time.Now()}

	s.mu.Lock()
	if prev, ok := s.entries[userID]; ok {
		prev.timer.Stop()
	}
	e := &entry{status: st}
	e.timer = time.AfterFunc(s.ttl, func() { s.expire(userID, e) })
	s.entries[userID] = e
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.SendToUser(userID, st)
	}
}

// Current returns the live status, if any.
func (s *Service) Current(userID int64) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[userID]
	if !ok {
		return Status{}, false
	}
	return e.status, true
}

// Dismiss clears the user's status immediately.
func (s *Service) Dismiss(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[userID]; ok {
		e.timer.Stop()
		delete(s.entries, userID)
	}
}

// expire clears the entry only if it is still the one the timer was armed
// for; a newer Show must not be wiped by a stale timer.
func (s *Service) expire(userID int64, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[userID]; ok && cur == e {
		delete(s.entries, userID)
	}
}
