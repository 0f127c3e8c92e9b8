package flow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"astroconsult/internal/domain"
)

type offeringSource interface {
	OfferingByID(id string) (*domain.Offering, error)
}

type scheduleSource interface {
	HasDate(d time.Time) bool
	HasSlot(label string) bool
}

// Service owns every live booking session. Sessions are in-memory only:
// nothing here survives a restart, and abandoned sessions are swept after a
// TTL.
type Service struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	offerings offeringSource
	schedule  scheduleSource
	now       func() time.Time
}

func NewService(offerings offeringSource, schedule scheduleSource) *Service {
	return &Service{
		sessions:  make(map[string]*Session),
		offerings: offerings,
		schedule:  schedule,
		now:       time.Now,
	}
}

// Start opens a fresh session at the first step.
func (s *Service) Start(userID int64) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Step:      StepChoosingOffering,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess)
}

// Get returns a copy of the session owned by userID.
func (s *Service) Get(sessionID string, userID int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.locked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// SelectOffering records the offering and advances to date selection.
func (s *Service) SelectOffering(sessionID string, userID int64, offeringID string) (*Session, error) {
	if strings.TrimSpace(offeringID) == "" {
		return nil, ErrValidation
	}
	offering, err := s.offerings.OfferingByID(offeringID)
	if err != nil {
		return nil, ErrValidation
	}

	return s.advance(sessionID, userID, StepChoosingOffering, func(sess *Session) {
		sess.Selection.Offering = offering
	})
}

// SelectDate records the date (YYYY-MM-DD) and advances to time selection.
// The date must be one of the offered candidate dates.
func (s *Service) SelectDate(sessionID string, userID int64, dateStr string) (*Session, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil || !s.schedule.HasDate(day) {
		return nil, ErrValidation
	}

	return s.advance(sessionID, userID, StepChoosingDate, func(sess *Session) {
		sess.Selection.Date = day
	})
}

// SelectTime records the time-of-day label and advances to details entry.
func (s *Service) SelectTime(sessionID string, userID int64, label string) (*Session, error) {
	label = strings.TrimSpace(label)
	if label == "" || !s.schedule.HasSlot(label) {
		return nil, ErrValidation
	}

	return s.advance(sessionID, userID, StepChoosingTime, func(sess *Session) {
		sess.Selection.TimeLabel = label
	})
}

// EnterDetails records the contact details. The step pointer stays on the
// details step; only a verified payment moves a session to Confirmed.
func (s *Service) EnterDetails(sessionID string, userID int64, details domain.ContactDetails) (*Session, error) {
	if !details.Complete() {
		return nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.locked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepEnteringDetails {
		return nil, ErrOutOfOrder
	}

	sess.Selection.Details = details
	sess.UpdatedAt = s.now()
	return snapshot(sess), nil
}

// Back moves the pointer one step back without clearing any recorded value,
// so a later forward pass replays prior choices.
func (s *Service) Back(sessionID string, userID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.locked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step == StepConfirmed {
		return nil, ErrOutOfOrder
	}
	if sess.Step > StepChoosingOffering {
		sess.Step--
		sess.UpdatedAt = s.now()
	}
	return snapshot(sess), nil
}

// Abandon discards the session.
func (s *Service) Abandon(sessionID string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.locked(sessionID, userID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	return nil
}

// MarkConfirmed is the only path into the terminal step. It is called by the
// payment orchestrator after server-side verification succeeded, never from
// a handler.
func (s *Service) MarkConfirmed(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Step == StepConfirmed {
		return snapshot(sess), nil
	}
	if sess.Step != StepEnteringDetails || !sess.Selection.Complete() {
		return nil, ErrNotConfirmable
	}

	sess.Step = StepConfirmed
	sess.UpdatedAt = s.now()
	return snapshot(sess), nil
}

// Janitor sweeps sessions idle for longer than ttl until ctx is done.
func (s *Service) Janitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ttl)
		}
	}
}

func (s *Service) sweep(ttl time.Duration) {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// advance runs one forward transition: the session must currently sit on
// `from`, the mutation records the step's value, and the pointer moves by
// exactly one.
func (s *Service) advance(sessionID string, userID int64, from Step, record func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.locked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != from {
		return nil, ErrOutOfOrder
	}

	record(sess)
	sess.Step++
	sess.UpdatedAt = s.now()
	return snapshot(sess), nil
}

func (s *Service) locked(sessionID string, userID int64) (*Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.UserID != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}

func snapshot(sess *Session) *Session {
	cp := *sess
	if sess.Selection.Offering != nil {
		o := *sess.Selection.Offering
		cp.Selection.Offering = &o
	}
	return &cp
}
