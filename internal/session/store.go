// Package session hält pro Browsersitzung einen Auswahl-Controller im
// Speicher. Sitzungen werden nie gespeichert und verfallen nach einer
// Leerlaufzeit.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/selection"
)

type entry struct {
	mu       sync.Mutex
	ctrl     *selection.Controller
	lastSeen time.Time
}

// Store verwaltet die Controller aller offenen Sitzungen.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	zones       []domain.Zone
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
	logger      *zap.Logger
}

// NewStore erstellt einen leeren Store. ttl <= 0 deaktiviert den Verfall,
// maxSessions <= 0 die Obergrenze.
func NewStore(zones []domain.Zone, ttl time.Duration, maxSessions int, logger *zap.Logger) *Store {
	return &Store{
		sessions:    make(map[string]*entry),
		zones:       zones,
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
		logger:      logger,
	}
}

// Create legt eine neue Sitzung mit leerem Auswahlzustand an.
func (s *Store) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return "", fmt.Errorf("max %d sitzungen: %w", s.maxSessions, domain.ErrCapacityReached)
	}

	id := uuid.NewString()
	s.sessions[id] = &entry{ctrl: selection.New(s.zones), lastSeen: s.now()}
	return id, nil
}

// With führt fn exklusiv auf dem Controller der Sitzung id aus.
func (s *Store) With(id string, fn func(*selection.Controller) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ctrl)
}

// Delete beendet eine Sitzung.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("sitzung %q: %w", id, domain.ErrNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// Len gibt die Anzahl offener Sitzungen zurück.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("sitzung %q: %w", id, domain.ErrNotFound)
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("sitzung %q abgelaufen: %w", id, domain.ErrNotFound)
	}
	e.lastSeen = now
	return e, nil
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// sweepLocked entfernt abgelaufene Sitzungen; s.mu muss gehalten werden.
func (s *Store) sweepLocked() {
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("abgelaufene sitzungen entfernt", zap.Int("anzahl", removed))
	}
}
