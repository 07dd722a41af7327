// Package session owns the live-session table for active conversations.
package session

import (
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentscout/intake/internal/domain"
)

// Incoming identifiers outside this shape are treated as unknown.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// Manager is the single owner of all live sessions. The engine borrows a
// session reference for the duration of one message.
type Manager struct {
	mu   sync.RWMutex
	live map[string]*domain.Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{live: make(map[string]*domain.Session)}
}

// ResolveOrCreate returns the session for id, or allocates a fresh one when
// id is empty, malformed, or unknown. The second return value reports whether
// a new session was created.
func (m *Manager) ResolveOrCreate(id string) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" && idPattern.MatchString(id) {
		if s, ok := m.live[id]; ok {
			return s, false
		}
	}

	s := domain.NewSession(uuid.NewString())
	m.live[s.ID] = s
	slog.Info("Screening session created", "session_id", s.ID)
	return s, true
}

// Get returns the live session for id, or nil.
func (m *Manager) Get(id string) *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.live[id]
}

// Discard removes the session for id. Subsequent lookups behave as unknown;
// an in-flight message holding the session finishes against the detached
// object and is never resurrected into the table.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.live[id]; ok {
		delete(m.live, id)
		slog.Info("Screening session discarded", "session_id", id)
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.live)
}

// Expired returns the IDs of sessions idle for longer than ttl.
func (m *Manager) Expired(ttl time.Duration) []string {
	cutoff := time.Now().Add(-ttl)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, s := range m.live {
		if s.LastSeen().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}
