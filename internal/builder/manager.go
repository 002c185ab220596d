package builder

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("sesión de edición no encontrada")

// sessionTTL is how long an idle builder session is kept before pruning.
const sessionTTL = time.Hour

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Manager is the registry of live builder sessions, keyed by opaque ids
// handed to the client.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create registers a fresh session and returns its id.
func (m *Manager) Create() (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	id := uuid.NewString()
	session := NewSession()
	m.sessions[id] = &entry{session: session, lastUsed: m.now()}
	return id, session
}

// Get looks up a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = m.now()
	return e.session, nil
}

// Delete discards a session, typically after a successful save.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-sessionTTL)
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
