package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain"
)

// Manager keeps the live sessions of the process.
type Manager struct {
	deps    Deps
	newID   func() string
	idleTTL time.Duration
	onEvict []func(sessionID string)

	mu       sync.RWMutex
	sessions map[string]*Controller
}

// NewManager creates a Manager sharing deps across sessions.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:     deps.withDefaults(),
		newID:    uuid.NewString,
		sessions: make(map[string]*Controller),
	}
}

// WithIdleTTL evicts sessions that received no fix for ttl. Zero disables it.
func (m *Manager) WithIdleTTL(ttl time.Duration) *Manager {
	m.idleTTL = ttl
	return m
}

// OnEvict registers fn to run after an idle session was removed.
func (m *Manager) OnEvict(fn func(sessionID string)) {
	m.onEvict = append(m.onEvict, fn)
}

// Create starts an empty session for playerID.
func (m *Manager) Create(_ context.Context, playerID string) (*Controller, error) {
	id := m.newID()
	c := NewController(id, playerID, m.deps)

	m.mu.Lock()
	if _, exists := m.sessions[id]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("create session %s: id collision", id)
	}
	m.sessions[id] = c
	n := len(m.sessions)
	m.mu.Unlock()

	m.deps.Observer.SessionsActive(n)
	m.deps.Logger.Info("Session created",
		zap.String("session_id", id),
		zap.String("player_id", playerID),
	)
	return c, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return c, nil
}

// Delete resets and removes the session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	c, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	c.Reset()
	m.deps.Observer.SessionsActive(n)
	m.deps.Logger.Info("Session deleted", zap.String("session_id", id))
	return nil
}

// Sweep evicts every session idle since before now minus the idle TTL and
// returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	var idle []*Controller
	for id, c := range m.sessions {
		if c.LastActive().Before(cutoff) {
			idle = append(idle, c)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if len(idle) == 0 {
		return 0
	}
	for _, c := range idle {
		c.Reset()
		for _, fn := range m.onEvict {
			fn(c.ID())
		}
		m.deps.Logger.Info("Idle session evicted",
			zap.String("session_id", c.ID()),
			zap.String("player_id", c.PlayerID()),
		)
	}
	m.deps.Observer.SessionsActive(n)
	return len(idle)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.deps.Now())
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the live session IDs in lexical order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Close resets every session and empties the manager.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range sessions {
		c.Reset()
	}
	m.deps.Observer.SessionsActive(0)
}
