package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionEntry pairs a session with its owner token and bookkeeping.
type SessionEntry struct {
	Code      string
	Token     string
	GameID    string
	CreatedAt time.Time
	Session   *Session
}

// Manager owns all live sessions, keyed by short join code. Sessions are
// created on start-game and discarded on new-game or timeout sweeps.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*SessionEntry
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*SessionEntry)}
}

// Create builds a session for the given game config and campaign. The
// returned token authorizes mutations on the session.
func (m *Manager) Create(cfg *GameConfig, campaignID string, rng RandomSource) (*SessionEntry, error) {
	session, err := NewSession(cfg, campaignID, rng)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	code := randomCode(5)
	for m.sessions[code] != nil {
		code = randomCode(5)
	}
	entry := &SessionEntry{
		Code:      code,
		Token:     uuid.NewString(),
		GameID:    cfg.ID,
		CreatedAt: time.Now().UTC(),
		Session:   session,
	}
	m.sessions[code] = entry
	return entry, nil
}

// Get looks up a session by code.
func (m *Manager) Get(code string) (*SessionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry := m.sessions[code]
	if entry == nil {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// End discards a session.
func (m *Manager) End(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, code)
}

// Sweep drops sessions older than maxAge and returns how many were removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	for code, entry := range m.sessions {
		if entry.CreatedAt.Before(cutoff) {
			delete(m.sessions, code)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func randomCode(n int) string {
	letters := []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
