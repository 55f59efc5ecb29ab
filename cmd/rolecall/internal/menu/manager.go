package menu

import (
	"context"
	"sync"
)

// maxSessions bounds how many panels are tracked at once. The oldest
// panel is forgotten when the cap is hit; clicks on it go unanswered,
// like any panel from before a restart.
const maxSessions = 64

// Manager tracks open panels by message ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Track registers an open panel.
func (m *Manager) Track(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.order) >= maxSessions {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.sessions, oldest)
	}

	m.sessions[s.MessageID()] = s
	m.order = append(m.order, s.MessageID())
}

// Handle routes a click to the panel it belongs to. It reports false
// when the message is not a tracked panel.
func (m *Manager) Handle(ctx context.Context, messageID string, click Click) (bool, error) {
	m.mu.Lock()
	s, ok := m.sessions[messageID]
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, s.Handle(ctx, click)
}
