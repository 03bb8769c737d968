package session

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Manager keeps one isolated Session per browser token. Sessions never
// share state; the lock only guards the registry map itself.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  ClientFactory
	envKey   string
}

func NewManager(factory ClientFactory, envKey string) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		factory:  factory,
		envKey:   envKey,
	}
}

// Create registers a fresh session under a new random token. When a
// credential is present in the environment it is applied immediately so
// the session arrives ready to chat.
func (m *Manager) Create() (string, *Session) {
	token := uuid.NewString()
	s := New(m.factory, m.envKey)
	if m.envKey != "" {
		if err := s.Configure(""); err != nil {
			log.Printf("failed to configure session from environment: %v", err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
	return token, s
}

func (m *Manager) Get(token string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token]
}

func (m *Manager) Remove(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
