package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"boris-chat/internal/llm"
)

// Message is one turn of the conversation. Timestamp is informational
// only and plays no part in ordering.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientFactory validates a credential by constructing a client handle.
type ClientFactory func(credential string) (llm.Client, error)

// Session owns one conversation log and one configured client handle.
// The log is append-only; the only other mutation is a full clear.
type Session struct {
	mu      sync.RWMutex
	log     []Message
	client  llm.Client
	factory ClientFactory
	envKey  string
}

func New(factory ClientFactory, envKey string) *Session {
	return &Session{factory: factory, envKey: envKey}
}

// AppendUserTurn appends a user message. Empty or whitespace-only text
// is rejected and the log is left untouched.
func (s *Session) AppendUserTurn(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.append(llm.RoleUser, text)
	return true
}

// AppendAssistantTurn appends unconditionally; the content may be a real
// completion or the gateway's synthetic error text.
func (s *Session) AppendAssistantTurn(text string) {
	s.append(llm.RoleAssistant, text)
}

func (s *Session) append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, Message{Role: role, Content: content, Timestamp: time.Now()})
}

// Clear resets the log. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
}

// Messages returns a copy of the log; mutating it does not affect the session.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.log))
	copy(out, s.log)
	return out
}

// History returns the log in the shape the completion client consumes.
func (s *Session) History() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]llm.Message, 0, len(s.log))
	for _, m := range s.log {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Configure validates a credential and stores the resulting handle. A
// credential from the process environment always wins over the
// interactive one. On failure any previous handle stays usable.
func (s *Session) Configure(credential string) error {
	if s.envKey != "" {
		credential = s.envKey
	}
	if strings.TrimSpace(credential) == "" {
		return fmt.Errorf("no credential provided")
	}
	client, err := s.factory(credential)
	if err != nil {
		return fmt.Errorf("failed to configure client: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	return nil
}

func (s *Session) Client() llm.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *Session) Configured() bool {
	return s.Client() != nil
}

// EnvConfigured reports whether a credential was supplied through the
// process environment.
func (s *Session) EnvConfigured() bool {
	return s.envKey != ""
}
