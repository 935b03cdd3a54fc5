// Package session tracks per-conversation state: message history and
// uploaded file references.
package session

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// Manager holds all live sessions. Safe for concurrent use by multiple
// chat sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*domain.Session)}
}

// Create registers a new session and returns its ID.
func (m *Manager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &domain.Session{
		ID:       id,
		Files:    make(map[string]string),
		Metadata: make(map[string]any),
	}
	return id
}

// AddMessage appends a message to the session history. Unknown session
// IDs are ignored.
func (m *Manager) AddMessage(id, role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.Messages = append(s.Messages, domain.Message{Role: role, Content: content})
	}
}

// Messages returns a copy of the session history.
func (m *Manager) Messages(id string) []domain.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	out := make([]domain.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// RemoveLastMessage drops the most recent message, if any.
func (m *Manager) RemoveLastMessage(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || len(s.Messages) == 0 {
		return false
	}
	s.Messages = s.Messages[:len(s.Messages)-1]
	return true
}

// RegisterFile records an uploaded file path under a type key such as
// "csv" or "pdf", replacing any previous file of that type.
func (m *Manager) RegisterFile(id, fileType, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.Files[fileType] = path
	}
}

// File returns the registered path for fileType.
func (m *Manager) File(id, fileType string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		path, ok := s.Files[fileType]
		return path, ok
	}
	return "", false
}

// FileReferences returns a copy of all registered files.
func (m *Manager) FileReferences(id string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return maps.Clone(s.Files)
	}
	return nil
}

// SystemPrompt decorates the base prompt with the session's registered
// files so the agent knows what it can work with.
func (m *Manager) SystemPrompt(id, base string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || len(s.Files) == 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\nAvailable files:\n")
	for fileType, path := range s.Files {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", strings.ToUpper(fileType), path))
	}
	return sb.String()
}

// Clear resets the message history but keeps file references.
func (m *Manager) Clear(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Messages = nil
	return true
}

// Delete removes the session entirely.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}
