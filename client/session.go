package client

import "teampulse/internal/user"

// Session is the client's view of an authenticated identity.
type Session struct {
	Token string          `json:"token"`
	User  user.PublicUser `json:"user"`
}

// SessionStore persists the session between program runs. The zero-value
// MemorySessionStore keeps it in process memory only.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

type MemorySessionStore struct {
	session *Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Load() (*Session, error) {
	return m.session, nil
}

func (m *MemorySessionStore) Save(s *Session) error {
	m.session = s
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.session = nil
	return nil
}
