package dashboard

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// Session é o estado autenticado que sobrevive entre execuções:
// o perfil do usuário e o token bearer.
type Session struct {
	User  entity.User `json:"user"`
	Token string      `json:"token"`
}

// SessionStore persiste a sessão em um arquivo JSON fixo. Todo acesso
// passa pelos accessors; ninguém toca o estado global direto.
type SessionStore struct {
	mu      sync.RWMutex
	path    string
	current *Session
}

// DefaultSessionPath devolve o local padrão do arquivo de sessão
// (~/.yux-crm/session.json).
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".yux-crm", "session.json")
	}
	return filepath.Join(home, ".yux-crm", "session.json")
}

func NewSessionStore(path string) *SessionStore {
	if path == "" {
		path = DefaultSessionPath()
	}
	return &SessionStore{path: path}
}

// Hydrate recarrega a sessão gravada. Arquivo ausente não é erro:
// significa apenas "ninguém logado".
func (s *SessionStore) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.current = nil
			return nil
		}
		return err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// arquivo corrompido conta como sessão inexistente
		s.current = nil
		return nil
	}

	s.current = &session
	return nil
}

// Set grava a sessão no disco e na memória.
func (s *SessionStore) Set(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}

	s.current = &session
	return nil
}

// Clear apaga a sessão (logout ou expiração detectada).
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token devolve o token bearer atual, ou "" sem sessão.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User devolve o perfil logado, ou nil sem sessão.
func (s *SessionStore) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.Token() != ""
}
