// Package store содержит хранилища состояния клиента (сессия и коллекция
// проектов) и диспетчер команд — единственный путь их изменения.
//
// Переходы состояний не экспортируются: снаружи пакета хранилища доступны
// только для чтения через Snapshot, а менять их может лишь Dispatcher.
// Каждый переход выполняется под мьютексом хранилища целиком, поэтому два
// перехода никогда не перемежаются.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/tokenslot"
)

// SessionState — снимок состояния аутентификации.
// Инвариант: IsAuthenticated == (Token != "").
type SessionState struct {
	User            *models.User `json:"user"`
	Token           string       `json:"-"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	LastError       string       `json:"error,omitempty"`
}

// Session хранит токен и личность пользователя.
type Session struct {
	mu    sync.RWMutex
	state SessionState
}

// NewSession создаёт сессию, восстановленную из токена постоянного слота.
// Остальные поля получают значения по умолчанию.
func NewSession(token string) *Session {
	return &Session{state: SessionState{
		Token:           token,
		IsAuthenticated: token != "",
	}}
}

// RestoreSession читает токен из слота и создаёт сессию. Ошибка чтения
// не фатальна: сессия стартует неаутентифицированной.
func RestoreSession(ctx context.Context, slot tokenslot.Slot, log *slog.Logger) *Session {
	const op = "store.RestoreSession"
	token, err := slot.Load(ctx)
	if err != nil {
		log.Warn("failed to read persisted token", sl.Op(op), sl.Err(err))
		return NewSession("")
	}
	return NewSession(token)
}

// Snapshot возвращает копию текущего состояния.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := st.User.Clone()
		st.User = &u
	}
	return st
}

// Token возвращает текущий токен; реализует gateway.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) authPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = true
	s.state.LastError = ""
}

func (s *Session) authFulfilled(resp models.AuthResponse, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	s.state.Token = resp.Token
	s.state.IsAuthenticated = resp.Token != ""
	s.state.User = resp.Identity(now)
}

// authRejected не трогает токен и признак аутентификации.
func (s *Session) authRejected(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	s.state.LastError = msg
}

func (s *Session) logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.Token = ""
	s.state.IsAuthenticated = false
	s.state.LastError = ""
}

func (s *Session) clearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = ""
}
