// Package tokenslot реализует постоянный слот для единственного
// bearer-токена сессии. Слот переживает перезапуск процесса: токен
// записывается при успешном входе, удаляется при выходе и читается
// один раз при старте, чтобы восстановить признак аутентификации.
package tokenslot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/teamsync/internal/config"
)

// Key ключ слота токена.
const Key = "token"

// ErrUnknownKind возвращается для неизвестного типа слота в конфиге.
var ErrUnknownKind = errors.New("unknown token slot kind")

// Slot описывает постоянное хранилище токена.
type Slot interface {
	// Load возвращает сохранённый токен или пустую строку, если его нет.
	Load(ctx context.Context) (string, error)
	// Save сохраняет токен.
	Save(ctx context.Context, token string) error
	// Clear удаляет токен. Повторный вызов не является ошибкой.
	Clear(ctx context.Context) error
}

// New создаёт слот по настройкам конфига.
func New(ctx context.Context, cfg config.TokenSlot) (Slot, error) {
	const op = "tokenslot.New"
	switch cfg.Kind {
	case "file", "":
		return NewFile(cfg.Path), nil
	case "redis":
		slot, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return slot, nil
	case "memory":
		return NewMemory(""), nil
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownKind, cfg.Kind)
	}
}

// Memory хранит токен в памяти процесса.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory создаёт слот с начальным значением token.
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

// Load возвращает токен из памяти.
func (m *Memory) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Save запоминает токен.
func (m *Memory) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear забывает токен.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
