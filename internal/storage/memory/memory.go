// Package memory хранит данные dev API в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/storage"
)

// Storage хранит пользователей и проекты под одним мьютексом.
// Идентификаторы выдаются последовательно, начиная с 1.
type Storage struct {
	mu         sync.RWMutex
	accounts   map[string]storage.Account
	projects   map[int64]models.Project
	lastUserID int64
	lastProjID int64
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		accounts: make(map[string]storage.Account),
		projects: make(map[int64]models.Project),
	}
}

// CreateAccount сохраняет пользователя и возвращает его с присвоенным ID.
func (s *Storage) CreateAccount(ctx context.Context, acc storage.Account) (*models.User, error) {
	const op = "storage.memory.CreateAccount"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acc.User.Username]; ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}
	s.lastUserID++
	acc.User.ID = s.lastUserID
	s.accounts[acc.User.Username] = acc
	u := acc.User.Clone()
	return &u, nil
}

// AccountByUsername возвращает учётную запись по имени пользователя.
func (s *Storage) AccountByUsername(ctx context.Context, username string) (*storage.Account, error) {
	const op = "storage.memory.AccountByUsername"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	acc.User = acc.User.Clone()
	return &acc, nil
}

// CreateProject сохраняет проект и возвращает его с присвоенным ID.
func (s *Storage) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	const op = "storage.memory.CreateProject"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastProjID++
	p.ID = s.lastProjID
	s.projects[p.ID] = p.Clone()
	return &p, nil
}

// ListProjects возвращает страницу проектов владельца, новые первыми,
// и общее число его проектов.
func (s *Storage) ListProjects(ctx context.Context, ownerID int64, page, size int) ([]models.Project, int, error) {
	const op = "storage.memory.ListProjects"
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	owned := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			owned = append(owned, p.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(owned, func(a, b models.Project) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	total := len(owned)
	from := min(page*size, total)
	to := min(from+size, total)
	return owned[from:to], total, nil
}

// Project возвращает проект по ID.
func (s *Storage) Project(ctx context.Context, id int64) (*models.Project, error) {
	const op = "storage.memory.Project"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	p = p.Clone()
	return &p, nil
}

// UpdateProject заменяет сохранённый проект целиком.
func (s *Storage) UpdateProject(ctx context.Context, p models.Project) error {
	const op = "storage.memory.UpdateProject"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.projects[p.ID] = p.Clone()
	return nil
}

// DeleteProject удаляет проект по id.
func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	const op = "storage.memory.DeleteProject"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	delete(s.projects, id)
	return nil
}
