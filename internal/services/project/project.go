// Package project содержит операции над проектами пользователя в dev API.
//
// Пользователь видит только собственные проекты: чужой проект для него
// неотличим от отсутствующего.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
	"github.com/magabrotheeeer/teamsync/internal/storage"
)

// DefaultPageSize — размер страницы, если запрос его не задал.
const DefaultPageSize = 20

// Repository — хранилище проектов.
type Repository interface {
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	ListProjects(ctx context.Context, ownerID int64, page, size int) ([]models.Project, int, error)
	Project(ctx context.Context, id int64) (*models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

// Owner автор запроса.
type Owner struct {
	ID       int64
	Username string
}

// Service управляет проектами пользователей dev API.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New создаёт сервис проектов.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create сохраняет проект. Отсутствующие статус, приоритет и цвет
// получают значения по умолчанию; владелец становится единственным участником.
func (s *Service) Create(ctx context.Context, owner Owner, req models.ProjectCreateRequest) (*models.Project, error) {
	const op = "services.project.Create"

	req = req.WithDefaults()
	color := models.DefaultColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}
	now := s.now().UTC()
	p, err := s.repo.CreateProject(ctx, models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      *req.Status,
		Priority:    *req.Priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Color:       color,
		OwnerID:     owner.ID,
		OwnerName:   owner.Username,
		MemberCount: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List возвращает страницу проектов владельца, новые первыми.
func (s *Service) List(ctx context.Context, ownerID int64, page, size int) (*models.ProjectsPage, error) {
	const op = "services.project.List"

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	items, total, err := s.repo.ListProjects(ctx, ownerID, page, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	totalPages := (total + size - 1) / size
	return &models.ProjectsPage{
		Content:       items,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

// Get возвращает проект владельца. Чужой проект считается отсутствующим.
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*models.Project, error) {
	const op = "services.project.Get"
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Update заменяет имя, описание и даты; статус, приоритет и цвет
// сохраняются, если в запросе их нет.
func (s *Service) Update(ctx context.Context, ownerID, id int64, req models.ProjectUpdateRequest) (*models.Project, error) {
	const op = "services.project.Update"

	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.Name = req.Name
	p.Description = req.Description
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.Color != nil && *req.Color != "" {
		p.Color = *req.Color
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProject(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return p, nil
}

// Delete удаляет проект владельца.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	const op = "services.project.Delete"
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, notFound(err))
	}
	return nil
}

func (s *Service) owned(ctx context.Context, ownerID, id int64) (*models.Project, error) {
	p, err := s.repo.Project(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if p.OwnerID != ownerID {
		return nil, services.ErrProjectNotFound
	}
	return p, nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return services.ErrProjectNotFound
	}
	return err
}
