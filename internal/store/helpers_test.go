package store

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/teamsync/internal/gateway"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/tokenslot"
)

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *GatewayMock) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *GatewayMock) ListProjects(ctx context.Context, page, size int) (*models.ProjectsPage, error) {
	args := m.Called(ctx, page, size)
	resp, _ := args.Get(0).(*models.ProjectsPage)
	return resp, args.Error(1)
}

func (m *GatewayMock) CreateProject(ctx context.Context, req models.ProjectCreateRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.Project)
	return resp, args.Error(1)
}

func (m *GatewayMock) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.Project)
	return resp, args.Error(1)
}

func (m *GatewayMock) UpdateProject(ctx context.Context, id int64, req models.ProjectUpdateRequest) (*models.Project, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.Project)
	return resp, args.Error(1)
}

func (m *GatewayMock) DeleteProject(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type failingSlot struct{ err error }

func (f failingSlot) Load(context.Context) (string, error) { return "", f.err }
func (f failingSlot) Save(context.Context, string) error   { return f.err }
func (f failingSlot) Clear(context.Context) error          { return f.err }

type recorderMock struct{ mock.Mock }

func (m *recorderMock) CommandDispatched(command string) {
	m.Called(command)
}

func (m *recorderMock) CommandSettled(command string, status Status, elapsed time.Duration) {
	m.Called(command, status, elapsed)
}

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestDispatcher(gw Gateway, slot tokenslot.Slot, token string) *Dispatcher {
	return NewDispatcher(NewSession(token), NewProjects(), gw, slot, newNoopLogger(),
		WithClock(func() time.Time { return fixedNow }))
}

func serverErr(status int, msg string) error {
	return &gateway.Error{Op: "gateway.Test", StatusCode: status, Message: msg}
}

var errNetwork = &gateway.Error{Op: "gateway.Test", Err: io.ErrUnexpectedEOF}

func project(id int64, name string) models.Project {
	return models.Project{
		ID:        id,
		Name:      name,
		Status:    models.StatusPlanning,
		Priority:  models.PriorityMedium,
		Color:     models.DefaultColor,
		OwnerID:   1,
		OwnerName: "bob",
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
}

func page(number, totalElements, totalPages int, items ...models.Project) *models.ProjectsPage {
	return &models.ProjectsPage{
		Content:       items,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Size:          len(items),
		Number:        number,
		First:         number == 0,
		Last:          number == totalPages-1,
	}
}
