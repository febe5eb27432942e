// Package teamsync собирает клиентское ядро: слот токена, хранилища,
// HTTP-клиент API и диспетчер. Хранилища создаются здесь и живут столько же,
// сколько App; глобального состояния нет.
//
// Методы App проверяют запрос до отправки команды: невалидный запрос
// возвращает *validate.Error, не доходит до сервера и не меняет хранилища.
package teamsync

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/teamsync/internal/config"
	"github.com/magabrotheeeer/teamsync/internal/gateway"
	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/metrics"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/store"
	"github.com/magabrotheeeer/teamsync/internal/tokenslot"
)

// App клиентское ядро TeamSync: хранилища, диспетчер и клиент API.
type App struct {
	log        *slog.Logger
	slot       tokenslot.Slot
	client     *gateway.Client
	dispatcher *store.Dispatcher
	validate   *validate.Validator
	registry   *prometheus.Registry
	pageSize   int
}

// Option настраивает App.
type Option func(*options)

type options struct {
	slot tokenslot.Slot
}

// WithSlot подменяет слот токена из конфига.
func WithSlot(slot tokenslot.Slot) Option {
	return func(o *options) { o.slot = slot }
}

// New восстанавливает сессию из слота и собирает диспетчер.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	const op = "teamsync.New"

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	slot := o.slot
	if slot == nil {
		var err error
		slot, err = tokenslot.New(ctx, cfg.TokenSlot)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	session := store.RestoreSession(ctx, slot, log)
	client := gateway.NewClient(cfg.BaseURL, cfg.Gateway.Timeout, session)
	registry := prometheus.NewRegistry()

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}

	return &App{
		log:    log,
		slot:   slot,
		client: client,
		dispatcher: store.NewDispatcher(session, store.NewProjects(), client, slot, log,
			store.WithRecorder(metrics.NewCommands(registry))),
		validate: validate.NewValidator(),
		registry: registry,
		pageSize: pageSize,
	}, nil
}

// Session возвращает снимок сессии.
func (a *App) Session() store.SessionState { return a.dispatcher.Session().Snapshot() }

// Projects возвращает снимок коллекции проектов.
func (a *App) Projects() store.ProjectsState { return a.dispatcher.Projects().Snapshot() }

// Metrics возвращает реестр метрик команд.
func (a *App) Metrics() *prometheus.Registry { return a.registry }

// Login проверяет учётные данные и выполняет вход.
func (a *App) Login(ctx context.Context, req models.LoginRequest) error {
	return a.checked(ctx, req, store.Login{Request: req})
}

// Register проверяет данные регистрации, регистрирует пользователя и выполняет вход.
func (a *App) Register(ctx context.Context, req models.RegisterRequest) error {
	return a.checked(ctx, req, store.Register{Request: req})
}

// Logout завершает сессию и очищает слот токена.
func (a *App) Logout(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.Logout{})
}

// ClearAuthError сбрасывает ошибку сессии.
func (a *App) ClearAuthError(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.ClearAuthError{})
}

// ListProjects загружает страницу page (с нуля) размером из конфига.
func (a *App) ListProjects(ctx context.Context, page int) error {
	return a.dispatcher.Dispatch(ctx, store.ListProjects{Page: page, Size: a.pageSize}).Err
}

// CreateProject проверяет запрос и создаёт проект. Статус и приоритет
// по умолчанию подставляет диспетчер.
func (a *App) CreateProject(ctx context.Context, req models.ProjectCreateRequest) error {
	return a.checked(ctx, req, store.CreateProject{Request: req})
}

// ReadProject загружает проект в Focused.
func (a *App) ReadProject(ctx context.Context, id int64) error {
	return a.dispatcher.Dispatch(ctx, store.ReadProject{ID: id}).Err
}

// UpdateProject проверяет запрос и обновляет проект.
func (a *App) UpdateProject(ctx context.Context, id int64, req models.ProjectUpdateRequest) error {
	return a.checked(ctx, req, store.UpdateProject{ID: id, Request: req})
}

// DeleteProject удаляет проект.
func (a *App) DeleteProject(ctx context.Context, id int64) error {
	return a.dispatcher.Dispatch(ctx, store.DeleteProject{ID: id}).Err
}

// OpenCreateForm открывает форму создания проекта.
func (a *App) OpenCreateForm(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.OpenCreateForm{})
}

// CloseCreateForm закрывает форму создания и сбрасывает ошибку проектов.
func (a *App) CloseCreateForm(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.CloseCreateForm{})
}

// Focus выбирает проект локально, без запроса к серверу.
func (a *App) Focus(ctx context.Context, p *models.Project) {
	a.dispatcher.Dispatch(ctx, store.FocusProject{Project: p})
}

// ClearFocus снимает выбор проекта.
func (a *App) ClearFocus(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.ClearFocus{})
}

// ClearProjectError сбрасывает ошибку коллекции проектов.
func (a *App) ClearProjectError(ctx context.Context) {
	a.dispatcher.Dispatch(ctx, store.ClearProjectError{})
}

// Health проверяет доступность API. Хранилища не меняются.
func (a *App) Health(ctx context.Context) (*models.Health, error) {
	return a.client.Health(ctx)
}

// Close освобождает соединения слота, если они есть.
func (a *App) Close() error {
	if c, ok := a.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *App) checked(ctx context.Context, req any, cmd store.Command) error {
	if err := a.validate.Struct(req); err != nil {
		a.log.Debug("request rejected before dispatch", slog.String("command", cmd.Name()), slog.String("reason", err.Error()))
		return err
	}
	return a.dispatcher.Dispatch(ctx, cmd).Err
}
