package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/teamsync/internal/gateway"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/tokenslot"
)

// DefaultPageSize — размер страницы, если команда его не задала.
const DefaultPageSize = 20

// Сообщения об ошибках на случай, когда сервер не прислал своего текста.
const (
	FallbackLogin    = "Login failed"
	FallbackRegister = "Registration failed"
	FallbackList     = "Failed to fetch projects"
	FallbackCreate   = "Failed to create project"
	FallbackRead     = "Failed to fetch project"
	FallbackUpdate   = "Failed to update project"
	FallbackDelete   = "Failed to delete project"
)

// ErrNilCommand возвращается в Outcome при попытке отправить nil.
var ErrNilCommand = errors.New("nil command")

// Status итог команды.
type Status string

const (
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Outcome — результат завершения команды. Ошибка возвращается значением:
// пользовательский текст ошибки лежит в хранилище.
type Outcome struct {
	Command string
	Status  Status
	Err     error
}

// OK сообщает, что команда выполнена успешно.
func (o Outcome) OK() bool {
	return o.Status == StatusFulfilled
}

// Gateway описывает вызовы API, которые нужны командам.
type Gateway interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ListProjects(ctx context.Context, page, size int) (*models.ProjectsPage, error)
	CreateProject(ctx context.Context, req models.ProjectCreateRequest) (*models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, req models.ProjectUpdateRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Recorder получает события жизненного цикла команд (метрики).
type Recorder interface {
	CommandDispatched(command string)
	CommandSettled(command string, status Status, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CommandDispatched(string)                      {}
func (nopRecorder) CommandSettled(string, Status, time.Duration) {}

// Dispatcher — единственный писатель хранилищ. Каждая асинхронная команда
// проходит pending → fulfilled/rejected; вызов API выполняется вне блокировок,
// поэтому команды могут выполняться одновременно и применяются в порядке
// завершения, а не отправки.
type Dispatcher struct {
	session  *Session
	projects *Projects
	gw       Gateway
	slot     tokenslot.Slot
	log      *slog.Logger
	metrics  Recorder
	now      func() time.Time
}

// Option настраивает Dispatcher.
type Option func(*Dispatcher)

// WithRecorder подключает сборщик метрик.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.metrics = r
		}
	}
}

// WithClock подменяет источник времени (метки времени пользователя).
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher создаёт диспетчер над переданными хранилищами.
func NewDispatcher(session *Session, projects *Projects, gw Gateway, slot tokenslot.Slot, log *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:  session,
		projects: projects,
		gw:       gw,
		slot:     slot,
		log:      log,
		metrics:  nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Session возвращает хранилище сессии (только чтение снаружи пакета).
func (d *Dispatcher) Session() *Session { return d.session }

// Projects возвращает хранилище проектов (только чтение снаружи пакета).
func (d *Dispatcher) Projects() *Projects { return d.projects }

// Dispatch выполняет команду до завершения и возвращает её итог.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) Outcome {
	if cmd == nil {
		return Outcome{Status: StatusRejected, Err: ErrNilCommand}
	}

	start := time.Now()
	d.metrics.CommandDispatched(cmd.Name())

	var err error
	switch c := cmd.(type) {
	case Login:
		err = d.authenticate(ctx, c.Name(), FallbackLogin, func(ctx context.Context) (*models.AuthResponse, error) {
			return d.gw.Login(ctx, c.Request)
		})
	case Register:
		err = d.authenticate(ctx, c.Name(), FallbackRegister, func(ctx context.Context) (*models.AuthResponse, error) {
			return d.gw.Register(ctx, c.Request)
		})
	case Logout:
		d.logout(ctx)
	case ClearAuthError:
		d.session.clearError()
	case ListProjects:
		err = d.listProjects(ctx, c)
	case CreateProject:
		err = d.createProject(ctx, c)
	case ReadProject:
		err = d.projectCommand(ctx, c.Name(), FallbackRead, func(ctx context.Context) error {
			project, err := d.gw.GetProject(ctx, c.ID)
			if err != nil {
				return err
			}
			d.projects.readFulfilled(*project)
			return nil
		})
	case UpdateProject:
		err = d.projectCommand(ctx, c.Name(), FallbackUpdate, func(ctx context.Context) error {
			project, err := d.gw.UpdateProject(ctx, c.ID, c.Request)
			if err != nil {
				return err
			}
			d.projects.updateFulfilled(*project)
			return nil
		})
	case DeleteProject:
		err = d.projectCommand(ctx, c.Name(), FallbackDelete, func(ctx context.Context) error {
			if err := d.gw.DeleteProject(ctx, c.ID); err != nil {
				return err
			}
			d.projects.deleteFulfilled(c.ID)
			return nil
		})
	case OpenCreateForm:
		d.projects.openCreateForm()
	case CloseCreateForm:
		d.projects.closeCreateForm()
	case FocusProject:
		d.projects.focus(c.Project)
	case ClearFocus:
		d.projects.focus(nil)
	case ClearProjectError:
		d.projects.clearError()
	}

	out := Outcome{Command: cmd.Name(), Status: StatusFulfilled}
	if err != nil {
		out.Status = StatusRejected
		out.Err = err
	}
	d.metrics.CommandSettled(out.Command, out.Status, time.Since(start))
	return out
}

// Go выполняет команду в отдельной горутине. Канал получает ровно один итог.
func (d *Dispatcher) Go(ctx context.Context, cmd Command) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		ch <- d.Dispatch(ctx, cmd)
	}()
	return ch
}

func (d *Dispatcher) authenticate(ctx context.Context, name, fallback string, call func(context.Context) (*models.AuthResponse, error)) error {
	const op = "store.Dispatcher.authenticate"
	log := d.log.With(sl.Op(op), slog.String("command", name))

	d.session.authPending()
	resp, err := call(ctx)
	if err != nil {
		d.session.authRejected(userMessage(err, fallback))
		log.Warn("command rejected", sl.Err(err))
		return err
	}

	if err := d.slot.Save(ctx, resp.Token); err != nil {
		log.Warn("failed to persist token", sl.Err(err))
	}
	d.session.authFulfilled(*resp, d.now())
	log.Info("command fulfilled", slog.String("username", resp.Username), slog.String("role", string(resp.Role)))
	return nil
}

func (d *Dispatcher) logout(ctx context.Context) {
	const op = "store.Dispatcher.logout"
	if err := d.slot.Clear(ctx); err != nil {
		d.log.Warn("failed to clear persisted token", sl.Op(op), sl.Err(err))
	}
	d.session.logout()
}

func (d *Dispatcher) listProjects(ctx context.Context, c ListProjects) error {
	page, size := c.Page, c.Size
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return d.projectCommand(ctx, c.Name(), FallbackList, func(ctx context.Context) error {
		resp, err := d.gw.ListProjects(ctx, page, size)
		if err != nil {
			return err
		}
		d.projects.listFulfilled(*resp)
		return nil
	})
}

// createProject подставляет статус и приоритет по умолчанию перед отправкой.
func (d *Dispatcher) createProject(ctx context.Context, c CreateProject) error {
	req := c.Request.WithDefaults()
	return d.projectCommand(ctx, c.Name(), FallbackCreate, func(ctx context.Context) error {
		project, err := d.gw.CreateProject(ctx, req)
		if err != nil {
			return err
		}
		d.projects.createFulfilled(*project)
		return nil
	})
}

// projectCommand оборачивает вызов API в pending/rejected; fulfilled-переход
// выполняет сам call после успешного ответа.
func (d *Dispatcher) projectCommand(ctx context.Context, name, fallback string, call func(context.Context) error) error {
	const op = "store.Dispatcher.projectCommand"
	log := d.log.With(sl.Op(op), slog.String("command", name))

	d.projects.pending()
	log.Debug("command pending")
	if err := call(ctx); err != nil {
		d.projects.rejected(userMessage(err, fallback))
		log.Warn("command rejected", sl.Err(err))
		return err
	}
	log.Info("command fulfilled")
	return nil
}

// userMessage предпочитает текст сервера, иначе возвращает fallback.
func userMessage(err error, fallback string) string {
	if msg, ok := gateway.ServerMessage(err); ok {
		return msg
	}
	return fallback
}
