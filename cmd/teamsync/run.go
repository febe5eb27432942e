package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/docopt/docopt-go"

	"github.com/magabrotheeeer/teamsync/internal/app/teamsync"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/models"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errInvalidOption  = errors.New("invalid option value")
)

// run выполняет разобранную команду и печатает результат в out.
// Снимок печатается и при отказе сервера: в нём лежит текст ошибки.
func run(ctx context.Context, opts docopt.Opts, app *teamsync.App, out io.Writer) error {
	const op = "main.run"

	if projects, _ := opts.Bool("projects"); projects {
		err := runProjects(ctx, opts, app)
		if printErr := printJSON(out, app.Projects()); printErr != nil {
			return fmt.Errorf("%s: %w", op, printErr)
		}
		return err
	}

	var err error
	switch {
	case flag(opts, "login"):
		username, _ := opts.String("<username>")
		password, _ := opts.String("--password")
		err = app.Login(ctx, models.LoginRequest{Username: username, Password: password})
	case flag(opts, "register"):
		username, _ := opts.String("<username>")
		email, _ := opts.String("--email")
		password, _ := opts.String("--password")
		err = app.Register(ctx, models.RegisterRequest{
			Username:  username,
			Email:     email,
			Password:  password,
			FirstName: optional(opts, "--first-name"),
			LastName:  optional(opts, "--last-name"),
		})
	case flag(opts, "logout"):
		app.Logout(ctx)
	case flag(opts, "status"):
	case flag(opts, "health"):
		health, err := app.Health(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return printJSON(out, health)
	default:
		return fmt.Errorf("%s: %w", op, errUnknownCommand)
	}

	if printErr := printJSON(out, app.Session()); printErr != nil {
		return fmt.Errorf("%s: %w", op, printErr)
	}
	return err
}

func runProjects(ctx context.Context, opts docopt.Opts, app *teamsync.App) error {
	switch {
	case flag(opts, "list"):
		page, err := intArg(opts, "--page")
		if err != nil {
			return err
		}
		return app.ListProjects(ctx, page)
	case flag(opts, "create"):
		name, _ := opts.String("<name>")
		f, err := parseFields(opts)
		if err != nil {
			return err
		}
		app.OpenCreateForm(ctx)
		return app.CreateProject(ctx, models.ProjectCreateRequest{
			Name:        name,
			Description: f.description,
			Status:      f.status,
			Priority:    f.priority,
			StartDate:   f.start,
			EndDate:     f.end,
			Color:       f.color,
		})
	case flag(opts, "get"):
		id, err := idArg(opts)
		if err != nil {
			return err
		}
		return app.ReadProject(ctx, id)
	case flag(opts, "update"):
		id, err := idArg(opts)
		if err != nil {
			return err
		}
		name, _ := opts.String("<name>")
		f, err := parseFields(opts)
		if err != nil {
			return err
		}
		return app.UpdateProject(ctx, id, models.ProjectUpdateRequest{
			Name:        name,
			Description: f.description,
			Status:      f.status,
			Priority:    f.priority,
			StartDate:   f.start,
			EndDate:     f.end,
			Color:       f.color,
		})
	case flag(opts, "delete"):
		id, err := idArg(opts)
		if err != nil {
			return err
		}
		return app.DeleteProject(ctx, id)
	}
	return errUnknownCommand
}

func flag(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

// optional возвращает nil для опции, которую не передали.
func optional(opts docopt.Opts, key string) *string {
	v, err := opts.String(key)
	if err != nil {
		return nil
	}
	return &v
}

// fields общие необязательные поля create и update.
type fields struct {
	description, start, end, color *string
	status                         *models.ProjectStatus
	priority                       *models.ProjectPriority
}

// parseFields отклоняет неизвестные статус и приоритет до обращения к клиенту.
func parseFields(opts docopt.Opts) (fields, error) {
	const op = "main.parseFields"

	f := fields{
		description: optional(opts, "--description"),
		start:       optional(opts, "--start"),
		end:         optional(opts, "--end"),
		color:       optional(opts, "--color"),
	}
	if v := optional(opts, "--status"); v != nil {
		status := models.ProjectStatus(*v)
		if !status.Valid() {
			return fields{}, fmt.Errorf("%s: %w: status %q", op, errInvalidOption, *v)
		}
		f.status = &status
	}
	if v := optional(opts, "--priority"); v != nil {
		priority := models.ProjectPriority(*v)
		if !priority.Valid() {
			return fields{}, fmt.Errorf("%s: %w: priority %q", op, errInvalidOption, *v)
		}
		f.priority = &priority
	}
	return f, nil
}

func intArg(opts docopt.Opts, key string) (int, error) {
	const op = "main.intArg"
	raw, err := opts.String(key)
	if err != nil {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return v, nil
}

func idArg(opts docopt.Opts) (int64, error) {
	const op = "main.idArg"
	raw, _ := opts.String("<id>")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// logMetrics выводит счётчики завершённых команд.
func logMetrics(log *slog.Logger, app *teamsync.App) {
	families, err := app.Metrics().Gather()
	if err != nil {
		log.Warn("failed to gather metrics", sl.Err(err))
		return
	}
	for _, family := range families {
		if family.GetName() != "teamsync_commands_settled_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			attrs := []any{slog.Float64("value", m.GetCounter().GetValue())}
			for _, l := range m.GetLabel() {
				attrs = append(attrs, slog.String(l.GetName(), l.GetValue()))
			}
			log.Debug("command metric", attrs...)
		}
	}
}
