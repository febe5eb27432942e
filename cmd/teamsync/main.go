// Command teamsync запускает консольный клиент TeamSync Pro. Каждая команда
// выполняет одну операцию и печатает снимок затронутого хранилища в JSON.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/teamsync/internal/app/teamsync"
	"github.com/magabrotheeeer/teamsync/internal/config"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
)

// Version версия клиента, печатается по --version.
const Version = "0.1.0"

const usage = `TeamSync Pro client.

Usage:
    teamsync login <username> --password=<password> [-v]
    teamsync register <username> --email=<email> --password=<password> [--first-name=<name>] [--last-name=<name>] [-v]
    teamsync logout [-v]
    teamsync status [-v]
    teamsync health [-v]
    teamsync projects list [--page=<page>] [-v]
    teamsync projects create <name> [--description=<text>] [--status=<status>] [--priority=<priority>] [--start=<date>] [--end=<date>] [--color=<color>] [-v]
    teamsync projects get <id> [-v]
    teamsync projects update <id> <name> [--description=<text>] [--status=<status>] [--priority=<priority>] [--start=<date>] [--end=<date>] [--color=<color>] [-v]
    teamsync projects delete <id> [-v]
    teamsync -h | --help
    teamsync --version

Options:
    -h --help               Show this screen.
    --version               Show version.
    -v --verbose            Debug logging and command metrics on stderr.
    --page=<page>           Zero-based page index [default: 0].
    --status=<status>       PLANNING, ACTIVE, ON_HOLD, COMPLETED or CANCELLED.
    --priority=<priority>   LOW, MEDIUM, HIGH or CRITICAL.
    --start=<date>          Start date, YYYY-MM-DD.
    --end=<date>            End date, YYYY-MM-DD.

Configuration is read from the YAML file in CONFIG_PATH and TEAMSYNC_* variables;
a .env file in the working directory is loaded first.`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		os.Exit(2)
	}

	// .env необязателен.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	level := slog.LevelInfo
	if verbose, _ := opts.Bool("--verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := teamsync.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize client", sl.Err(err))
		os.Exit(1)
	}
	defer app.Close()

	err = run(ctx, opts, app, os.Stdout)
	if level == slog.LevelDebug {
		logMetrics(logger, app)
	}
	if err != nil {
		logger.Error("command failed", sl.Err(err))
		stop()
		_ = app.Close()
		os.Exit(1)
	}
}
