// Command teamsync-devapi запускает локальный сервер API TeamSync Pro
// с хранилищем в памяти. Используется для разработки и сквозных тестов клиента.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/teamsync/internal/app/devapi"
	"github.com/magabrotheeeer/teamsync/internal/config"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", sl.Err(err))
	}

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting teamsync-devapi", slog.String("env", cfg.Env), slog.String("address", cfg.DevAPI.Address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := devapi.New(cfg.DevAPI, logger)
	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("teamsync-devapi stopped gracefully")
}
