package devapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/teamsync/internal/config"
	"github.com/magabrotheeeer/teamsync/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/teamsync/internal/services/auth"
	projectservice "github.com/magabrotheeeer/teamsync/internal/services/project"
	"github.com/magabrotheeeer/teamsync/internal/storage/memory"
)

const shutdownTimeout = 15 * time.Second

// App локальный сервер API с хранилищем в памяти.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New собирает сервер с хранилищем в памяти.
func New(cfg config.DevAPI, logger *slog.Logger) *App {
	return &App{
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      Handler(cfg, logger),
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Handler возвращает готовый http.Handler со свежим хранилищем;
// используется и сервером, и тестами.
func Handler(cfg config.DevAPI, logger *slog.Logger) http.Handler {
	store := memory.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	limit := rate.Inf
	if cfg.AuthRPS > 0 {
		limit = rate.Limit(cfg.AuthRPS)
	}

	return NewRouter(logger, Deps{
		Auth:        authservice.New(store, jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)),
		Projects:    projectservice.New(store),
		AuthLimiter: rate.NewLimiter(limit, max(cfg.AuthBurst, 1)),
		Registry:    reg,
	})
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("dev API starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down dev API gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
