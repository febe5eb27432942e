// Package register обрабатывает POST /auth/register.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
)

// Service бизнес-логика регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

// Handler обрабатывает запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт обработчик регистрации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.NewValidator(),
	}
}

// ServeHTTP регистрирует пользователя и сразу возвращает токен.
// Занятое имя даёт 409.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		var verr *validate.Error
		if errors.As(err, &verr) {
			response.JSON(w, r, http.StatusBadRequest, response.ValidationError(verr))
			return
		}
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if errors.Is(err, services.ErrUsernameTaken) {
		log.Info("username taken", slog.String("username", req.Username))
		response.Fail(w, r, http.StatusConflict, response.MsgUsernameTaken)
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("user registered", slog.String("username", resp.Username), slog.Int64("id", resp.ID))
	response.JSON(w, r, http.StatusOK, resp)
}
