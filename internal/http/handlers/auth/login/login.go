// Package login обрабатывает POST /auth/login.
package login

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

// Service — бизнес-логика входа.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}

// Handler обрабатывает вход по имени и паролю.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт обработчик входа.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.NewValidator(),
	}
}

// ServeHTTP отвечает 200 с токеном и данными пользователя либо
// 401 "Invalid credentials".
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
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

	resp, err := h.service.Login(r.Context(), req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("username", req.Username))
		response.Fail(w, r, http.StatusUnauthorized, response.MsgInvalidCredentials)
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("login success", slog.String("username", resp.Username))
	response.JSON(w, r, http.StatusOK, resp)
}
