// Package update обрабатывает PUT /projects/{id}.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
)

// Service обновляет проект владельца.
type Service interface {
	Update(ctx context.Context, ownerID, id int64, req models.ProjectUpdateRequest) (*models.Project, error)
}

// Handler обрабатывает обновление проекта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт обработчик обновления проекта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.NewValidator(),
	}
}

// ServeHTTP обновляет проект и возвращает его новое состояние.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, _, ok := middlewarectx.Caller(r.Context())
	if !ok {
		log.Error("caller not found in context")
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Warn("invalid id in url", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	var req models.ProjectUpdateRequest
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

	p, err := h.service.Update(r.Context(), ownerID, id, req)
	if errors.Is(err, services.ErrProjectNotFound) {
		log.Info("project not found", slog.Int64("id", id))
		response.Fail(w, r, http.StatusNotFound, response.MsgProjectNotFound)
		return
	}
	if err != nil {
		log.Error("failed to update project", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("project updated", slog.Int64("id", id))
	response.JSON(w, r, http.StatusOK, p)
}
