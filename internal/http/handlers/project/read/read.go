// Package read обрабатывает GET /projects/{id}.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
)

// Service возвращает проект владельца по id.
type Service interface {
	Get(ctx context.Context, ownerID, id int64) (*models.Project, error)
}

// Handler обрабатывает получение проекта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик чтения проекта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP отдаёт проект или 404, если он не найден или принадлежит другому пользователю.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.read"
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

	p, err := h.service.Get(r.Context(), ownerID, id)
	if errors.Is(err, services.ErrProjectNotFound) {
		log.Info("project not found", slog.Int64("id", id))
		response.Fail(w, r, http.StatusNotFound, response.MsgProjectNotFound)
		return
	}
	if err != nil {
		log.Error("failed to read project", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}
