// Package remove обрабатывает DELETE /projects/{id}.
package remove

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
	"github.com/magabrotheeeer/teamsync/internal/services"
)

// Service удаляет проект владельца.
type Service interface {
	Delete(ctx context.Context, ownerID, id int64) error
}

// Handler обрабатывает удаление проекта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик удаления проекта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP удаляет проект и отвечает 204 без тела.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.remove"
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

	err = h.service.Delete(r.Context(), ownerID, id)
	if errors.Is(err, services.ErrProjectNotFound) {
		log.Info("project not found", slog.Int64("id", id))
		response.Fail(w, r, http.StatusNotFound, response.MsgProjectNotFound)
		return
	}
	if err != nil {
		log.Error("failed to delete project", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("project deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
