// Package list обрабатывает GET /projects?page&size.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/models"
)

// MaxPageSize ограничивает размер страницы сверху.
const MaxPageSize = 100

// Service возвращает страницу проектов владельца.
type Service interface {
	List(ctx context.Context, ownerID int64, page, size int) (*models.ProjectsPage, error)
}

// Handler обрабатывает получение списка проектов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик списка проектов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP отдаёт страницу проектов вызывающего. Некорректные page и size
// заменяются значениями по умолчанию.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.list"
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

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 20
	}
	size = min(size, MaxPageSize)

	res, err := h.service.List(r.Context(), ownerID, page, size)
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("projects listed", slog.Int("count", len(res.Content)), slog.Int("total", res.TotalElements))
	response.JSON(w, r, http.StatusOK, res)
}
