// Package create обрабатывает POST /projects.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/models"
	projectsvc "github.com/magabrotheeeer/teamsync/internal/services/project"
)

// Service создаёт проект от имени владельца.
type Service interface {
	Create(ctx context.Context, owner projectsvc.Owner, req models.ProjectCreateRequest) (*models.Project, error)
}

// Handler обрабатывает создание проекта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт обработчик создания проекта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.NewValidator(),
	}
}

// ServeHTTP создаёт проект от имени вызывающего и отвечает 201.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, username, ok := middlewarectx.Caller(r.Context())
	if !ok {
		log.Error("caller not found in context")
		response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}

	var req models.ProjectCreateRequest
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

	p, err := h.service.Create(r.Context(), projectsvc.Owner{ID: ownerID, Username: username}, req)
	if err != nil {
		log.Error("failed to create project", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("project created", slog.Int64("id", p.ID), slog.String("owner", username))
	response.JSON(w, r, http.StatusCreated, p)
}
