// Package health обрабатывает GET /health.
package health

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/models"
)

const (
	ServiceName = "TeamSync Pro Backend"
	Version     = "0.1.0"
)

// Handler отвечает на проверку работоспособности.
type Handler struct {
	now func() time.Time
}

// New создаёт обработчик health.
func New() *Handler {
	return &Handler{now: time.Now}
}

// ServeHTTP возвращает статус UP, имя и версию сервиса.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status:    "UP",
		Timestamp: h.now().UTC(),
		Service:   ServiceName,
		Version:   Version,
	})
}
