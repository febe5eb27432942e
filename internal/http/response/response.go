// Package response формирует JSON-ответы dev API. Ошибка всегда
// передаётся телом {"message": "..."}, которое читает клиент.
package response

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/models"
)

// Сообщения ошибок, которые видит пользователь.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgInvalidID          = "Invalid project id"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUsernameTaken      = "Username is already taken"
	MsgProjectNotFound    = "Project not found"
	MsgUnauthorized       = "Unauthorized"
	MsgTooManyRequests    = "Too many requests"
	MsgInternal           = "Internal server error"
)

// Error возвращает тело ошибки.
func Error(msg string) models.ErrorBody {
	return models.ErrorBody{Message: msg}
}

// ValidationError собирает сообщения о нарушениях в одно тело.
func ValidationError(err *validate.Error) models.ErrorBody {
	return models.ErrorBody{Message: err.Error()}
}

// JSON пишет v с кодом status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Fail пишет тело ошибки с кодом status.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Error(msg))
}
