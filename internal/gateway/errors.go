package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Error — ошибка обращения к API: неуспешный HTTP-статус или сбой транспорта.
// Message содержит текст сервера, если он был в теле ответа.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

// Error возвращает текст с op и статусом.
func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %d: %s", e.Op, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// Unwrap возвращает ошибку транспорта, если она есть.
func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage возвращает текст ошибки сервера из err, если он есть.
func ServerMessage(err error) (string, bool) {
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message, true
	}
	return "", false
}

// IsNotFound сообщает, что сервер ответил 404.
func IsNotFound(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized сообщает, что сервер ответил 401.
func IsUnauthorized(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusUnauthorized
}
