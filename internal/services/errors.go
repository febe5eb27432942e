// Package services содержит бизнес-логику dev API. Ошибки этого пакета
// обработчики переводят в коды ответа HTTP.
package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrProjectNotFound    = errors.New("project not found")
)
