// Package storage описывает хранилище dev API: учётные записи и проекты.
package storage

import (
	"errors"

	"github.com/magabrotheeeer/teamsync/internal/models"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrNotFound     = errors.New("project not found")
)

// Account — пользователь вместе с хешем пароля.
type Account struct {
	User         models.User
	PasswordHash string
}
