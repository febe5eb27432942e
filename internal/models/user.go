// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, роль и служебные метки времени.
// Структура используется хранилищем сессии и dev API.
package models

import "time"

// Role — роль пользователя в системе.
type Role string

const (
	// RoleUser обычный пользователь, роль по умолчанию при регистрации.
	RoleUser Role = "USER"
	// RoleAdmin администратор.
	RoleAdmin Role = "ADMIN"
	// RoleProjectManager руководитель проектов.
	RoleProjectManager Role = "PROJECT_MANAGER"
)

// Valid сообщает, входит ли роль в допустимый набор.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// User представляет снимок личности аутентифицированного пользователя.
// Заменяется целиком при каждом успешном входе или регистрации.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone возвращает копию пользователя, не разделяющую указатели с оригиналом.
func (u User) Clone() User {
	u.FirstName = cloneString(u.FirstName)
	u.LastName = cloneString(u.LastName)
	return u
}
