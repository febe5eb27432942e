package models

import "time"

// LoginRequest — учётные данные для входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest — данные для регистрации нового пользователя.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=50"`
}

// AuthResponse — ответ сервера на вход и регистрацию.
// Временных меток в ответе нет.
type AuthResponse struct {
	Token     string  `json:"token"`
	Type      string  `json:"type"`
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      Role    `json:"role"`
}

// Identity строит снимок пользователя из ответа сервера.
// Метки времени заполняются моментом завершения команды.
func (a AuthResponse) Identity(now time.Time) *User {
	return &User{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: cloneString(a.FirstName),
		LastName:  cloneString(a.LastName),
		Role:      a.Role,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ErrorBody — тело ошибочного ответа API.
type ErrorBody struct {
	Message string `json:"message"`
}

// Health — ответ проверки работоспособности сервиса.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}
