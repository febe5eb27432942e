// Package password хеширует пароли пользователей dev API через bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash возвращает bcrypt-хеш пароля.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Matches сообщает, соответствует ли пароль хешу. Повреждённый хеш
// считается несовпадением.
func Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
