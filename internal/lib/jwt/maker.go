// Package jwt выпускает и проверяет JWT dev API.
//
// В токен кладутся id пользователя, имя и роль; подпись HS256
// секретным ключом из конфигурации.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken — подпись не сошлась, токен истёк или повреждён.
var ErrInvalidToken = errors.New("invalid token")

// Claims — данные пользователя внутри токена.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Maker выпускает и разбирает токены.
type Maker interface {
	GenerateToken(userID int64, username, role string) (string, error)
	ParseToken(tokenStr string) (*Claims, error)
}

// HMACMaker подписывает токены общим секретом.
type HMACMaker struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewMaker создаёт HMACMaker с заданным секретом и временем жизни токена.
func NewMaker(secretKey string, ttl time.Duration) *HMACMaker {
	return &HMACMaker{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// GenerateToken выпускает подписанный токен со сроком жизни tokenTTL.
func (m *HMACMaker) GenerateToken(userID int64, username, role string) (string, error) {
	const op = "jwt.GenerateToken"
	now := m.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия. Любая ошибка разбора
// оборачивает ErrInvalidToken.
func (m *HMACMaker) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
