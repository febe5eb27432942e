// Package middlewarectx содержит middleware dev API: проверку JWT
// и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/teamsync/internal/http/response"
	"github.com/magabrotheeeer/teamsync/internal/lib/jwt"
	"github.com/magabrotheeeer/teamsync/internal/lib/sl"
)

// Key — тип ключей контекста запроса.
type Key string

const (
	// UserID id пользователя (int64).
	UserID Key = "user_id"
	// User имя пользователя.
	User Key = "username"
	// Role роль пользователя.
	Role Key = "role"
)

// TokenValidator разбирает bearer-токен.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// JWTMiddleware пропускает запрос дальше только с валидным токеном
// и кладёт данные пользователя в контекст.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenStr == "" {
				log.Warn("missing or invalid authorization header")
				response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Fail(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, User, claims.Username)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Caller достаёт из контекста пользователя, записанного JWTMiddleware.
func Caller(ctx context.Context) (id int64, username string, ok bool) {
	id, ok = ctx.Value(UserID).(int64)
	if !ok {
		return 0, "", false
	}
	username, ok = ctx.Value(User).(string)
	return id, username, ok && username != ""
}
