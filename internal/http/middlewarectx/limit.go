package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/teamsync/internal/http/response"
)

// RateLimitMiddleware отвечает 429, когда limiter исчерпан.
// Лимитер общий для всех запросов группы маршрутов.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				response.Fail(w, r, http.StatusTooManyRequests, response.MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
