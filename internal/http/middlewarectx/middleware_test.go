package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/lib/jwt"
)

type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.Claims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	validator := new(ValidatorMock)
	handlerCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		id, username, ok := middlewarectx.Caller(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(7), id)
		assert.Equal(t, "bob", username)
		assert.Equal(t, "USER", r.Context().Value(middlewarectx.Role))
		w.WriteHeader(http.StatusOK)
	})
	h := middlewarectx.JWTMiddleware(validator, newNoopLogger())(next)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.Claims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "нет заголовка",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "не bearer",
			authHeader:     "Basic abc",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "пустой bearer",
			authHeader:     "Bearer ",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "невалидный токен",
			authHeader:     "Bearer bad",
			mockErr:        jwt.ErrInvalidToken,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "валидный токен",
			authHeader:     "Bearer good",
			mockClaims:     &jwt.Claims{UserID: 7, Username: "bob", Role: "USER"},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			validator.ExpectedCalls = nil
			validator.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				validator.On("ValidateToken", mock.Anything, tt.authHeader[len("Bearer "):]).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if !tt.wantCalled {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			}
			validator.AssertExpectations(t)
		})
	}
}

func TestCaller_Missing(t *testing.T) {
	_, _, ok := middlewarectx.Caller(context.Background())
	assert.False(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), limiter)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

