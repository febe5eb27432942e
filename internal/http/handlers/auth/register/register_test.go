package register

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	svc := new(ServiceMock)
	handler := New(newNoopLogger(), svc)
	valid := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	tests := []struct {
		name           string
		body           any
		mock           bool
		mockResp       *models.AuthResponse
		mockErr        error
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "успешная регистрация",
			body:           valid,
			mock:           true,
			mockResp:       &models.AuthResponse{Token: "tok", ID: 1, Username: "alice", Role: models.RoleUser},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "имя занято",
			body:           valid,
			mock:           true,
			mockErr:        fmt.Errorf("services.auth.Register: %w", services.ErrUsernameTaken),
			wantStatusCode: http.StatusConflict,
			wantMessage:    "Username is already taken",
		},
		{
			name:           "короткое имя и плохой email",
			body:           models.RegisterRequest{Username: "al", Email: "nope", Password: "secret1"},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Username must be at least 3 characters long, field Email must be a valid email",
		},
		{
			name:           "короткий пароль",
			body:           models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "123"},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Password must be at least 6 characters long",
		},
		{
			name:           "невалидный JSON",
			body:           "{",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.ExpectedCalls = nil
			svc.Calls = nil
			if tt.mock {
				svc.On("Register", mock.Anything, valid).Return(tt.mockResp, tt.mockErr).Once()
			}

			var body []byte
			if s, ok := tt.body.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			} else {
				assert.Equal(t, "tok", got["token"])
			}
			svc.AssertExpectations(t)
		})
	}
}
