package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/models"
	projectsvc "github.com/magabrotheeeer/teamsync/internal/services/project"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, owner projectsvc.Owner, req models.ProjectCreateRequest) (*models.Project, error) {
	args := m.Called(ctx, owner, req)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withCaller(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), middlewarectx.UserID, int64(1))
	ctx = context.WithValue(ctx, middlewarectx.User, "bob")
	return r.WithContext(ctx)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	svc := new(ServiceMock)
	handler := New(newNoopLogger(), svc)
	owner := projectsvc.Owner{ID: 1, Username: "bob"}

	tests := []struct {
		name           string
		body           string
		anonymous      bool
		mockReq        *models.ProjectCreateRequest
		mockResp       *models.Project
		mockErr        error
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "проект создан",
			body:           `{"name":"Alpha"}`,
			mockReq:        &models.ProjectCreateRequest{Name: "Alpha"},
			mockResp:       &models.Project{ID: 10, Name: "Alpha", Status: models.StatusPlanning},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "пустое имя",
			body:           `{"name":"   "}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Name is a required field",
		},
		{
			name:           "конец раньше начала",
			body:           `{"name":"Alpha","startDate":"2025-05-10","endDate":"2025-05-01"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field EndDate must not be earlier than StartDate",
		},
		{
			name:           "неизвестный статус",
			body:           `{"name":"Alpha","status":"DONE"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Status must be one of: PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED",
		},
		{
			name:           "без токена",
			body:           `{"name":"Alpha"}`,
			anonymous:      true,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Unauthorized",
		},
		{
			name:           "ошибка сервиса",
			body:           `{"name":"Alpha"}`,
			mockReq:        &models.ProjectCreateRequest{Name: "Alpha"},
			mockErr:        errors.New("storage down"),
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.ExpectedCalls = nil
			svc.Calls = nil
			if tt.mockReq != nil {
				svc.On("Create", mock.Anything, owner, *tt.mockReq).Return(tt.mockResp, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(tt.body))
			if !tt.anonymous {
				req = withCaller(req)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			} else {
				assert.Equal(t, float64(10), got["id"])
				assert.Equal(t, "Alpha", got["name"])
			}
			svc.AssertExpectations(t)
		})
	}
}
