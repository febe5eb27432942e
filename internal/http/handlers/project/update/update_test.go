package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/teamsync/internal/http/middlewarectx"
	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, ownerID, id int64, req models.ProjectUpdateRequest) (*models.Project, error) {
	args := m.Called(ctx, ownerID, id, req)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/projects/"+id, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.UserID, int64(1))
	ctx = context.WithValue(ctx, middlewarectx.User, "bob")
	return req.WithContext(ctx)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	svc := new(ServiceMock)
	handler := New(newNoopLogger(), svc)
	active := models.StatusActive

	tests := []struct {
		name           string
		id             string
		body           string
		mockReq        *models.ProjectUpdateRequest
		mockResp       *models.Project
		mockErr        error
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "проект обновлён",
			id:             "3",
			body:           `{"name":"Beta","status":"ACTIVE"}`,
			mockReq:        &models.ProjectUpdateRequest{Name: "Beta", Status: &active},
			mockResp:       &models.Project{ID: 3, Name: "Beta", Status: models.StatusActive},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "проект не найден",
			id:             "4",
			body:           `{"name":"Beta"}`,
			mockReq:        &models.ProjectUpdateRequest{Name: "Beta"},
			mockErr:        services.ErrProjectNotFound,
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "Project not found",
		},
		{
			name:           "слишком длинный цвет",
			id:             "3",
			body:           `{"name":"Beta","color":"#0123456789abcdef01234"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field Color must be at most 20 characters long",
		},
		{
			name:           "дата в неверном формате",
			id:             "3",
			body:           `{"name":"Beta","startDate":"01-05-2025"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "field StartDate can contain only date in format 2006-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.ExpectedCalls = nil
			svc.Calls = nil
			if tt.mockReq != nil {
				svc.On("Update", mock.Anything, int64(1), mock.AnythingOfType("int64"), *tt.mockReq).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRequest(tt.id, tt.body))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			} else {
				assert.Equal(t, "Beta", got["name"])
				assert.Equal(t, "ACTIVE", got["status"])
			}
			svc.AssertExpectations(t)
		})
	}
}
