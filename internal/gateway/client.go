// Package gateway реализует HTTP-клиент API TeamSync. Клиент не хранит состояния,
// кроме источника токена: каждый метод отображает один запрос на один ответ.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/teamsync/internal/models"
)

// RequestIDHeader заголовок идентификатора запроса.
const RequestIDHeader = "X-Request-ID"

// TokenSource отдаёт текущий bearer-токен. Пустая строка — запрос без авторизации.
type TokenSource interface {
	Token() string
}

// Client обращается к API по базовому адресу, например http://host/api/v1.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient создаёт клиент API. tokens может быть nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login выполняет POST /auth/login.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "gateway.Login", http.MethodPost, "/auth/login", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register выполняет POST /auth/register.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "gateway.Register", http.MethodPost, "/auth/register", req, &resp, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProjects выполняет GET /projects?page&size. page начинается с нуля.
func (c *Client) ListProjects(ctx context.Context, page, size int) (*models.ProjectsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var resp models.ProjectsPage
	if err := c.do(ctx, "gateway.ListProjects", http.MethodGet, "/projects?"+q.Encode(), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProject выполняет POST /projects.
func (c *Client) CreateProject(ctx context.Context, req models.ProjectCreateRequest) (*models.Project, error) {
	var resp models.Project
	if err := c.do(ctx, "gateway.CreateProject", http.MethodPost, "/projects", req, &resp, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProject выполняет GET /projects/{id}.
func (c *Client) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var resp models.Project
	if err := c.do(ctx, "gateway.GetProject", http.MethodGet, projectPath(id), nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProject выполняет PUT /projects/{id}.
func (c *Client) UpdateProject(ctx context.Context, id int64, req models.ProjectUpdateRequest) (*models.Project, error) {
	var resp models.Project
	if err := c.do(ctx, "gateway.UpdateProject", http.MethodPut, projectPath(id), req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProject выполняет DELETE /projects/{id}.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, "gateway.DeleteProject", http.MethodDelete, projectPath(id), nil, nil, http.StatusNoContent, http.StatusOK)
}

// Health выполняет GET /health.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var resp models.Health
	if err := c.do(ctx, "gateway.Health", http.MethodGet, "/health", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

func projectPath(id int64) string {
	return "/projects/" + strconv.FormatInt(id, 10)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		b := &bytes.Buffer{}
		if err := json.NewEncoder(b).Encode(body); err != nil {
			return nil, err
		}
		buf = b
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, okStatuses ...int) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !statusIn(resp.StatusCode, okStatuses) {
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusIn(code int, codes []int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// readMessage достаёт поле message из тела ошибки; пустое или
// не-JSON тело даёт пустую строку.
func readMessage(r io.Reader) string {
	var body models.ErrorBody
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
