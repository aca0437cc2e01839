// Package api is the client for the remote activity-groups /
// todo-items service. The server is the single source of truth: the
// client holds no cache, so callers re-fetch after every mutation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"tuntas/internal/model"
)

// APIError is a non-2xx response. The service does not publish a body
// error schema, so the status code is all we keep.
type APIError struct {
	Method string
	Path   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// Client issues requests against a base URL, scoped to one account
// email. Configuration is injected; nothing reads the environment here.
type Client struct {
	baseURL string
	email   string
	httpc   *http.Client
	log     *log.Logger
}

func New(baseURL, email string, httpc *http.Client, logger *log.Logger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{baseURL: baseURL, email: email, httpc: httpc, log: logger}
}

// do runs one request and decodes a JSON response into out (skipped
// when out is nil). No retries; a failed call is reported once and the
// user resubmits.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		buf = bytes.NewBuffer(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var req *http.Request
	var err error
	if buf != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, buf)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", "method", method, "path", path)

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, Status: res.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// activitiesEnvelope is the paging wrapper around the activity list.
// Paging itself is unused; the account's activities fit in one page.
type activitiesEnvelope struct {
	Total int              `json:"total"`
	Limit int              `json:"limit"`
	Skip  int              `json:"skip"`
	Data  []model.Activity `json:"data"`
}

// ListActivities returns every activity owned by the configured email.
func (c *Client) ListActivities(ctx context.Context) ([]model.Activity, error) {
	q := url.Values{"email": {c.email}}
	var env activitiesEnvelope
	if err := c.do(ctx, http.MethodGet, "/activity-groups", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ActivityDetail is an activity with its todos, as returned by the
// detail endpoint. Todos are only ever loaded this way, never alone.
type ActivityDetail struct {
	model.Activity
	TodoItems []model.Todo `json:"todo_items"`
}

func (c *Client) GetActivity(ctx context.Context, id int) (*ActivityDetail, error) {
	var detail ActivityDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/activity-groups/%d", id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreateActivity(ctx context.Context, title string) (*model.Activity, error) {
	body := map[string]string{"title": title, "email": c.email}
	var created model.Activity
	if err := c.do(ctx, http.MethodPost, "/activity-groups", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) RenameActivity(ctx context.Context, id int, title string) error {
	body := map[string]string{"title": title}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/activity-groups/%d", id), nil, body, nil)
}

func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/activity-groups/%d", id), nil, nil, nil)
}

type CreateTodoParams struct {
	ActivityGroupID int            `json:"activity_group_id"`
	Title           string         `json:"title"`
	Priority        model.Priority `json:"priority"`
}

func (c *Client) CreateTodo(ctx context.Context, p CreateTodoParams) (*model.Todo, error) {
	var created model.Todo
	if err := c.do(ctx, http.MethodPost, "/todo-items", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type UpdateTodoParams struct {
	Title    string             `json:"title"`
	Priority model.Priority     `json:"priority"`
	IsActive model.ActiveStatus `json:"is_active"`
}

func (c *Client) UpdateTodo(ctx context.Context, id int, p UpdateTodoParams) (*model.Todo, error) {
	var updated model.Todo
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/todo-items/%d", id), nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CheckTodoParams re-sends priority unchanged next to the toggled
// state. The PATCH endpoint's partial-update semantics are unknown, so
// both fields are kept on the wire.
type CheckTodoParams struct {
	Priority model.Priority     `json:"priority"`
	IsActive model.ActiveStatus `json:"is_active"`
}

func (c *Client) CheckTodo(ctx context.Context, id int, p CheckTodoParams) (*model.Todo, error) {
	var updated model.Todo
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/todo-items/%d", id), nil, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todo-items/%d", id), nil, nil, nil)
}
