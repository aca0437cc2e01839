package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuntas/internal/model"
)

func testLogger() *log.Logger { return log.New(io.Discard) }

func TestListActivitiesUnwrapsEnvelopeAndScopesByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/activity-groups", r.URL.Path)
		assert.Equal(t, "user@example.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"total":2,"limit":1000,"skip":0,"data":[
			{"id":1,"title":"Belanja","created_at":"2022-01-05T08:00:00.000Z"},
			{"id":2,"title":"Kerjaan","created_at":"2022-01-06T08:00:00.000Z"}
		]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "user@example.com", srv.Client(), testLogger())
	activities, err := c.ListActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, 1, activities[0].ID)
	assert.Equal(t, "Belanja", activities[0].Title)
}

func TestGetActivityIncludesTodos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity-groups/7", r.URL.Path)
		io.WriteString(w, `{"id":7,"title":"Belanja","created_at":"2022-01-05T08:00:00.000Z",
			"todo_items":[{"id":3,"activity_group_id":7,"title":"Susu","priority":"normal","is_active":1}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "user@example.com", srv.Client(), testLogger())
	detail, err := c.GetActivity(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, detail.ID)
	require.Len(t, detail.TodoItems, 1)
	assert.Equal(t, model.PriorityNormal, detail.TodoItems[0].Priority)
	assert.Equal(t, model.StatusNotDone, detail.TodoItems[0].IsActive)
}

func TestCreateActivitySendsTitleAndEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New Activity", body["title"])
		assert.Equal(t, "user@example.com", body["email"])

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":11,"title":"New Activity","created_at":"2022-01-05T08:00:00.000Z"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "user@example.com", srv.Client(), testLogger())
	created, err := c.CreateActivity(context.Background(), "New Activity")
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}

func TestCheckTodoSendsPriorityAlongsideToggle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/todo-items/3", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "high", body["priority"])
		assert.Equal(t, float64(0), body["is_active"])

		io.WriteString(w, `{"id":3,"activity_group_id":7,"title":"Susu","priority":"high","is_active":0}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "user@example.com", srv.Client(), testLogger())
	updated, err := c.CheckTodo(context.Background(), 3, CheckTodoParams{
		Priority: model.PriorityHigh,
		IsActive: model.StatusDone,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, updated.IsActive)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "user@example.com", srv.Client(), testLogger())
	err := c.DeleteActivity(context.Background(), 9)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, http.MethodDelete, apiErr.Method)
}

func TestTransportFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, "user@example.com", nil, testLogger())
	_, err := c.ListActivities(context.Background())
	require.Error(t, err)
}
