package action

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuntas/internal/api"
)

func testLogger() *log.Logger { return log.New(io.Discard) }

// fakeAPI records every request the dispatcher causes.
type fakeAPI struct {
	srv      *httptest.Server
	calls    atomic.Int64
	lastPath string
	lastBody map[string]any
	status   int
}

func newFakeAPI(t *testing.T, status int, response string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{status: status}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.lastPath = r.Method + " " + r.URL.Path
		if r.Body != nil {
			body := map[string]any{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.lastBody = body
		}
		w.WriteHeader(f.status)
		io.WriteString(w, response)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) client() *api.Client {
	return api.New(f.srv.URL, "user@example.com", f.srv.Client(), testLogger())
}

func TestDispatchCreateTodoCoercesActivityGroupID(t *testing.T) {
	f := newFakeAPI(t, http.StatusCreated,
		`{"id":1,"activity_group_id":7,"title":"Buy milk","priority":"normal","is_active":1}`)
	d := NewTodoDispatcher(f.client(), testLogger())

	out := d.Dispatch(context.Background(), Payload{
		FieldSubAction:       "create",
		FieldActivityGroupID: "7",
		FieldTitle:           "Buy milk",
		FieldPriority:        "normal",
	})

	assert.Equal(t, Outcome{SubAction: ActionCreate, Success: true}, out)
	assert.Equal(t, int64(1), f.calls.Load(), "exactly one mutation per dispatch")
	assert.Equal(t, "POST /todo-items", f.lastPath)
	// The string field must reach the wire as a number.
	assert.Equal(t, float64(7), f.lastBody["activity_group_id"])
	assert.Equal(t, "Buy milk", f.lastBody["title"])
	assert.Equal(t, "normal", f.lastBody["priority"])
}

func TestDispatchCheckCarriesToggledState(t *testing.T) {
	f := newFakeAPI(t, http.StatusOK,
		`{"id":3,"activity_group_id":7,"title":"Susu","priority":"high","is_active":0}`)
	d := NewTodoDispatcher(f.client(), testLogger())

	// Todo 3 is currently open (is_active=1); the caller computed the
	// toggled value before building the payload.
	out := d.Dispatch(context.Background(), Payload{
		FieldSubAction: "check",
		FieldID:        "3",
		FieldPriority:  "high",
		FieldIsActive:  "0",
	})

	assert.Equal(t, Outcome{SubAction: ActionCheck, Success: true}, out)
	assert.Equal(t, "PATCH /todo-items/3", f.lastPath)
	assert.Equal(t, float64(0), f.lastBody["is_active"])
	assert.Equal(t, "high", f.lastBody["priority"], "priority is re-sent unchanged")
}

func TestDispatchUpdateTodo(t *testing.T) {
	f := newFakeAPI(t, http.StatusOK,
		`{"id":4,"activity_group_id":7,"title":"Laundry","priority":"low","is_active":1}`)
	d := NewTodoDispatcher(f.client(), testLogger())

	out := d.Dispatch(context.Background(), Payload{
		FieldSubAction: "update",
		FieldID:        "4",
		FieldTitle:     "Laundry",
		FieldPriority:  "low",
		FieldIsActive:  "1",
	})

	assert.Equal(t, Outcome{SubAction: ActionUpdate, Success: true}, out)
	assert.Equal(t, "PATCH /todo-items/4", f.lastPath)
	assert.Equal(t, "Laundry", f.lastBody["title"])
}

func TestDispatchDeleteAgainst500FailsWithoutThrowing(t *testing.T) {
	f := newFakeAPI(t, http.StatusInternalServerError, "")
	d := NewActivityDispatcher(f.client(), testLogger())

	var out Outcome
	require.NotPanics(t, func() {
		out = d.Dispatch(context.Background(), Payload{
			FieldSubAction: "delete",
			FieldID:        "9",
		})
	})

	assert.Equal(t, Outcome{SubAction: ActionDelete, Success: false}, out)
	assert.Equal(t, int64(1), f.calls.Load())
}

func TestDispatchSwallowsNetworkRejection(t *testing.T) {
	f := newFakeAPI(t, http.StatusOK, "{}")
	f.srv.Close() // connections now refused
	d := NewTodoDispatcher(f.client(), testLogger())

	var out Outcome
	require.NotPanics(t, func() {
		out = d.Dispatch(context.Background(), Payload{
			FieldSubAction: "delete",
			FieldID:        "3",
		})
	})
	assert.False(t, out.Success)
	assert.Equal(t, ActionDelete, out.SubAction)
}

func TestDispatchUnknownTagFailsBeforeAnyCall(t *testing.T) {
	f := newFakeAPI(t, http.StatusOK, "{}")
	d := NewTodoDispatcher(f.client(), testLogger())

	out := d.Dispatch(context.Background(), Payload{FieldSubAction: "destroy", FieldID: "3"})
	assert.Equal(t, Outcome{SubAction: SubAction("destroy"), Success: false}, out)
	assert.Equal(t, int64(0), f.calls.Load(), "no network call for unknown tags")
}

func TestDispatchRejectsInvalidPayloadBeforeAnyCall(t *testing.T) {
	f := newFakeAPI(t, http.StatusCreated, "{}")
	d := NewTodoDispatcher(f.client(), testLogger())

	cases := []struct {
		name    string
		payload Payload
	}{
		{"empty title", Payload{
			FieldSubAction: "create", FieldActivityGroupID: "7", FieldTitle: "", FieldPriority: "normal",
		}},
		{"bad priority", Payload{
			FieldSubAction: "create", FieldActivityGroupID: "7", FieldTitle: "x", FieldPriority: "urgent",
		}},
		{"non-numeric id", Payload{
			FieldSubAction: "delete", FieldID: "abc",
		}},
		{"missing is_active on check", Payload{
			FieldSubAction: "check", FieldID: "3", FieldPriority: "normal",
		}},
		{"out-of-domain is_active", Payload{
			FieldSubAction: "update", FieldID: "3", FieldTitle: "x", FieldPriority: "normal", FieldIsActive: "2",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := f.calls.Load()
			out := d.Dispatch(context.Background(), tc.payload)
			assert.False(t, out.Success)
			assert.Equal(t, before, f.calls.Load(), "invalid payloads never reach the network")
		})
	}
}

func TestActivityDispatcherCreateDefaultsTitle(t *testing.T) {
	f := newFakeAPI(t, http.StatusCreated,
		`{"id":11,"title":"New Activity","created_at":"2022-01-05T08:00:00.000Z"}`)
	d := NewActivityDispatcher(f.client(), testLogger())

	out := d.Dispatch(context.Background(), Payload{FieldSubAction: "create"})
	assert.True(t, out.Success)
	assert.Equal(t, "POST /activity-groups", f.lastPath)
	assert.Equal(t, "New Activity", f.lastBody["title"])
	assert.Equal(t, "user@example.com", f.lastBody["email"])
}

func TestDispatchRenameActivity(t *testing.T) {
	f := newFakeAPI(t, http.StatusOK,
		`{"id":7,"title":"Renamed","created_at":"2022-01-05T08:00:00.000Z"}`)
	d := NewActivityDispatcher(f.client(), testLogger())

	out := d.Dispatch(context.Background(), Payload{
		FieldSubAction: "rename-activity",
		FieldID:        "7",
		FieldTitle:     "Renamed",
	})

	assert.Equal(t, Outcome{SubAction: ActionRenameActivity, Success: true}, out)
	assert.Equal(t, "PATCH /activity-groups/7", f.lastPath)
	assert.Equal(t, "Renamed", f.lastBody["title"])
}
