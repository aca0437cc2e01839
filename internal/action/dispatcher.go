package action

import (
	"context"

	"github.com/charmbracelet/log"

	"tuntas/internal/api"
)

// Outcome is the uniform result of a dispatch. Success is false for
// anything that went wrong: bad payload, rejected request, network
// failure. Consumers get no finer distinction than the boolean; the
// underlying error is only logged.
type Outcome struct {
	SubAction SubAction
	Success   bool
}

// Handler performs the remote mutation bound to one sub-action tag,
// including payload parsing for that tag.
type Handler func(ctx context.Context, p Payload) error

// Dispatcher routes a tagged payload to exactly one remote mutation.
// It never retries, never mutates local state ahead of confirmation,
// and never lets an error escape past the outcome.
type Dispatcher struct {
	bindings map[SubAction]Handler
	log      *log.Logger
}

// Dispatch resolves the payload's tag against the binding table and
// runs the bound mutation. Unknown tags and all failures degrade to
// success=false.
func (d *Dispatcher) Dispatch(ctx context.Context, p Payload) Outcome {
	tag := SubAction(p.Get(FieldSubAction))
	out := Outcome{SubAction: tag}

	h, ok := d.bindings[tag]
	if !ok {
		d.log.Error("unknown sub-action", "subAction", string(tag))
		return out
	}

	if err := h(ctx, p); err != nil {
		d.log.Error("dispatch failed", "subAction", string(tag), "err", err)
		return out
	}

	out.Success = true
	return out
}

// NewActivityDispatcher binds the tags used on the activities screen:
// create makes a new activity (empty titles get the server-visible
// default), delete removes one, rename-activity retitles one.
func NewActivityDispatcher(client *api.Client, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		log: logger,
		bindings: map[SubAction]Handler{
			ActionCreate: func(ctx context.Context, p Payload) error {
				title := p.Get(FieldTitle)
				if title == "" {
					title = "New Activity"
				}
				_, err := client.CreateActivity(ctx, title)
				return err
			},
			ActionDelete: func(ctx context.Context, p Payload) error {
				req, err := parseDelete(p)
				if err != nil {
					return err
				}
				return client.DeleteActivity(ctx, req.ID)
			},
			ActionRenameActivity: func(ctx context.Context, p Payload) error {
				req, err := parseRenameActivity(p)
				if err != nil {
					return err
				}
				return client.RenameActivity(ctx, req.ID, req.Title)
			},
		},
	}
}

// NewTodoDispatcher binds the tags used on the activity detail screen.
// delete targets a todo here; rename-activity still retitles the
// enclosing activity (the detail screen edits the title inline).
func NewTodoDispatcher(client *api.Client, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		log: logger,
		bindings: map[SubAction]Handler{
			ActionCreate: func(ctx context.Context, p Payload) error {
				req, err := parseCreate(p)
				if err != nil {
					return err
				}
				_, err = client.CreateTodo(ctx, api.CreateTodoParams{
					ActivityGroupID: req.ActivityGroupID,
					Title:           req.Title,
					Priority:        req.Priority,
				})
				return err
			},
			ActionUpdate: func(ctx context.Context, p Payload) error {
				req, err := parseUpdate(p)
				if err != nil {
					return err
				}
				_, err = client.UpdateTodo(ctx, req.ID, api.UpdateTodoParams{
					Title:    req.Title,
					Priority: req.Priority,
					IsActive: req.IsActive,
				})
				return err
			},
			ActionCheck: func(ctx context.Context, p Payload) error {
				req, err := parseCheck(p)
				if err != nil {
					return err
				}
				_, err = client.CheckTodo(ctx, req.ID, api.CheckTodoParams{
					Priority: req.Priority,
					IsActive: req.IsActive,
				})
				return err
			},
			ActionDelete: func(ctx context.Context, p Payload) error {
				req, err := parseDelete(p)
				if err != nil {
					return err
				}
				return client.DeleteTodo(ctx, req.ID)
			},
			ActionRenameActivity: func(ctx context.Context, p Payload) error {
				req, err := parseRenameActivity(p)
				if err != nil {
					return err
				}
				return client.RenameActivity(ctx, req.ID, req.Title)
			},
		},
	}
}
