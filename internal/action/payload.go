// Package action turns submitted form payloads into remote mutations.
// Every payload arrives as untyped strings; parsing and validation
// happen here, before anything touches the network.
package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tuntas/internal/model"
)

// SubAction is the discriminator tag on a submitted payload.
type SubAction string

const (
	ActionCreate         SubAction = "create"
	ActionUpdate         SubAction = "update"
	ActionDelete         SubAction = "delete"
	ActionCheck          SubAction = "check"
	ActionRenameActivity SubAction = "rename-activity"
)

// Payload field names, matching the serialized form fields.
const (
	FieldSubAction       = "subAction"
	FieldID              = "id"
	FieldActivityGroupID = "activity_group_id"
	FieldTitle           = "title"
	FieldPriority        = "priority"
	FieldIsActive        = "is_active"
)

// Payload is a flat bag of serialized form fields. Numeric fields
// arrive as strings and are coerced during parsing.
type Payload map[string]string

func (p Payload) Get(key string) string { return strings.TrimSpace(p[key]) }

var validate = validator.New()

// Typed requests, one per tag. The validate tags are the schema; a
// payload that does not satisfy them is rejected without a network
// call.

type createRequest struct {
	ActivityGroupID int            `validate:"required,min=1"`
	Title           string         `validate:"required"`
	Priority        model.Priority `validate:"required,oneof=very-high high normal low very-low"`
}

type updateRequest struct {
	ID       int                `validate:"required,min=1"`
	Title    string             `validate:"required"`
	Priority model.Priority     `validate:"required,oneof=very-high high normal low very-low"`
	IsActive model.ActiveStatus `validate:"oneof=0 1"`
}

type deleteRequest struct {
	ID int `validate:"required,min=1"`
}

type checkRequest struct {
	ID       int                `validate:"required,min=1"`
	Priority model.Priority     `validate:"required,oneof=very-high high normal low very-low"`
	IsActive model.ActiveStatus `validate:"oneof=0 1"`
}

type renameActivityRequest struct {
	ID    int    `validate:"required,min=1"`
	Title string `validate:"required"`
}

func parseIntField(p Payload, key string) (int, error) {
	raw := p.Get(key)
	if raw == "" {
		return 0, nil // caught by the required validation
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: not a number: %q", key, raw)
	}
	return n, nil
}

// parseActiveField is stricter than parseIntField: an absent is_active
// cannot fall through to 0, because 0 is a meaningful value (done).
func parseActiveField(p Payload) (model.ActiveStatus, error) {
	raw := p.Get(FieldIsActive)
	if raw == "" {
		return 0, fmt.Errorf("field %s: missing", FieldIsActive)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: not a number: %q", FieldIsActive, raw)
	}
	return model.ActiveStatus(n), nil
}

func parseCreate(p Payload) (createRequest, error) {
	var req createRequest
	gid, err := parseIntField(p, FieldActivityGroupID)
	if err != nil {
		return req, err
	}
	req.ActivityGroupID = gid
	req.Title = p.Get(FieldTitle)
	req.Priority = model.Priority(p.Get(FieldPriority))
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("create payload: %w", err)
	}
	return req, nil
}

func parseUpdate(p Payload) (updateRequest, error) {
	var req updateRequest
	id, err := parseIntField(p, FieldID)
	if err != nil {
		return req, err
	}
	active, err := parseActiveField(p)
	if err != nil {
		return req, err
	}
	req.ID = id
	req.Title = p.Get(FieldTitle)
	req.Priority = model.Priority(p.Get(FieldPriority))
	req.IsActive = active
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("update payload: %w", err)
	}
	return req, nil
}

func parseDelete(p Payload) (deleteRequest, error) {
	var req deleteRequest
	id, err := parseIntField(p, FieldID)
	if err != nil {
		return req, err
	}
	req.ID = id
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("delete payload: %w", err)
	}
	return req, nil
}

func parseCheck(p Payload) (checkRequest, error) {
	var req checkRequest
	id, err := parseIntField(p, FieldID)
	if err != nil {
		return req, err
	}
	active, err := parseActiveField(p)
	if err != nil {
		return req, err
	}
	req.ID = id
	req.Priority = model.Priority(p.Get(FieldPriority))
	req.IsActive = active
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("check payload: %w", err)
	}
	return req, nil
}

func parseRenameActivity(p Payload) (renameActivityRequest, error) {
	var req renameActivityRequest
	id, err := parseIntField(p, FieldID)
	if err != nil {
		return req, err
	}
	req.ID = id
	req.Title = p.Get(FieldTitle)
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("rename payload: %w", err)
	}
	return req, nil
}
