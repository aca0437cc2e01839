package model

import "time"

// Priority is the urgency level of a todo. The string values are the
// wire format the todo-items API expects; keep them in sync with the
// server's enum.
type Priority string

const (
	PriorityVeryHigh Priority = "very-high"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityLow      Priority = "low"
	PriorityVeryLow  Priority = "very-low"
)

// Priorities lists all levels, most urgent first. The order is used by
// selector widgets and help text.
func Priorities() []Priority {
	return []Priority{
		PriorityVeryHigh,
		PriorityHigh,
		PriorityNormal,
		PriorityLow,
		PriorityVeryLow,
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityVeryHigh, PriorityHigh, PriorityNormal, PriorityLow, PriorityVeryLow:
		return true
	}
	return false
}

// Display returns the human-readable label ("Very High" etc.).
func (p Priority) Display() string {
	switch p {
	case PriorityVeryHigh:
		return "Very High"
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Normal"
	case PriorityLow:
		return "Low"
	case PriorityVeryLow:
		return "Very Low"
	}
	return string(p)
}

// Color returns the hex color associated with the level, used for the
// colored dot next to each todo.
func (p Priority) Color() string {
	switch p {
	case PriorityVeryHigh:
		return "#ED4C5C"
	case PriorityHigh:
		return "#F8A541"
	case PriorityNormal:
		return "#00A790"
	case PriorityLow:
		return "#428BC1"
	case PriorityVeryLow:
		return "#8942C1"
	}
	return "#FFFFFF"
}

// ActiveStatus is the done/not-done state of a todo. The wire format is
// an inverted-looking integer: is_active=1 means the todo is still
// open, is_active=0 means it is done. Keep the mapping in one place so
// the inversion cannot leak into comparisons.
type ActiveStatus int

const (
	StatusDone    ActiveStatus = 0
	StatusNotDone ActiveStatus = 1
)

func (s ActiveStatus) Valid() bool { return s == StatusDone || s == StatusNotDone }

func (s ActiveStatus) Done() bool { return s == StatusDone }

// Toggle returns the flipped state. Callers compute the next state
// before building a check payload; the dispatcher never toggles.
func (s ActiveStatus) Toggle() ActiveStatus {
	if s == StatusNotDone {
		return StatusDone
	}
	return StatusNotDone
}

// Activity is a named container for todos, owned by the configured
// account email. IDs are assigned server-side.
type Activity struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Todo is a single task inside one activity. A todo never moves to
// another activity after creation.
type Todo struct {
	ID              int          `json:"id"`
	ActivityGroupID int          `json:"activity_group_id"`
	Title           string       `json:"title"`
	Priority        Priority     `json:"priority"`
	IsActive        ActiveStatus `json:"is_active"`
}
