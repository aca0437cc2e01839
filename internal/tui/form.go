package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"tuntas/internal/action"
	"tuntas/internal/model"
	"tuntas/internal/ui"
)

type formMode int

const (
	formCreate formMode = iota
	formUpdate
)

// todoForm is the add/edit dialog: a title input plus a priority
// selector. For updates it remembers the todo's id and done state, so
// the unchanged is_active goes back out with the payload.
type todoForm struct {
	mode        formMode
	ti          textinput.Model
	priorityIdx int
	todoID      int
	isActive    model.ActiveStatus
	errMsg      string
}

func newTodoForm() todoForm {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	return todoForm{ti: ti}
}

func (f *todoForm) openCreate() {
	f.mode = formCreate
	f.ti.SetValue("")
	f.ti.Placeholder = "New todo title..."
	f.ti.Focus()
	f.priorityIdx = indexOfPriority(model.PriorityNormal)
	f.errMsg = ""
}

func (f *todoForm) openUpdate(todo model.Todo) {
	f.mode = formUpdate
	f.todoID = todo.ID
	f.isActive = todo.IsActive
	f.ti.SetValue(todo.Title)
	f.ti.CursorEnd()
	f.ti.Placeholder = "Todo title..."
	f.ti.Focus()
	f.priorityIdx = indexOfPriority(todo.Priority)
	f.errMsg = ""
}

func (f *todoForm) close() {
	f.ti.Blur()
	f.errMsg = ""
}

func (f *todoForm) cyclePriority(delta int) {
	n := len(model.Priorities())
	f.priorityIdx = (f.priorityIdx + delta + n) % n
}

func (f *todoForm) priority() model.Priority {
	return model.Priorities()[f.priorityIdx]
}

// payload builds the dispatch payload for the form's current state.
// Returns false when the title is empty; a non-empty title is enforced
// client-side since the server never validates it.
func (f *todoForm) payload(activityID int) (action.Payload, bool) {
	title := strings.TrimSpace(f.ti.Value())
	if title == "" {
		f.errMsg = "Title cannot be empty"
		return nil, false
	}
	if f.mode == formUpdate {
		return action.Payload{
			action.FieldSubAction: string(action.ActionUpdate),
			action.FieldID:        strconv.Itoa(f.todoID),
			action.FieldTitle:     title,
			action.FieldPriority:  string(f.priority()),
			action.FieldIsActive:  strconv.Itoa(int(f.isActive)),
		}, true
	}
	return action.Payload{
		action.FieldSubAction:       string(action.ActionCreate),
		action.FieldActivityGroupID: strconv.Itoa(activityID),
		action.FieldTitle:           title,
		action.FieldPriority:        string(f.priority()),
	}, true
}

func (f todoForm) title() string {
	t := "Add new todo"
	if f.mode == formUpdate {
		t = "Edit todo"
	}
	if f.errMsg != "" {
		t += "  " + ui.ErrorStyle.Render(f.errMsg)
	}
	return t
}

func (f todoForm) view() string {
	var sel []string
	for i, p := range model.Priorities() {
		label := ui.PriorityDot(p) + " " + p.Display()
		if i == f.priorityIdx {
			label = ui.SelectedStyle.Render(label)
		} else {
			label = ui.MutedStyle.Render(label)
		}
		sel = append(sel, label)
	}
	return f.ti.View() + "\n" +
		strings.Join(sel, "  ") + "  " +
		ui.HelpStyle.Render("tab priority · enter save · esc cancel")
}

func indexOfPriority(p model.Priority) int {
	for i, cand := range model.Priorities() {
		if cand == p {
			return i
		}
	}
	return 2 // normal
}
