package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tuntas/internal/action"
	"tuntas/internal/api"
	"tuntas/internal/model"
	"tuntas/internal/ui"
)

// detailModel is the screen for one activity: its todos in the selected
// sort order, the add/edit form, the delete confirmation and the inline
// activity title editor.
type detailModel struct {
	client     *api.Client
	log        *log.Logger
	dispatcher *action.Dispatcher

	activityID    int
	detail        *api.ActivityDetail
	todos         []model.Todo
	cursor        int
	sortMode      model.SortMode
	width, height int

	form     todoForm
	formOpen bool

	confirming  bool
	confirmTodo model.Todo

	infoOpen bool
	infoText string

	editingTitle bool
	titleInput   textinput.Model

	submitting bool
	loadErr    string
}

func newDetailModel(client *api.Client, logger *log.Logger) detailModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	return detailModel{
		client:     client,
		log:        logger,
		dispatcher: action.NewTodoDispatcher(client, logger),
		sortMode:   model.SortLatest,
		form:       newTodoForm(),
		titleInput: ti,
	}
}

func (m *detailModel) setSize(w, h int) { m.width, m.height = w, h }

// open resets the screen for a freshly selected activity.
func (m *detailModel) open(id int) {
	m.activityID = id
	m.detail = nil
	m.todos = nil
	m.cursor = 0
	m.sortMode = model.SortLatest
	m.formOpen = false
	m.confirming = false
	m.infoOpen = false
	m.editingTitle = false
	m.submitting = false
	m.loadErr = ""
}

func (m detailModel) load() tea.Cmd {
	client := m.client
	id := m.activityID
	return func() tea.Msg {
		detail, err := client.GetActivity(context.Background(), id)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

// resort rebuilds the displayed order from the loaded todos.
func (m *detailModel) resort() {
	if m.detail == nil {
		return
	}
	m.todos = append(m.todos[:0], m.detail.TodoItems...)
	model.SortTodos(m.todos, m.sortMode)
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m detailModel) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			m.loadErr = "failed to load activity"
			return m, nil
		}
		m.loadErr = ""
		m.detail = msg.detail
		m.resort()
		return m, nil

	case outcomeMsg:
		m.submitting = false
		r := reactTo(action.Outcome(msg))
		if r.closeForm {
			m.formOpen = false
			m.form.close()
		}
		if r.openInfo {
			m.infoOpen = true
			m.infoText = "Todo berhasil dihapus"
		}
		if r.refetch {
			return m, m.load()
		}
		return m, nil

	case tea.KeyMsg:
		if m.infoOpen {
			m.infoOpen = false
			return m, nil
		}

		if m.formOpen {
			return m.updateForm(msg)
		}

		if m.editingTitle {
			return m.updateTitleEditor(msg)
		}

		if m.confirming {
			switch msg.String() {
			case "y", "enter":
				m.confirming = false
				m.submitting = true
				p := action.Payload{
					action.FieldSubAction: string(action.ActionDelete),
					action.FieldID:        strconv.Itoa(m.confirmTodo.ID),
				}
				return m, dispatchCmd(m.dispatcher, p)
			case "n", "esc":
				m.confirming = false
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.todos)-1 {
				m.cursor++
			}
		case "s":
			m.sortMode = m.sortMode.Next()
			m.resort()
		case "a":
			m.form.openCreate()
			m.formOpen = true
		case "e":
			if todo, ok := m.selected(); ok {
				m.form.openUpdate(todo)
				m.formOpen = true
			}
		case " ":
			// The toggled state is computed here, before the payload
			// is built; the dispatcher sends it as-is.
			if m.submitting {
				return m, nil
			}
			if todo, ok := m.selected(); ok {
				m.submitting = true
				p := action.Payload{
					action.FieldSubAction: string(action.ActionCheck),
					action.FieldID:        strconv.Itoa(todo.ID),
					action.FieldPriority:  string(todo.Priority),
					action.FieldIsActive:  strconv.Itoa(int(todo.IsActive.Toggle())),
				}
				return m, dispatchCmd(m.dispatcher, p)
			}
		case "d":
			if todo, ok := m.selected(); ok {
				m.confirming = true
				m.confirmTodo = todo
			}
		case "t":
			if m.detail != nil {
				m.editingTitle = true
				m.titleInput.SetValue(m.detail.Title)
				m.titleInput.CursorEnd()
				m.titleInput.Focus()
			}
		}
		return m, nil
	}

	return m, nil
}

func (m detailModel) updateForm(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.submitting {
			return m, nil
		}
		p, ok := m.form.payload(m.activityID)
		if !ok {
			return m, nil
		}
		m.submitting = true
		return m, dispatchCmd(m.dispatcher, p)
	case "esc":
		m.formOpen = false
		m.form.close()
		return m, nil
	case "tab", "right":
		m.form.cyclePriority(1)
		return m, nil
	case "shift+tab", "left":
		m.form.cyclePriority(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.form.ti, cmd = m.form.ti.Update(msg)
	return m, cmd
}

func (m detailModel) updateTitleEditor(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.titleInput.Value())
		m.editingTitle = false
		m.titleInput.Blur()
		if title == "" {
			return m, nil
		}
		m.submitting = true
		p := action.Payload{
			action.FieldSubAction: string(action.ActionRenameActivity),
			action.FieldID:        strconv.Itoa(m.activityID),
			action.FieldTitle:     title,
		}
		return m, dispatchCmd(m.dispatcher, p)
	case "esc":
		m.editingTitle = false
		m.titleInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m detailModel) view() string {
	var b strings.Builder

	title := "..."
	if m.detail != nil {
		title = m.detail.Title
	}
	if m.editingTitle {
		b.WriteString(m.titleInput.View() + "\n")
	} else {
		done := 0
		for _, t := range m.todos {
			if t.IsActive.Done() {
				done++
			}
		}
		b.WriteString(fmt.Sprintf("%s  %s %d  %s %d\n",
			ui.TitleStyle.Render(title),
			ui.SuccessStyle.Render("✔"), done,
			ui.PendingStyle.Render("•"), len(m.todos)-done))
	}
	b.WriteString(ui.MutedStyle.Render("sort: "+m.sortMode.Display()) + "\n\n")

	if m.loadErr != "" {
		b.WriteString(ui.ErrorStyle.Render(m.loadErr) + "\n")
	}
	if len(m.todos) == 0 && m.loadErr == "" {
		b.WriteString(ui.MutedStyle.Render("(no todos yet — press a to add one)") + "\n")
	}

	for i, t := range m.todos {
		box := ui.BoxUnchecked
		label := t.Title
		if t.IsActive.Done() {
			box = ui.SuccessStyle.Render(ui.BoxChecked)
			label = ui.DoneStyle.Render(label)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = ui.SelectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", prefix, box, ui.PriorityDot(t.Priority), label))
	}

	b.WriteString("\n" + ui.HelpStyle.Render("space check · a add · e edit · d delete · s sort · t title · esc back"))

	if m.submitting {
		b.WriteString("\n" + ui.MutedStyle.Render("saving..."))
	}
	if m.formOpen {
		b.WriteString("\n" + dialogBar(m.form.title(), m.form.view()))
	}
	if m.confirming {
		b.WriteString("\n" + dialogBar("Delete todo?",
			fmt.Sprintf("%q will be removed permanently  %s", m.confirmTodo.Title, ui.MutedStyle.Render("y/n"))))
	}
	if m.infoOpen {
		b.WriteString("\n" + infoBar(m.infoText))
	}
	return b.String()
}
