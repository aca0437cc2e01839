package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tuntas/internal/action"
	"tuntas/internal/api"
	"tuntas/internal/model"
	"tuntas/internal/ui"
)

// activityItem adapts an Activity to bubbles/list.Item.
type activityItem struct {
	activity model.Activity
}

func (i activityItem) Title() string       { return i.activity.Title }
func (i activityItem) Description() string { return "" }
func (i activityItem) FilterValue() string { return i.activity.Title }

// Single-line rendering, selected row marked with "> ".
type activityDelegate struct{}

func (d activityDelegate) Height() int                               { return 1 }
func (d activityDelegate) Spacing() int                              { return 0 }
func (d activityDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d activityDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(activityItem)
	line := fmt.Sprintf("%s  %s",
		it.activity.Title,
		ui.MutedStyle.Render(it.activity.CreatedAt.Format("2006-01-02")))
	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type activitiesModel struct {
	client     *api.Client
	log        *log.Logger
	dispatcher *action.Dispatcher

	list          list.Model
	width, height int

	// Inline rename (enter submits, esc cancels).
	renaming bool
	renameID int
	ti       textinput.Model

	// Delete confirmation dialog.
	confirming   bool
	confirmID    int
	confirmTitle string

	// Info banner shown after a successful delete.
	infoOpen bool
	infoText string

	submitting bool
	loadErr    string
}

func newActivitiesModel(client *api.Client, logger *log.Logger) activitiesModel {
	l := list.New(nil, activityDelegate{}, 0, 0)
	l.Title = ui.TitleStyle.Render("Activities")
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("activity", "activities")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	renameBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	openBind := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	extra := func() []key.Binding { return []key.Binding{openBind, addBind, renameBind, deleteBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return activitiesModel{
		client:     client,
		log:        logger,
		dispatcher: action.NewActivityDispatcher(client, logger),
		list:       l,
		ti:         ti,
	}
}

func (m *activitiesModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m activitiesModel) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		activities, err := client.ListActivities(context.Background())
		return activitiesLoadedMsg{activities: activities, err: err}
	}
}

func (m activitiesModel) selected() (model.Activity, bool) {
	it, ok := m.list.SelectedItem().(activityItem)
	if !ok {
		return model.Activity{}, false
	}
	return it.activity, true
}

func (m activitiesModel) update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		if msg.err != nil {
			m.loadErr = "failed to load activities"
			return m, nil
		}
		m.loadErr = ""
		items := make([]list.Item, 0, len(msg.activities))
		for _, a := range msg.activities {
			items = append(items, activityItem{activity: a})
		}
		m.list.SetItems(items)
		return m, nil

	case outcomeMsg:
		m.submitting = false
		r := reactTo(action.Outcome(msg))
		if r.openInfo {
			m.infoOpen = true
			m.infoText = "Activity berhasil dihapus"
		}
		if r.refetch {
			return m, m.load()
		}
		return m, nil

	case tea.KeyMsg:
		// The info banner swallows the next key.
		if m.infoOpen {
			m.infoOpen = false
			return m, nil
		}

		if m.confirming {
			switch msg.String() {
			case "y", "enter":
				m.confirming = false
				m.submitting = true
				p := action.Payload{
					action.FieldSubAction: string(action.ActionDelete),
					action.FieldID:        strconv.Itoa(m.confirmID),
				}
				return m, dispatchCmd(m.dispatcher, p)
			case "n", "esc":
				m.confirming = false
			}
			return m, nil
		}

		if m.renaming {
			var cmd tea.Cmd
			switch msg.String() {
			case "enter":
				title := strings.TrimSpace(m.ti.Value())
				if title == "" {
					return m, nil
				}
				m.renaming = false
				m.ti.Blur()
				m.submitting = true
				p := action.Payload{
					action.FieldSubAction: string(action.ActionRenameActivity),
					action.FieldID:        strconv.Itoa(m.renameID),
					action.FieldTitle:     title,
				}
				return m, dispatchCmd(m.dispatcher, p)
			case "esc":
				m.renaming = false
				m.ti.Blur()
				return m, nil
			}
			m.ti, cmd = m.ti.Update(msg)
			return m, cmd
		}

		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "enter":
				if a, ok := m.selected(); ok {
					id := a.ID
					return m, func() tea.Msg { return openDetailMsg{id: id} }
				}
				return m, nil
			case "a":
				// One create per press; the trigger stays disabled
				// while a dispatch is in flight.
				if m.submitting {
					return m, nil
				}
				m.submitting = true
				p := action.Payload{action.FieldSubAction: string(action.ActionCreate)}
				return m, dispatchCmd(m.dispatcher, p)
			case "r":
				if a, ok := m.selected(); ok {
					m.renaming = true
					m.renameID = a.ID
					m.ti.SetValue(a.Title)
					m.ti.CursorEnd()
					m.ti.Placeholder = "Activity title..."
					m.ti.Focus()
				}
				return m, nil
			case "d":
				if a, ok := m.selected(); ok {
					m.confirming = true
					m.confirmID = a.ID
					m.confirmTitle = a.Title
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m activitiesModel) view() string {
	var b strings.Builder
	b.WriteString(m.list.View())

	if m.loadErr != "" {
		b.WriteString("\n" + ui.ErrorStyle.Render(m.loadErr))
	}
	if m.submitting {
		b.WriteString("\n" + ui.MutedStyle.Render("saving..."))
	}
	if m.renaming {
		b.WriteString("\n" + dialogBar("Rename activity", m.ti.View()))
	}
	if m.confirming {
		b.WriteString("\n" + dialogBar("Delete activity?",
			fmt.Sprintf("%q will be removed permanently  %s", m.confirmTitle, ui.MutedStyle.Render("y/n"))))
	}
	if m.infoOpen {
		b.WriteString("\n" + infoBar(m.infoText))
	}
	return b.String()
}
