// Package tui is the interactive UI: an activities screen and a detail
// screen per activity. All mutations flow through the action
// dispatcher; screens react to its outcome and re-fetch from the server
// after every successful mutation.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"tuntas/internal/action"
	"tuntas/internal/api"
	"tuntas/internal/model"
)

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(client *api.Client, logger *log.Logger) error {
	p := tea.NewProgram(newAppModel(client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Messages shared by both screens.
type (
	activitiesLoadedMsg struct {
		activities []model.Activity
		err        error
	}
	detailLoadedMsg struct {
		detail *api.ActivityDetail
		err    error
	}
	// outcomeMsg delivers a dispatch result back into the event loop.
	outcomeMsg action.Outcome

	openDetailMsg struct{ id int }
	backMsg       struct{}
)

// dispatchCmd runs one dispatch off the UI goroutine. No timeout and
// no cancellation: once sent, a mutation settles whenever the server
// answers.
func dispatchCmd(d *action.Dispatcher, p action.Payload) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(d.Dispatch(context.Background(), p))
	}
}

type screen int

const (
	screenActivities screen = iota
	screenDetail
)

type appModel struct {
	screen screen
	width  int
	height int

	activities activitiesModel
	detail     detailModel
}

func newAppModel(client *api.Client, logger *log.Logger) appModel {
	return appModel{
		activities: newActivitiesModel(client, logger),
		detail:     newDetailModel(client, logger),
	}
}

func (m appModel) Init() tea.Cmd { return m.activities.load() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.activities.setSize(msg.Width-4, msg.Height-4)
		m.detail.setSize(msg.Width-4, msg.Height-4)
		return m, nil

	case openDetailMsg:
		m.screen = screenDetail
		m.detail.open(msg.id)
		return m, m.detail.load()

	case backMsg:
		m.screen = screenActivities
		// The detail screen may have mutated; the list re-fetches
		// wholesale on navigation.
		return m, m.activities.load()
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenDetail:
		m.detail, cmd = m.detail.update(msg)
	default:
		m.activities, cmd = m.activities.update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	var content string
	switch m.screen {
	case screenDetail:
		content = m.detail.view()
	default:
		content = m.activities.view()
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// dialogBar renders a bottom dialog: a titled rounded box under the
// list, in the style of the inline add bar.
func dialogBar(title, body string) string {
	bar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return bar.Render(title + "\n" + body)
}

func infoBar(text string) string {
	bar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1)
	return bar.Render(text)
}
