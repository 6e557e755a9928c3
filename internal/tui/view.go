package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type ViewID int

const (
	ViewPlans ViewID = iota
	ViewTasks
	ViewMarkdown
	ViewForm
)

// View is a screen on the navigation stack.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding
	Title() string
}

type pushViewMsg struct{ view View }

type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// flashMsg sets the one-line message in the status bar.
type flashMsg struct {
	text  string
	isErr bool
}

// changedMsg reports a successful mutation: it flashes text and refreshes
// the stack.
type changedMsg struct{ text string }

// formDoneMsg pops the form on top of the stack and runs next.
type formDoneMsg struct{ next tea.Cmd }

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}

func flashError(err error) tea.Msg {
	return flashMsg{text: err.Error(), isErr: true}
}

func refresh() tea.Msg { return refreshViewMsg{} }
