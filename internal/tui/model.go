package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

// appModel is the root model. It owns the view stack and the status bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	flash     flashMsg
	quitting  bool
}

func newAppModel(state *SharedState) appModel {
	return appModel{
		state:     state,
		viewStack: []View{newPlansView(state)},
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.flash = flashMsg{}
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.pop()
		return m, nil

	case formDoneMsg:
		m.pop()
		return m, msg.next

	case flashMsg:
		m.flash = msg
		return m, nil

	case changedMsg:
		m.flash = flashMsg{text: msg.text}
		return m, refresh
	}

	return m.broadcast(msg)
}

// broadcast delivers msg to every view on the stack. Load results reach
// views that are covered by another view.
func (m appModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// forward delivers msg to the top view only.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := m.activeView()
	if v == nil {
		return m, nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms own every key, including q and esc.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		return m.forward(msg)
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		m.flash = flashMsg{}
		m.pop()
		return m, nil
	}
	return m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	out := strings.Join(sections, "\n")
	// Pad to the terminal height so the alt-screen renderer does not leave
	// stale lines behind.
	if m.state.Height > 0 {
		if lines := strings.Count(out, "\n") + 1; lines < m.state.Height {
			out += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return out
}

func (m *appModel) renderHeader() string {
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := formatter.StylePurple.Render("dayplan")
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
	}
	return header + "\n" + formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) renderStatusBar() string {
	var line string
	switch {
	case m.flash.isErr:
		line = formatter.StyleRed.Render("✖ " + m.flash.text)
	case m.flash.text != "":
		line = formatter.StyleGreen.Render(m.flash.text)
	default:
		var hints []string
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
		line = strings.Join(hints, "  ")
	}
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20))) + "\n" + line
}
