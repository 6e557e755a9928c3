package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
)

type tasksLoadedMsg struct {
	planID string
	tasks  []api.Task
	err    error
}

// tasksView shows the tasks of the active plan.
type tasksView struct {
	state   *SharedState
	planID  string
	tasks   []api.Task
	cursor  int
	loading bool
	err     error
}

func newTasksView(state *SharedState) *tasksView {
	v := &tasksView{state: state, loading: true}
	if state.ActivePlan != nil {
		v.planID = state.ActivePlan.ID
	}
	return v
}

func (v *tasksView) ID() ViewID { return ViewTasks }

func (v *tasksView) Title() string {
	if v.state.ActivePlan != nil {
		return v.state.ActivePlan.Name
	}
	return "Tasks"
}

func (v *tasksView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "next status")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blocked")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "guidance")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plan today")),
	}
}

func (v *tasksView) Init() tea.Cmd {
	return v.load()
}

func (v *tasksView) load() tea.Cmd {
	st, planID := v.state, v.planID
	return func() tea.Msg {
		tasks, err := st.Planner.ListTasks(st.Ctx, planID)
		return tasksLoadedMsg{planID: planID, tasks: tasks, err: err}
	}
}

func (v *tasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.planID != v.planID {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.tasks = msg.tasks
			v.cursor = min(v.cursor, max(len(v.tasks)-1, 0))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *tasksView) selected() (api.Task, bool) {
	if v.cursor < len(v.tasks) {
		return v.tasks[v.cursor], true
	}
	return api.Task{}, false
}

func (v *tasksView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
	case " ", "x":
		if t, ok := v.selected(); ok {
			return v, v.setStatus(t, nextStatus(domain.TaskStatus(t.Status)))
		}
	case "b":
		if t, ok := v.selected(); ok {
			next := domain.TaskBlocked
			if t.Status == string(domain.TaskBlocked) {
				next = domain.TaskTodo
			}
			return v, v.setStatus(t, next)
		}
	case "a":
		return v, v.addTask()
	case "i":
		return v, v.importTask()
	case "g":
		if t, ok := v.selected(); ok {
			return v, pushView(guidanceView(v.state, t))
		}
	case "p":
		return v, pushView(recommendView(v.state, v.planID))
	case "r":
		return v, v.load()
	}
	return v, nil
}

// nextStatus cycles todo → in_progress → done → todo. Blocked tasks go
// back to todo.
func nextStatus(s domain.TaskStatus) domain.TaskStatus {
	switch s {
	case domain.TaskTodo:
		return domain.TaskInProgress
	case domain.TaskInProgress:
		return domain.TaskDone
	default:
		return domain.TaskTodo
	}
}

func (v *tasksView) setStatus(t api.Task, status domain.TaskStatus) tea.Cmd {
	st := v.state
	s := string(status)
	return func() tea.Msg {
		if _, err := st.Planner.UpdateTask(st.Ctx, t.ID, api.UpdateTaskRequest{Status: &s}); err != nil {
			return flashError(err)
		}
		return changedMsg{text: fmt.Sprintf("%s → %s", domain.Truncate(t.Title, 40, "…"), s)}
	}
}

func (v *tasksView) addTask() tea.Cmd {
	var description string
	form := themed(huh.NewGroup(
		huh.NewText().
			Title("Describe the task").
			Description("The agent proposes a title and priority.").
			Value(&description).
			Validate(required("description")),
	))
	st, planID := v.state, v.planID
	return pushView(newFormView("Add task", form, func() tea.Cmd {
		return func() tea.Msg {
			t, err := st.Planner.AnalyzeTask(st.Ctx, planID, strings.TrimSpace(description))
			if err != nil {
				return flashError(err)
			}
			return changedMsg{text: "Added " + t.Title}
		}
	}))
}

func (v *tasksView) importTask() tea.Cmd {
	var ticketKey string
	form := themed(huh.NewGroup(
		huh.NewInput().
			Title("Jira ticket key").
			Placeholder("PROJ-123").
			Value(&ticketKey).
			Validate(required("ticketKey")),
	))
	st, planID := v.state, v.planID
	return pushView(newFormView("Import ticket", form, func() tea.Cmd {
		return func() tea.Msg {
			t, err := st.Planner.ImportTask(st.Ctx, planID, strings.TrimSpace(ticketKey))
			if err != nil {
				return flashError(err)
			}
			return changedMsg{text: "Imported " + t.JiraKey}
		}
	}))
}

func (v *tasksView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tasks...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(v.tasks) == 0 {
		b.WriteString("  " + formatter.Dim("No tasks. Press a to add one or i to import a ticket.") + "\n")
		return b.String()
	}

	for i, t := range v.tasks {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		ref := padRight("", 10)
		if t.JiraKey != "" {
			ref = formatter.StylePurple.Render(padRight(t.JiraKey, 10))
		}
		fmt.Fprintf(&b, "%s%s %s  %s  %s\n",
			cursor,
			ref,
			titleStyle.Render(padRight(t.Title, 40)),
			formatter.PriorityBadge(t.Priority),
			formatter.TaskStatusPill(t.Status),
		)
	}

	if t, ok := v.selected(); ok && t.Description != "" {
		b.WriteString("\n  " + formatter.Dim(domain.Truncate(strings.ReplaceAll(t.Description, "\n", " "), max(v.state.ContentWidth()-6, 20), "…")) + "\n")
	}
	return b.String()
}
