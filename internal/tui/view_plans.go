package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
)

type plansLoadedMsg struct {
	plans []api.Plan
	err   error
}

// plansView lists every plan; enter opens its tasks.
type plansView struct {
	state   *SharedState
	plans   []api.Plan
	cursor  int
	loading bool
	err     error
}

func newPlansView(state *SharedState) *plansView {
	return &plansView{state: state, loading: true}
}

func (v *plansView) ID() ViewID    { return ViewPlans }
func (v *plansView) Title() string { return "Plans" }

func (v *plansView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new plan")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "standup")),
		key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "interactive standup")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *plansView) Init() tea.Cmd {
	return v.load()
}

func (v *plansView) load() tea.Cmd {
	st := v.state
	return func() tea.Msg {
		plans, err := st.Planner.ListPlans(st.Ctx)
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (v *plansView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.plans = msg.plans
			v.cursor = min(v.cursor, max(len(v.plans)-1, 0))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *plansView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.plans)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.plans) {
			p := v.plans[v.cursor]
			v.state.ActivePlan = &p
			return v, pushView(newTasksView(v.state))
		}
	case "n":
		return v, v.newPlan()
	case "s":
		return v, pushView(generatedStandupView(v.state))
	case "S":
		return v, interactiveStandup(v.state)
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *plansView) newPlan() tea.Cmd {
	in := &PlanInput{}
	in.StartDate = v.state.Today()
	in.EndDate = v.state.Now().AddDate(0, 0, 13).Format(domain.DateLayout)

	st := v.state
	return pushView(newFormView("New plan", PlanForm(in), func() tea.Cmd {
		return func() tea.Msg {
			p, err := st.Planner.CreatePlan(st.Ctx, api.CreatePlanRequest{
				Name:      strings.TrimSpace(in.Name),
				StartDate: strings.TrimSpace(in.StartDate),
				EndDate:   strings.TrimSpace(in.EndDate),
			})
			if err != nil {
				return flashError(err)
			}
			return changedMsg{text: "Created plan " + p.Name}
		}
	}))
}

func (v *plansView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading plans...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(v.plans) == 0 {
		b.WriteString("  " + formatter.Dim("No plans yet. Press n to create one.") + "\n")
		return b.String()
	}

	now := v.state.Now()
	for i, p := range v.plans {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			cursor,
			nameStyle.Render(padRight(p.Name, 28)),
			formatter.PlanStatusPill(p.Status),
			formatter.Dim(formatter.HumanDate(p.StartDate, now)+" → "+formatter.HumanDate(p.EndDate, now)),
		)
	}
	return b.String()
}

func padRight(s string, width int) string {
	s = domain.Truncate(s, width, "")
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
