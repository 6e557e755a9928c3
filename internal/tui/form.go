package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// HuhTheme styles huh forms with the dashboard palette. The cli package
// uses it for its standalone prompts too.
func HuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formView wraps a huh.Form as a View on the navigation stack.
type formView struct {
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newFormView(title string, form *huh.Form, done func() tea.Cmd) *formView {
	return &formView{form: form, titleStr: title, done: done}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return formDoneMsg{next: flash("Cancelled.")} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg { return formDoneMsg{next: tea.Batch(cmd, doneCmd)} }
	}
	return v, cmd
}

func (v *formView) View() string {
	return "\n" + v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(HuhTheme()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return domain.Required(field)
		}
		return nil
	}
}

func validDate(field string) func(string) error {
	return func(s string) error {
		_, err := domain.ParseDate(field, strings.TrimSpace(s))
		return err
	}
}

// PlanForm collects a new plan. The cli package reuses it for
// "plan create --interactive".
func PlanForm(req *PlanInput) *huh.Form {
	return themed(huh.NewGroup(
		huh.NewInput().Title("Plan name").Value(&req.Name).Validate(required("name")),
		huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&req.StartDate).Validate(validDate("startDate")),
		huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&req.EndDate).Validate(validDate("endDate")),
	))
}

// PlanInput is the mutable target of PlanForm.
type PlanInput struct {
	Name      string
	StartDate string
	EndDate   string
}

// StandupForm collects the three free-text answers of an interactive
// standup.
func StandupForm(in *StandupInput) *huh.Form {
	return themed(huh.NewGroup(
		huh.NewText().Title("What did you do yesterday?").Value(&in.Yesterday).Validate(required("yesterdayWork")),
		huh.NewText().Title("What will you do today?").Value(&in.Today).Validate(required("todayForecast")),
		huh.NewText().Title("Any blockers?").Placeholder("none").Value(&in.Blockers),
	))
}

type StandupInput struct {
	Yesterday string
	Today     string
	Blockers  string
}

// BlockersOrNone fills the blockers answer when it was left blank.
func (in StandupInput) BlockersOrNone() string {
	return domain.CoalesceStr(in.Blockers, "none")
}
