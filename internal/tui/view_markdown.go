package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

type markdownLoadedMsg struct {
	view *markdownView
	text string
	err  error
}

// markdownView renders agent output in a scrollable viewport. The content
// is produced by load when the view is pushed.
type markdownView struct {
	state    *SharedState
	titleStr string
	loadMsg  string
	load     func(ctx context.Context) (string, error)

	loading  bool
	text     string
	err      error
	viewport viewport.Model
}

func newMarkdownView(state *SharedState, title, loading string, load func(ctx context.Context) (string, error)) *markdownView {
	return &markdownView{
		state:    state,
		titleStr: title,
		loadMsg:  loading,
		load:     load,
		loading:  true,
		viewport: viewport.New(state.ContentWidth(), state.ContentHeight()),
	}
}

func (v *markdownView) ID() ViewID    { return ViewMarkdown }
func (v *markdownView) Title() string { return v.titleStr }

func (v *markdownView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}

func (v *markdownView) Init() tea.Cmd {
	ctx, load := v.state.Ctx, v.load
	return func() tea.Msg {
		text, err := load(ctx)
		return markdownLoadedMsg{view: v, text: text, err: err}
	}
}

func (v *markdownView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case markdownLoadedMsg:
		if msg.view != v {
			return v, nil
		}
		v.loading = false
		v.text, v.err = msg.text, msg.err
		v.render()
		return v, nil

	case tea.WindowSizeMsg:
		v.viewport.Width = v.state.ContentWidth()
		v.viewport.Height = v.state.ContentHeight()
		v.render()
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *markdownView) render() {
	if v.loading || v.err != nil {
		return
	}
	v.viewport.SetContent(formatter.RenderMarkdown(v.text, v.state.ContentWidth()-4))
}

func (v *markdownView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim(v.loadMsg)
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	return v.viewport.View()
}

func recommendView(state *SharedState, planID string) *markdownView {
	return newMarkdownView(state, "Today", "Asking the agent what to work on today...", func(ctx context.Context) (string, error) {
		return state.Planner.RecommendToday(ctx, api.RecommendRequest{PlanID: planID})
	})
}

func guidanceView(state *SharedState, t api.Task) *markdownView {
	return newMarkdownView(state, "Guidance", "Asking the agent how to approach "+t.Title+"...", func(ctx context.Context) (string, error) {
		return state.Planner.TaskGuidance(ctx, api.GuidanceRequest{TaskID: t.ID})
	})
}

func generatedStandupView(state *SharedState) *markdownView {
	return newMarkdownView(state, "Standup", "Writing today's standup from yesterday's work logs...", func(ctx context.Context) (string, error) {
		st, err := state.Planner.GenerateStandup(ctx, state.Today())
		return st.Content, err
	})
}

// interactiveStandup asks the three standup questions, then shows the
// generated standup.
func interactiveStandup(state *SharedState) tea.Cmd {
	in := &StandupInput{}
	return pushView(newFormView("Standup", StandupForm(in), func() tea.Cmd {
		return pushView(newMarkdownView(state, "Standup", "Writing your standup...", func(ctx context.Context) (string, error) {
			st, err := state.Planner.GenerateInteractiveStandup(ctx, api.InteractiveStandupRequest{
				YesterdayWork: in.Yesterday,
				TodayForecast: in.Today,
				Blockers:      in.BlockersOrNone(),
				Date:          state.Today(),
			})
			return st.Content, err
		}))
	}))
}
