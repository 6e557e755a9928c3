package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStandupService_Generate_UsesPreviousDayAndOpenTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Sprint 1")
	require.NoError(t, env.plans.Create(ctx, plan))
	active := testutil.NewTestTask(plan.ID, "Fix login", testutil.WithTaskStatus(domain.TaskInProgress), testutil.WithJira("PROJ-1", "", 3))
	done := testutil.NewTestTask(plan.ID, "Old work", testutil.WithTaskStatus(domain.TaskDone))
	require.NoError(t, env.tasks.Create(ctx, active))
	require.NoError(t, env.tasks.Create(ctx, done))

	require.NoError(t, env.logs.Create(ctx, testutil.NewTestWorkLog(active.ID, testutil.Day(2024, 1, 2), testutil.WithLogDescription("reproduced bug"))))
	require.NoError(t, env.logs.Create(ctx, testutil.NewTestWorkLog(active.ID, testutil.Day(2024, 1, 3), testutil.WithLogDescription("today, not yesterday"))))

	env.agent.standup = "**Yesterday:**\n- reproduced bug"
	svc := env.standupService()

	st, err := svc.Generate(ctx, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "**Yesterday:**\n- reproduced bug", st.Content)
	assert.Equal(t, "2024-01-03", st.Date.Format(domain.DateLayout))

	require.Len(t, env.agent.standups, 1)
	req := env.agent.standups[0]
	require.Len(t, req.YesterdayLogs, 1)
	assert.Equal(t, "reproduced bug", req.YesterdayLogs[0].Description)
	assert.Equal(t, "PROJ-1", req.YesterdayLogs[0].Ticket)
	require.Len(t, req.TodayTickets, 1)
	assert.Equal(t, "Fix login", req.TodayTickets[0].Summary)
	assert.Equal(t, "in_progress", req.TodayTickets[0].Status)
}

func TestStandupService_Generate_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t)
	svc := env.standupService()
	svc.now = fixedClock(time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC))
	env.agent.standup = "nothing much"

	st, err := svc.Generate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", st.Date.Format(domain.DateLayout))
}

func TestStandupService_RegenerateOverwrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.standupService()

	env.agent.standup = "first draft"
	_, err := svc.Generate(ctx, "2024-01-03")
	require.NoError(t, err)

	env.agent.standup = "second draft"
	_, err = svc.Generate(ctx, "2024-01-03")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "second draft", got.Content)

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM standups`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStandupService_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.standupService().Get(context.Background(), "2024-01-03")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = env.standupService().Get(context.Background(), "not-a-date")
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestStandupService_Interactive_BlankInputNeverCallsAgent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.standupService().GenerateInteractive(context.Background(), InteractiveInput{
		YesterdayWork: "",
		TodayForecast: "   ",
		Blockers:      "\n",
		Tasks:         []domain.TaskInput{{Title: "Fix login"}},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, env.agent.callCount())
}

func TestStandupService_Interactive_StoresUnderToday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.standupService()
	svc.now = fixedClock(time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC))
	env.agent.replies[llm.TaskStandup] = "**Yesterday:**\n- shipped importer"

	st, err := svc.GenerateInteractive(ctx, InteractiveInput{
		YesterdayWork: "shipped importer",
		Tasks:         []domain.TaskInput{{Title: "Review PR", Status: "in_progress"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09", st.Date.Format(domain.DateLayout))

	require.Len(t, env.agent.chats, 1)
	assert.Equal(t, llm.TierSmart, env.agent.chats[0].Tier)
	assert.Contains(t, env.agent.chats[0].Message, "Review PR")

	got, err := svc.Get(ctx, "2024-01-09")
	require.NoError(t, err)
	assert.Equal(t, "**Yesterday:**\n- shipped importer", got.Content)
}

func TestStandupService_Interactive_StoresUnderCallerDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.standupService()
	svc.now = fixedClock(time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC))
	env.agent.replies[llm.TaskStandup] = "**Today:** pairing"

	st, err := svc.GenerateInteractive(ctx, InteractiveInput{TodayForecast: "pairing", Date: "2024-01-08"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", st.Date.Format(domain.DateLayout))

	_, err = svc.Get(ctx, "2024-01-08")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "2024-01-09")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStandupService_Interactive_BadDateNeverCallsAgent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.standupService().GenerateInteractive(context.Background(), InteractiveInput{
		TodayForecast: "pairing",
		Date:          "09/01/2024",
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, env.agent.callCount())
}

func TestStandupService_AgentFailureStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	env.agent.err = llm.ErrTimeout
	_, err := env.standupService().Generate(context.Background(), "2024-01-03")
	assert.ErrorIs(t, err, llm.ErrTimeout)

	_, err = env.standupService().Get(context.Background(), "2024-01-03")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
