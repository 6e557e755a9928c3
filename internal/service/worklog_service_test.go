package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
)

func TestWorkLogService_LogAgainstTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	plan := seedPlanWithTasks(t, env, "Fix login")
	tasks, _ := env.tasks.ListByPlan(ctx, plan.ID)

	w, err := env.workLogService().Log(ctx, LogWorkInput{
		Date:            "2024-01-02",
		DurationMinutes: 90,
		Description:     "reproduced on Safari",
		TaskID:          tasks[0].ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Nil(t, w.TicketID)

	logs, err := env.workLogService().ListByDate(ctx, "2024-01-02")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 90, logs[0].DurationMinutes)

	none, err := env.workLogService().ListByDate(ctx, "2024-01-03")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWorkLogService_LogAgainstTicket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ticket := testutil.NewTestTicket("PROJ-1", "Legacy ticket")
	require.NoError(t, env.tickets.Create(ctx, ticket))

	w, err := env.workLogService().Log(ctx, LogWorkInput{Date: "2024-01-02", DurationMinutes: 30, TicketID: ticket.ID})
	require.NoError(t, err)
	require.NotNil(t, w.TicketID)
	assert.Equal(t, ticket.ID, *w.TicketID)
}

func TestWorkLogService_LogAgainstTicketKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ticket := testutil.NewTestTicket("PROJ-2", "Legacy ticket")
	require.NoError(t, env.tickets.Create(ctx, ticket))

	w, err := env.workLogService().Log(ctx, LogWorkInput{Date: "2024-01-02", DurationMinutes: 45, TicketID: "proj-2"})
	require.NoError(t, err)
	require.NotNil(t, w.TicketID)
	assert.Equal(t, ticket.ID, *w.TicketID, "the key is stored as the ticket's row id")

	_, err = env.workLogService().Log(ctx, LogWorkInput{Date: "2024-01-02", DurationMinutes: 45, TicketID: "PROJ-404"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkLogService_Log_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.workLogService()
	ctx := context.Background()

	tests := []struct {
		name  string
		in    LogWorkInput
		field string
	}{
		{"no date", LogWorkInput{DurationMinutes: 10, TaskID: "t"}, "date"},
		{"bad date", LogWorkInput{Date: "yesterday", DurationMinutes: 10, TaskID: "t"}, "date"},
		{"zero minutes", LogWorkInput{Date: "2024-01-02", TaskID: "t"}, "durationMinutes"},
		{"no reference", LogWorkInput{Date: "2024-01-02", DurationMinutes: 10}, "reference"},
		{"both references", LogWorkInput{Date: "2024-01-02", DurationMinutes: 10, TaskID: "t", TicketID: "k"}, "reference"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Log(ctx, tt.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestWorkLogService_Log_UnknownReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workLogService().Log(ctx, LogWorkInput{Date: "2024-01-02", DurationMinutes: 10, TaskID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = env.workLogService().Log(ctx, LogWorkInput{Date: "2024-01-02", DurationMinutes: 10, TicketID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
