package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

func TestPlanService_Create_EchoesDatesAndDefaultsActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.planService().Create(ctx, CreatePlanInput{
		Name:      "Sprint 1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-14",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID, "UUID should be generated")
	assert.Equal(t, domain.PlanActive, p.Status)
	assert.Equal(t, "2024-01-01", p.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-14", p.EndDate.Format(domain.DateLayout))

	fetched, err := env.planService().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", fetched.Name)
	assert.Equal(t, "2024-01-01", fetched.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-14", fetched.EndDate.Format(domain.DateLayout))
}

func TestPlanService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.planService()

	tests := []struct {
		name  string
		in    CreatePlanInput
		field string
	}{
		{"missing name", CreatePlanInput{StartDate: "2024-01-01", EndDate: "2024-01-14"}, "name"},
		{"blank name", CreatePlanInput{Name: "  ", StartDate: "2024-01-01", EndDate: "2024-01-14"}, "name"},
		{"missing start", CreatePlanInput{Name: "x", EndDate: "2024-01-14"}, "startDate"},
		{"bad end", CreatePlanInput{Name: "x", StartDate: "2024-01-01", EndDate: "14/01/2024"}, "endDate"},
		{"bad status", CreatePlanInput{Name: "x", StartDate: "2024-01-01", EndDate: "2024-01-14", Status: "paused"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	plans, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans, "nothing is stored on validation failure")
}

func TestPlanService_Create_ExplicitStatus(t *testing.T) {
	env := newTestEnv(t)
	p, err := env.planService().Create(context.Background(), CreatePlanInput{
		Name: "Old", StartDate: "2023-01-01", EndDate: "2023-01-14", Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanCompleted, p.Status)
}

func TestPlanService_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.planService()

	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, CreatePlanInput{Name: name, StartDate: "2024-01-01", EndDate: "2024-01-14"})
		require.NoError(t, err)
	}

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "third", plans[0].Name)
	assert.Equal(t, "first", plans[2].Name)
}

func TestPlanService_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.planService().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.planService()

	p, err := svc.Create(ctx, CreatePlanInput{Name: "Sprint 1", StartDate: "2024-01-01", EndDate: "2024-01-14"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, p.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanArchived, updated.Status)

	fetched, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanArchived, fetched.Status)

	_, err = svc.UpdateStatus(ctx, p.ID, "bogus")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.UpdateStatus(ctx, "missing", "active")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
