package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type planningService struct {
	plans    repository.PlanRepo
	tasks    repository.TaskRepo
	advisor  intelligence.PlanningAdvisor
	observer UseCaseObserver
}

func NewPlanningService(
	plans repository.PlanRepo,
	tasks repository.TaskRepo,
	advisor intelligence.PlanningAdvisor,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		plans:    plans,
		tasks:    tasks,
		advisor:  advisor,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planningService) RecommendToday(ctx context.Context, in RecommendInput) (text string, err error) {
	fields := map[string]any{"plan_id": in.PlanID}
	defer observe(ctx, s.observer, "recommend-today", fields)(&err)

	var tasks []*domain.Task
	if strings.TrimSpace(in.PlanID) != "" {
		if _, err = s.plans.GetByID(ctx, in.PlanID); err != nil {
			return "", err
		}
		var all []*domain.Task
		if all, err = s.tasks.ListByPlan(ctx, in.PlanID); err != nil {
			return "", fmt.Errorf("loading tasks: %w", err)
		}
		for _, t := range all {
			if t.Status.Open() {
				tasks = append(tasks, t)
			}
		}
	} else {
		if tasks, err = tasksFromInputs(in.Tasks, nowUTC()); err != nil {
			return "", err
		}
	}
	fields["task_count"] = len(tasks)

	return s.advisor.RecommendToday(ctx, tasks)
}

func (s *planningService) TaskGuidance(ctx context.Context, in GuidanceInput) (text string, err error) {
	defer observe(ctx, s.observer, "task-guidance", map[string]any{"task_id": in.TaskID})(&err)

	var task *domain.Task
	switch {
	case strings.TrimSpace(in.TaskID) != "":
		task, err = s.tasks.GetByID(ctx, in.TaskID)
	case in.Task != nil:
		task, err = domain.NewTask("", "", *in.Task, nowUTC())
	default:
		err = domain.Invalid("task", "taskId or task is required")
	}
	if err != nil {
		return "", err
	}
	return s.advisor.TaskGuidance(ctx, task)
}
