package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type taskService struct {
	plans    repository.PlanRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	analyzer intelligence.TaskAnalyzer
	tickets  intelligence.TicketParser
	observer UseCaseObserver
}

func NewTaskService(
	plans repository.PlanRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	analyzer intelligence.TaskAnalyzer,
	tickets intelligence.TicketParser,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		plans:    plans,
		tasks:    tasks,
		uow:      uow,
		analyzer: analyzer,
		tickets:  tickets,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) List(ctx context.Context, planID string) ([]*domain.Task, error) {
	if strings.TrimSpace(planID) == "" {
		return nil, domain.Required("planId")
	}
	return s.tasks.ListByPlan(ctx, planID)
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Analyze(ctx context.Context, description, planID string) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "analyze-task", map[string]any{"plan_id": planID})(&err)

	if strings.TrimSpace(description) == "" {
		return nil, domain.Required("description")
	}
	if err = s.requirePlan(ctx, planID); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("analyzing task: %w", err)
	}

	task, err = domain.NewTask(newID(), planID, domain.TaskInput{
		Title:       analysis.Title,
		Description: analysis.Description,
		Priority:    string(analysis.Priority),
		Status:      string(domain.TaskTodo),
		Source:      string(domain.SourceManual),
	}, nowUTC())
	if err != nil {
		return nil, err
	}
	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (s *taskService) ImportFromJira(ctx context.Context, key, planID string) (task *domain.Task, err error) {
	fields := map[string]any{"plan_id": planID, "jira_key": key}
	defer observe(ctx, s.observer, "import-jira-task", fields)(&err)

	if strings.TrimSpace(key) == "" {
		return nil, domain.Required("ticketKey")
	}
	if err = s.requirePlan(ctx, planID); err != nil {
		return nil, err
	}

	reading, err := s.tickets.Parse(ctx, key)
	if err != nil {
		return nil, err
	}
	fields["fallback"] = reading.Ticket.Fallback

	issue, parsed := reading.Issue, reading.Ticket
	task, err = domain.NewTask(newID(), planID, domain.TaskInput{
		Title:       domain.CoalesceStr(parsed.Summary, issue.Summary, issue.Key),
		Description: domain.CoalesceStr(parsed.Analysis, parsed.Description),
		Priority:    string(domain.NormalizePriority(domain.CoalesceStr(parsed.Priority, issue.Priority))),
		Status:      string(domain.StatusFromJira(issue.Status, issue.StatusCategory)),
		Source:      string(domain.SourceJira),
		JiraKey:     issue.Key,
		JiraURL:     issue.URL,
		Estimate:    domain.CoalescePtr(parsed.StoryPoints, issue.StoryPoints),
		Assignee:    domain.CoalesceStr(domain.Deref(parsed.Assignee), issue.Assignee),
	}, nowUTC())
	if err != nil {
		return nil, err
	}
	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "update-task", map[string]any{"task_id": id})(&err)

	if err = patch.Validate(); err != nil {
		return nil, err
	}
	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = task.ApplyPatch(patch, nowUTC()); err != nil {
		return nil, err
	}
	if err = s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

func (s *taskService) BulkReplace(ctx context.Context, planID string, inputs []domain.TaskInput) (out []*domain.Task, err error) {
	fields := map[string]any{"plan_id": planID, "task_count": len(inputs)}
	defer observe(ctx, s.observer, "bulk-replace-tasks", fields)(&err)

	if strings.TrimSpace(planID) == "" {
		return nil, domain.Required("planId")
	}

	// Build and validate everything before touching the store.
	now := nowUTC()
	tasks := make([]*domain.Task, 0, len(inputs))
	for i, in := range inputs {
		t, err := domain.NewTask(newID(), planID, in, now)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		tasks = append(tasks, t)
	}

	return db.WithinTxResult(ctx, s.uow, func(ctx context.Context, tx db.DBTX) ([]*domain.Task, error) {
		if _, err := repository.NewSQLitePlanRepo(tx).GetByID(ctx, planID); err != nil {
			return nil, err
		}
		txTasks := repository.NewSQLiteTaskRepo(tx)
		removed, err := txTasks.DeleteByPlan(ctx, planID)
		if err != nil {
			return nil, fmt.Errorf("deleting tasks: %w", err)
		}
		fields["removed"] = removed
		if err := txTasks.CreateMany(ctx, tasks); err != nil {
			return nil, fmt.Errorf("inserting tasks: %w", err)
		}
		return tasks, nil
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Required("id")
	}
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) requirePlan(ctx context.Context, planID string) error {
	if strings.TrimSpace(planID) == "" {
		return domain.Required("planId")
	}
	_, err := s.plans.GetByID(ctx, planID)
	return err
}
