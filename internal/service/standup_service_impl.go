package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type standupService struct {
	standups repository.StandupRepo
	logs     repository.WorkLogRepo
	tasks    repository.TaskRepo
	writer   intelligence.StandupWriter
	observer UseCaseObserver
	now      func() time.Time
}

func NewStandupService(
	standups repository.StandupRepo,
	logs repository.WorkLogRepo,
	tasks repository.TaskRepo,
	writer intelligence.StandupWriter,
	observers ...UseCaseObserver,
) StandupService {
	return &standupService{
		standups: standups,
		logs:     logs,
		tasks:    tasks,
		writer:   writer,
		observer: useCaseObserverOrNoop(observers),
		now:      nowUTC,
	}
}

func (s *standupService) Generate(ctx context.Context, date string) (st *domain.Standup, err error) {
	fields := map[string]any{"mode": "batch"}
	defer observe(ctx, s.observer, "generate-standup", fields)(&err)

	day, err := parseDay("date", date, s.now())
	if err != nil {
		return nil, err
	}
	fields["date"] = day.Format(domain.DateLayout)

	lines, err := s.logs.ListLinesByDate(ctx, day.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("loading work logs: %w", err)
	}
	open, err := s.tasks.ListOpenInActivePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading open tasks: %w", err)
	}
	fields["log_count"] = len(lines)
	fields["planned_count"] = len(open)

	content, err := s.writer.Batch(ctx, lines, plannedItems(open))
	if err != nil {
		return nil, err
	}
	return s.save(ctx, day, content)
}

func (s *standupService) GenerateInteractive(ctx context.Context, in InteractiveInput) (st *domain.Standup, err error) {
	fields := map[string]any{"mode": "interactive"}
	defer observe(ctx, s.observer, "generate-standup", fields)(&err)

	now := s.now()
	day, err := parseDay("date", in.Date, now)
	if err != nil {
		return nil, err
	}
	fields["date"] = day.Format(domain.DateLayout)

	input := domain.InteractiveStandup{
		YesterdayWork: in.YesterdayWork,
		TodayForecast: in.TodayForecast,
		Blockers:      in.Blockers,
	}
	if err = input.Validate(); err != nil {
		return nil, err
	}

	if len(in.Tasks) > 0 {
		input.Tasks, err = tasksFromInputs(in.Tasks, now)
	} else {
		input.Tasks, err = s.tasks.ListOpenInActivePlans(ctx)
	}
	if err != nil {
		return nil, err
	}

	content, err := s.writer.Interactive(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, day, content)
}

func (s *standupService) Get(ctx context.Context, date string) (*domain.Standup, error) {
	day, err := domain.ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	return s.standups.GetByDate(ctx, day)
}

func (s *standupService) save(ctx context.Context, day time.Time, content string) (*domain.Standup, error) {
	st := &domain.Standup{Date: day, Content: content, CreatedAt: s.now()}
	if err := s.standups.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("saving standup: %w", err)
	}
	return st, nil
}
