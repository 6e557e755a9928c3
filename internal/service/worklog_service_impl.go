package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type workLogService struct {
	logs     repository.WorkLogRepo
	tasks    repository.TaskRepo
	tickets  repository.TicketRepo
	observer UseCaseObserver
}

func NewWorkLogService(
	logs repository.WorkLogRepo,
	tasks repository.TaskRepo,
	tickets repository.TicketRepo,
	observers ...UseCaseObserver,
) WorkLogService {
	return &workLogService{
		logs:     logs,
		tasks:    tasks,
		tickets:  tickets,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workLogService) Log(ctx context.Context, in LogWorkInput) (w *domain.WorkLog, err error) {
	defer observe(ctx, s.observer, "log-work", map[string]any{
		"task_id":   in.TaskID,
		"ticket_id": in.TicketID,
		"minutes":   in.DurationMinutes,
	})(&err)

	date, err := domain.ParseDate("date", strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}
	w = &domain.WorkLog{
		ID:              newID(),
		Date:            date,
		DurationMinutes: in.DurationMinutes,
		Description:     strings.TrimSpace(in.Description),
		TaskID:          domain.StrPtr(strings.TrimSpace(in.TaskID)),
		TicketID:        domain.StrPtr(strings.TrimSpace(in.TicketID)),
		CreatedAt:       nowUTC(),
	}
	if err = w.Validate(); err != nil {
		return nil, err
	}

	if w.TaskID != nil {
		if _, err = s.tasks.GetByID(ctx, *w.TaskID); err != nil {
			return nil, err
		}
	} else {
		var ticket *domain.Ticket
		if ticket, err = s.ticket(ctx, *w.TicketID); err != nil {
			return nil, err
		}
		w.TicketID = &ticket.ID
	}

	if err = s.logs.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("creating work log: %w", err)
	}
	return w, nil
}

// ticket resolves a ticket reference given either as a row id or as a Jira
// key such as "OPS-12".
func (s *workLogService) ticket(ctx context.Context, ref string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return s.tickets.GetByKey(ctx, strings.ToUpper(ref))
	}
	return t, err
}

func (s *workLogService) ListByDate(ctx context.Context, date string) ([]*domain.WorkLog, error) {
	day, err := domain.ParseDate("date", strings.TrimSpace(date))
	if err != nil {
		return nil, err
	}
	return s.logs.ListByDate(ctx, day)
}
