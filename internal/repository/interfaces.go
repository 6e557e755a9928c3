package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	// List returns every plan, newest first.
	List(ctx context.Context) ([]*domain.Plan, error)
	UpdateStatus(ctx context.Context, id string, status domain.PlanStatus) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	CreateMany(ctx context.Context, tasks []*domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Task, error)
	// ListOpenInActivePlans returns todo, in_progress and blocked tasks of
	// active plans.
	ListOpenInActivePlans(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByPlan(ctx context.Context, planID string) (int64, error)
}

type WorkLogRepo interface {
	Create(ctx context.Context, w *domain.WorkLog) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.WorkLog, error)
	// ListLinesByDate joins each log of date with its ticket or task.
	ListLinesByDate(ctx context.Context, date time.Time) ([]domain.LogLine, error)
}

type StandupRepo interface {
	// Upsert stores s, replacing any standup for the same date.
	Upsert(ctx context.Context, s *domain.Standup) error
	GetByDate(ctx context.Context, date time.Time) (*domain.Standup, error)
}

type TicketRepo interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByKey(ctx context.Context, key string) (*domain.Ticket, error)
}
