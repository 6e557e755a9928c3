package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type planService struct {
	plans    repository.PlanRepo
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, observers ...UseCaseObserver) PlanService {
	return &planService{plans: plans, observer: useCaseObserverOrNoop(observers)}
}

func (s *planService) Create(ctx context.Context, in CreatePlanInput) (p *domain.Plan, err error) {
	defer observe(ctx, s.observer, "create-plan", map[string]any{"name": in.Name})(&err)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Required("name")
	}
	start, err := domain.ParseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}

	p = &domain.Plan{
		ID:        newID(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.PlanActive,
		CreatedAt: nowUTC(),
	}
	if in.Status != "" {
		if err = p.SetStatus(domain.PlanStatus(in.Status)); err != nil {
			return nil, err
		}
	}
	if err = s.plans.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating plan: %w", err)
	}
	return p, nil
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Required("id")
	}
	return s.plans.GetByID(ctx, id)
}

func (s *planService) UpdateStatus(ctx context.Context, id, status string) (p *domain.Plan, err error) {
	defer observe(ctx, s.observer, "update-plan-status", map[string]any{"plan_id": id, "status": status})(&err)

	if strings.TrimSpace(status) == "" {
		return nil, domain.Required("status")
	}
	p, err = s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = p.SetStatus(domain.PlanStatus(status)); err != nil {
		return nil, err
	}
	if err = s.plans.UpdateStatus(ctx, p.ID, p.Status); err != nil {
		return nil, err
	}
	return p, nil
}
