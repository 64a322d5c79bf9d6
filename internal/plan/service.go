package plan

import (
	"context"
	"errors"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrDuplicateName = errors.New("a plan with this name already exists")
)

type Service interface {
	Create(ctx context.Context, gymID int, req CreatePlanRequest) (*Plan, error)
	Update(ctx context.Context, gymID, planID int, req UpdatePlanRequest) (*Plan, error)
	Deactivate(ctx context.Context, gymID, planID int) error
	ListActive(ctx context.Context, gymID int) ([]Plan, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, gymID int, req CreatePlanRequest) (*Plan, error) {
	exists, err := s.repo.NameExists(ctx, gymID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	return s.repo.Create(ctx, gymID, req.Name, req.PriceCents, req.DurationMonths, req.Description)
}

func (s *service) Update(ctx context.Context, gymID, planID int, req UpdatePlanRequest) (*Plan, error) {
	p, err := s.repo.Update(ctx, gymID, planID, req.Name, req.PriceCents, req.DurationMonths, req.Description)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

func (s *service) Deactivate(ctx context.Context, gymID, planID int) error {
	err := s.repo.Deactivate(ctx, gymID, planID)
	if errors.Is(err, ErrPlanNotFoundOrInactive) {
		return ErrPlanNotFound
	}
	return err
}

func (s *service) ListActive(ctx context.Context, gymID int) ([]Plan, error) {
	return s.repo.ListActive(ctx, gymID)
}
