package plan

import "context"

type Repository interface {
	Create(ctx context.Context, gymID int, name string, priceCents int64, durationMonths int, description string) (*Plan, error)
	Update(ctx context.Context, gymID, planID int, name string, priceCents int64, durationMonths int, description string) (*Plan, error)
	// Deactivate soft-deletes the plan; historic payments and members
	// already on it are unaffected.
	Deactivate(ctx context.Context, gymID, planID int) error
	FindActiveByName(ctx context.Context, gymID int, name string) (*Plan, error)
	ListActive(ctx context.Context, gymID int) ([]Plan, error)
	NameExists(ctx context.Context, gymID int, name string) (bool, error)
}
