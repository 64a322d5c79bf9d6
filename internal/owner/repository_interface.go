package owner

import "context"

type Repository interface {
	// Create provisions the gym tenant row and its owner account in a
	// single transaction.
	Create(ctx context.Context, gymName, name, email, passwordHash string) (*Owner, error)
	FindByEmail(ctx context.Context, email string) (*Owner, error)
	FindByID(ctx context.Context, id int) (*Owner, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
