package gym

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int) (*Gym, error)
	Update(ctx context.Context, id int, name, phone, address string) (*Gym, error)
}
