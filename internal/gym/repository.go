package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, phone, address, created_at
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) Update(ctx context.Context, id int, name, phone, address string) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $1, phone = $2, address = $3
		WHERE id = $4
		RETURNING id, name, phone, address, created_at
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, name, phone, address, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}
