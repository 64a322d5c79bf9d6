package owner

import (
	"context"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/db"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, gymName, name, email, passwordHash string) (*Owner, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var gymID int
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO gyms (name) VALUES ($1) RETURNING id`,
		gymName,
	).Scan(&gymID)
	if err != nil {
		return nil, err
	}

	var o Owner
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO owners (gym_id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, gym_id, name, email, password_hash, created_at`,
		gymID, name, email, passwordHash,
	).StructScan(&o)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Owner, error) {
	query := `
		SELECT id, gym_id, name, email, password_hash, created_at
		FROM owners
		WHERE email = $1
	`

	var o Owner
	err := r.db.GetContext(ctx, &o, query, email)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Owner, error) {
	query := `
		SELECT id, gym_id, name, email, password_hash, created_at
		FROM owners
		WHERE id = $1
	`

	var o Owner
	err := r.db.GetContext(ctx, &o, query, id)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM owners WHERE email = $1)`, email)
}
