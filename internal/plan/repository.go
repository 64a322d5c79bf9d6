package plan

import (
	"context"
	"errors"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrPlanNotFoundOrInactive = errors.New("plan not found or already inactive")

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const planColumns = `id, gym_id, name, price_cents, duration_months, description, is_active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, gymID int, name string, priceCents int64, durationMonths int, description string) (*Plan, error) {
	query := `
		INSERT INTO membership_plans (gym_id, name, price_cents, duration_months, description, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING ` + planColumns

	var p Plan
	err := r.db.GetContext(ctx, &p, query, gymID, name, priceCents, durationMonths, description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, gymID, planID int, name string, priceCents int64, durationMonths int, description string) (*Plan, error) {
	query := `
		UPDATE membership_plans
		SET name = $1, price_cents = $2, duration_months = $3, description = $4, updated_at = NOW()
		WHERE id = $5 AND gym_id = $6 AND is_active
		RETURNING ` + planColumns

	var p Plan
	err := r.db.GetContext(ctx, &p, query, name, priceCents, durationMonths, description, planID, gymID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Deactivate(ctx context.Context, gymID, planID int) error {
	query := `
		UPDATE membership_plans
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND is_active
	`

	result, err := r.db.ExecContext(ctx, query, planID, gymID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPlanNotFoundOrInactive
	}

	return nil
}

func (r *repository) FindActiveByName(ctx context.Context, gymID int, name string) (*Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM membership_plans
		WHERE gym_id = $1 AND name = $2 AND is_active
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, gymID, name)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListActive(ctx context.Context, gymID int) ([]Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM membership_plans
		WHERE gym_id = $1 AND is_active
		ORDER BY duration_months ASC
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query, gymID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) NameExists(ctx context.Context, gymID int, name string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM membership_plans WHERE gym_id = $1 AND name = $2 AND is_active)`,
		gymID, name)
}
