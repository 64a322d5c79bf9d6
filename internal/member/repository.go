package member

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const memberColumns = `id, gym_id, user_id, name, phone, plan, status, join_date, last_payment, plan_expiry_date, created_at, updated_at`

var allDigits = regexp.MustCompile(`^[0-9]+$`)

func (r *repository) Create(ctx context.Context, gymID int, name, phone, plan string, joinDate time.Time, planExpiry *time.Time) (*Member, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var seq int
	err = tx.QueryRowxContext(ctx,
		`UPDATE gyms SET member_seq = member_seq + 1 WHERE id = $1 RETURNING member_seq`,
		gymID,
	).Scan(&seq)
	if err != nil {
		return nil, err
	}

	userID := fmt.Sprintf("GM-%04d", seq)

	var m Member
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO members (gym_id, user_id, name, phone, plan, status, join_date, last_payment, plan_expiry_date)
		 VALUES ($1, $2, $3, $4, $5, 'active', $6, $6, $7)
		 RETURNING `+memberColumns,
		gymID, userID, name, phone, plan, joinDate, planExpiry,
	).StructScan(&m)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, gymID, id int) (*Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND id = $2
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, gymID, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByUserID(ctx context.Context, gymID int, userID string) (*Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND user_id = $2
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, gymID, userID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByRef(ctx context.Context, gymID int, ref string) (*Member, error) {
	if allDigits.MatchString(ref) {
		id, err := strconv.Atoi(ref)
		if err != nil {
			return nil, err
		}
		return r.FindByID(ctx, gymID, id)
	}
	return r.FindByUserID(ctx, gymID, ref)
}

func (r *repository) Update(ctx context.Context, gymID, id int, name, phone, plan string, planExpiry *time.Time) (*Member, error) {
	query := `
		UPDATE members
		SET name = $1, phone = $2, plan = $3, plan_expiry_date = $4, updated_at = NOW()
		WHERE gym_id = $5 AND id = $6
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, name, phone, plan, planExpiry, gymID, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) SetExpiry(ctx context.Context, gymID, id int, newExpiry time.Time, lastPayment time.Time) (*Member, error) {
	query := `
		UPDATE members
		SET status = 'active', plan_expiry_date = $1, last_payment = $2, updated_at = NOW()
		WHERE gym_id = $3 AND id = $4
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, newExpiry, lastPayment, gymID, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, gymID, id int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE gym_id = $1 AND id = $2`,
		gymID, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, gymID int) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1
		ORDER BY created_at DESC
	`

	var members []Member
	err := r.db.SelectContext(ctx, &members, query, gymID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) ListExpiringBetween(ctx context.Context, gymID int, from, to time.Time) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1
		  AND plan_expiry_date IS NOT NULL
		  AND plan_expiry_date BETWEEN $2 AND $3
		ORDER BY plan_expiry_date ASC
	`

	var members []Member
	err := r.db.SelectContext(ctx, &members, query, gymID, from, to)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) ListExpiredAsOf(ctx context.Context, gymID int, day time.Time) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1
		  AND plan_expiry_date IS NOT NULL
		  AND plan_expiry_date < $2
		ORDER BY plan_expiry_date ASC
	`

	var members []Member
	err := r.db.SelectContext(ctx, &members, query, gymID, day)
	if err != nil {
		return nil, err
	}

	return members, nil
}
