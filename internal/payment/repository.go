package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, gym_id, member_id, member_user_id, member_name, plan_name, amount_cents, method, status, months_paid, notes, payment_date, created_at`

func (r *repository) RecordAndExtend(ctx context.Context, gymID, memberID, monthsPaid int, amountCents int64, method, notes string, paymentDate time.Time) (*Payment, time.Time, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer tx.Rollback()

	var locked struct {
		UserID         string     `db:"user_id"`
		Name           string     `db:"name"`
		Plan           string     `db:"plan"`
		PlanExpiryDate *time.Time `db:"plan_expiry_date"`
	}
	err = tx.GetContext(ctx, &locked,
		`SELECT user_id, name, plan, plan_expiry_date FROM members WHERE gym_id = $1 AND id = $2 FOR UPDATE`,
		gymID, memberID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrMemberNotFound
		}
		return nil, time.Time{}, err
	}

	// The base is recomputed under the row lock so concurrent payments
	// for the same member stack instead of clobbering each other.
	base := dateutil.TruncateToDay(paymentDate)
	if locked.PlanExpiryDate != nil {
		expiry := dateutil.TruncateToDay(*locked.PlanExpiryDate)
		if expiry.After(base) {
			base = expiry
		}
	}
	newExpiry := dateutil.AddMonths(base, monthsPaid)

	_, err = tx.ExecContext(ctx,
		`UPDATE members
		 SET status = 'active', plan_expiry_date = $1, last_payment = $2, updated_at = NOW()
		 WHERE gym_id = $3 AND id = $4`,
		newExpiry, dateutil.TruncateToDay(paymentDate), gymID, memberID,
	)
	if err != nil {
		return nil, time.Time{}, err
	}

	var p Payment
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO payments (gym_id, member_id, member_user_id, member_name, plan_name, amount_cents, method, status, months_paid, notes, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'completed', $8, $9, $10)
		 RETURNING `+paymentColumns,
		gymID, memberID, locked.UserID, locked.Name, locked.Plan,
		amountCents, method, monthsPaid, notes, dateutil.TruncateToDay(paymentDate),
	).StructScan(&p)
	if err != nil {
		return nil, time.Time{}, err
	}

	if err := tx.Commit(); err != nil {
		return nil, time.Time{}, err
	}

	return &p, newExpiry, nil
}

func (r *repository) List(ctx context.Context, gymID int) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE gym_id = $1
		ORDER BY payment_date DESC, id DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, gymID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListBetween(ctx context.Context, gymID int, from, to time.Time) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE gym_id = $1
		  AND status = 'completed'
		  AND payment_date BETWEEN $2 AND $3
		ORDER BY payment_date DESC, id DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, gymID, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
