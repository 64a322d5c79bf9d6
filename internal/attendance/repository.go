package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recordColumns = `id, gym_id, member_id, member_user_id, check_in_time, check_out_time, duration_minutes, method, status, created_at`

const uniqueViolation = "23505"

func (r *repository) CheckIn(ctx context.Context, gymID, memberID int, memberUserID, method string, at time.Time) (*Record, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var openID int
	err = tx.QueryRowxContext(ctx,
		`SELECT id FROM attendance WHERE gym_id = $1 AND member_id = $2 AND status = 'checked_in' FOR UPDATE`,
		gymID, memberID,
	).Scan(&openID)
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var rec Record
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO attendance (gym_id, member_id, member_user_id, check_in_time, method, status)
		 VALUES ($1, $2, $3, $4, $5, 'checked_in')
		 RETURNING `+recordColumns,
		gymID, memberID, memberUserID, at, method,
	).StructScan(&rec)
	if err != nil {
		// The partial unique index catches the race the re-check above
		// cannot see: two transactions inserting concurrently.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) CheckOut(ctx context.Context, gymID, recordID int, at time.Time) (*Record, error) {
	query := `
		UPDATE attendance
		SET check_out_time = $1,
		    duration_minutes = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($1::timestamptz - check_in_time)) / 60))::int,
		    status = 'checked_out'
		WHERE gym_id = $2 AND id = $3 AND status = 'checked_in'
		RETURNING ` + recordColumns

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, at, gymID, recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) FindOpenByMember(ctx context.Context, gymID, memberID int) (*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance
		WHERE gym_id = $1 AND member_id = $2 AND status = 'checked_in'
	`

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, gymID, memberID)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) ListOpen(ctx context.Context, gymID int) ([]RecordWithMember, error) {
	query := `
		SELECT a.` + joinedColumns() + `, m.name AS member_name
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE a.gym_id = $1 AND a.status = 'checked_in'
		ORDER BY a.check_in_time ASC
	`

	var records []RecordWithMember
	err := r.db.SelectContext(ctx, &records, query, gymID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repository) ListToday(ctx context.Context, gymID int, dayStart, dayEnd time.Time) ([]RecordWithMember, error) {
	query := `
		SELECT a.` + joinedColumns() + `, m.name AS member_name
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE a.gym_id = $1 AND a.check_in_time >= $2 AND a.check_in_time < $3
		ORDER BY a.check_in_time DESC
	`

	var records []RecordWithMember
	err := r.db.SelectContext(ctx, &records, query, gymID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repository) ListRange(ctx context.Context, gymID int, from, to time.Time) ([]Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance
		WHERE gym_id = $1 AND check_in_time >= $2 AND check_in_time < $3
		ORDER BY check_in_time ASC
	`

	var records []Record
	err := r.db.SelectContext(ctx, &records, query, gymID, from, to)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func joinedColumns() string {
	return `id, a.gym_id, a.member_id, a.member_user_id, a.check_in_time, a.check_out_time, a.duration_minutes, a.method, a.status, a.created_at`
}
