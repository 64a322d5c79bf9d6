package payment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "gym_id", "member_id", "member_user_id", "member_name", "plan_name",
		"amount_cents", "method", "status", "months_paid", "notes", "payment_date", "created_at",
	})
}

func TestRecordAndExtend_FromFutureExpiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	paymentDate := time.Date(2026, time.March, 15, 11, 30, 0, 0, time.UTC)
	currentExpiry := date(2026, time.April, 10)
	wantExpiry := date(2026, time.June, 10)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id, name, plan, plan_expiry_date FROM members WHERE gym_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "plan", "plan_expiry_date"}).
			AddRow("GM-0042", "John Doe", "Monthly", currentExpiry))
	mock.ExpectExec(`UPDATE members\s+SET status = 'active', plan_expiry_date = \$1, last_payment = \$2`).
		WithArgs(wantExpiry, date(2026, time.March, 15), 7, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payments.*RETURNING`).
		WithArgs(7, 42, "GM-0042", "John Doe", "Monthly", int64(200000), "cash", 2, "", date(2026, time.March, 15)).
		WillReturnRows(paymentRows().
			AddRow(1, 7, 42, "GM-0042", "John Doe", "Monthly",
				int64(200000), "cash", "completed", 2, "", date(2026, time.March, 15), time.Now()))
	mock.ExpectCommit()

	p, newExpiry, err := repo.RecordAndExtend(context.Background(), 7, 42, 2, 200000, "cash", "", paymentDate)
	require.NoError(t, err)
	assert.Equal(t, wantExpiry, newExpiry)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAndExtend_LapsedMemberStartsFromToday(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	paymentDate := time.Date(2026, time.March, 15, 11, 30, 0, 0, time.UTC)
	lapsedExpiry := date(2026, time.January, 31)
	wantExpiry := date(2026, time.April, 15)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id, name, plan, plan_expiry_date FROM members.*FOR UPDATE`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "plan", "plan_expiry_date"}).
			AddRow("GM-0042", "John Doe", "Monthly", lapsedExpiry))
	mock.ExpectExec(`UPDATE members\s+SET status = 'active'`).
		WithArgs(wantExpiry, date(2026, time.March, 15), 7, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payments.*RETURNING`).
		WithArgs(7, 42, "GM-0042", "John Doe", "Monthly", int64(100000), "card", 1, "late", date(2026, time.March, 15)).
		WillReturnRows(paymentRows().
			AddRow(2, 7, 42, "GM-0042", "John Doe", "Monthly",
				int64(100000), "card", "completed", 1, "late", date(2026, time.March, 15), time.Now()))
	mock.ExpectCommit()

	_, newExpiry, err := repo.RecordAndExtend(context.Background(), 7, 42, 1, 100000, "card", "late", paymentDate)
	require.NoError(t, err)
	assert.Equal(t, wantExpiry, newExpiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAndExtend_MemberMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id, name, plan, plan_expiry_date FROM members.*FOR UPDATE`).
		WithArgs(7, 99).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "plan", "plan_expiry_date"}))
	mock.ExpectRollback()

	_, _, err = repo.RecordAndExtend(context.Background(), 7, 99, 1, 100000, "cash", "", time.Now())
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT .* FROM payments\s+WHERE gym_id = \$1\s+ORDER BY payment_date DESC`).
		WithArgs(7).
		WillReturnRows(paymentRows().
			AddRow(2, 7, 42, "GM-0042", "John Doe", "Monthly",
				int64(100000), "cash", "completed", 1, "", date(2026, time.March, 15), time.Now()).
			AddRow(1, 7, 41, "GM-0041", "Jane", "Quarterly",
				int64(300000), "upi", "completed", 3, "", date(2026, time.February, 1), time.Now()))

	payments, err := repo.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "GM-0042", payments[0].MemberUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
