package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "gym_id", "member_id", "member_user_id", "check_in_time",
		"check_out_time", "duration_minutes", "method", "status", "created_at",
	})
}

func TestCheckIn_OpensSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	at := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM attendance WHERE gym_id = \$1 AND member_id = \$2 AND status = 'checked_in' FOR UPDATE`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO attendance.*RETURNING`).
		WithArgs(7, 42, "GM-0042", at, "manual").
		WillReturnRows(recordRows().
			AddRow(1, 7, 42, "GM-0042", at, nil, nil, "manual", "checked_in", time.Now()))
	mock.ExpectCommit()

	rec, err := repo.CheckIn(context.Background(), 7, 42, "GM-0042", "manual", at)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_OpenSessionBlocks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM attendance WHERE gym_id = \$1 AND member_id = \$2 AND status = 'checked_in' FOR UPDATE`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectRollback()

	_, err = repo.CheckIn(context.Background(), 7, 42, "GM-0042", "manual", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_UniqueIndexRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM attendance.*FOR UPDATE`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO attendance.*`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err = repo.CheckIn(context.Background(), 7, 42, "GM-0042", "qr", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_ClosesSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	checkIn := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(75 * time.Minute)
	duration := 75

	mock.ExpectQuery(`UPDATE attendance\s+SET check_out_time = \$1.*status = 'checked_out'.*RETURNING`).
		WithArgs(checkOut, 7, 1).
		WillReturnRows(recordRows().
			AddRow(1, 7, 42, "GM-0042", checkIn, checkOut, duration, "manual", "checked_out", time.Now()))

	rec, err := repo.CheckOut(context.Background(), 7, 1, checkOut)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, rec.Status)
	assert.Equal(t, 75, *rec.DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCheckOut_NoOpenSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`UPDATE attendance\s+SET check_out_time = \$1.*RETURNING`).
		WithArgs(sqlmock.AnyArg(), 7, 99).
		WillReturnRows(recordRows())

	_, err = repo.CheckOut(context.Background(), 7, 99, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListToday_JoinsMemberNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	dayStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	checkIn := dayStart.Add(10 * time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "gym_id", "member_id", "member_user_id", "check_in_time",
		"check_out_time", "duration_minutes", "method", "status", "created_at", "member_name",
	}).AddRow(1, 7, 42, "GM-0042", checkIn, nil, nil, "qr", "checked_in", time.Now(), "John Doe")

	mock.ExpectQuery(`SELECT a\..*FROM attendance a\s+JOIN members m ON m\.id = a\.member_id`).
		WithArgs(7, dayStart, dayStart.AddDate(0, 0, 1)).
		WillReturnRows(rows)

	records, err := repo.ListToday(context.Background(), 7, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "John Doe", records[0].MemberName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
