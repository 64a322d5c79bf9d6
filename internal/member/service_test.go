package member

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRepo struct{ mock.Mock }

func (m *MockMemberRepo) Create(ctx context.Context, gymID int, name, phone, plan string, joinDate time.Time, planExpiry *time.Time) (*Member, error) {
	args := m.Called(ctx, gymID, name, phone, plan, joinDate, planExpiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByID(ctx context.Context, gymID, id int) (*Member, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByUserID(ctx context.Context, gymID int, userID string) (*Member, error) {
	args := m.Called(ctx, gymID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindByRef(ctx context.Context, gymID int, ref string) (*Member, error) {
	args := m.Called(ctx, gymID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, gymID, id int, name, phone, plan string, planExpiry *time.Time) (*Member, error) {
	args := m.Called(ctx, gymID, id, name, phone, plan, planExpiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) SetExpiry(ctx context.Context, gymID, id int, newExpiry time.Time, lastPayment time.Time) (*Member, error) {
	args := m.Called(ctx, gymID, id, newExpiry, lastPayment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) Delete(ctx context.Context, gymID, id int) error {
	args := m.Called(ctx, gymID, id)
	return args.Error(0)
}

func (m *MockMemberRepo) List(ctx context.Context, gymID int) ([]Member, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func (m *MockMemberRepo) ListExpiringBetween(ctx context.Context, gymID int, from, to time.Time) ([]Member, error) {
	args := m.Called(ctx, gymID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func (m *MockMemberRepo) ListExpiredAsOf(ctx context.Context, gymID int, day time.Time) ([]Member, error) {
	args := m.Called(ctx, gymID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func newTestService(repo Repository, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestExtend_FromFutureExpiry(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	expiry := date(2026, time.April, 10)
	repo.On("FindByID", mock.Anything, 7, 1).
		Return(&Member{ID: 1, GymID: 7, PlanExpiryDate: &expiry}, nil)

	wantExpiry := date(2026, time.June, 10)
	repo.On("SetExpiry", mock.Anything, 7, 1, wantExpiry, date(2026, time.March, 15)).
		Return(&Member{ID: 1, GymID: 7, PlanExpiryDate: &wantExpiry}, nil)

	m, err := svc.Extend(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, wantExpiry, *m.PlanExpiryDate)
	repo.AssertExpectations(t)
}

func TestExtend_LapsedStartsFromToday(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	expiry := date(2026, time.January, 31)
	repo.On("FindByID", mock.Anything, 7, 1).
		Return(&Member{ID: 1, GymID: 7, PlanExpiryDate: &expiry}, nil)

	wantExpiry := date(2026, time.April, 15)
	repo.On("SetExpiry", mock.Anything, 7, 1, wantExpiry, date(2026, time.March, 15)).
		Return(&Member{ID: 1, GymID: 7, PlanExpiryDate: &wantExpiry}, nil)

	_, err := svc.Extend(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestExtend_NoExpiryStartsFromToday(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	repo.On("FindByID", mock.Anything, 7, 1).
		Return(&Member{ID: 1, GymID: 7}, nil)

	// Jan 31 + 1 month clamps to the end of February.
	wantExpiry := date(2026, time.February, 28)
	repo.On("SetExpiry", mock.Anything, 7, 1, wantExpiry, date(2026, time.January, 31)).
		Return(&Member{ID: 1, GymID: 7, PlanExpiryDate: &wantExpiry}, nil)

	_, err := svc.Extend(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestExtend_InvalidMonths(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	_, err := svc.Extend(context.Background(), 7, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestExtend_MemberNotFound(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	repo.On("FindByID", mock.Anything, 7, 99).Return(nil, sql.ErrNoRows)

	_, err := svc.Extend(context.Background(), 7, 99, 1)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSearch_ExactRefHit(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	repo.On("FindByRef", mock.Anything, 7, "GM-0042").
		Return(&Member{ID: 42, GymID: 7, UserID: "GM-0042"}, nil)

	m, err := svc.Search(context.Background(), 7, "GM-0042")
	require.NoError(t, err)
	assert.Equal(t, 42, m.ID)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSearch_NormalizedFallback(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	repo.On("FindByRef", mock.Anything, 7, "gm 0042").Return(nil, sql.ErrNoRows)
	repo.On("List", mock.Anything, 7).Return([]Member{
		{ID: 41, GymID: 7, UserID: "GM-0041", Name: "Jane"},
		{ID: 42, GymID: 7, UserID: "GM-0042", Name: "John Doe"},
	}, nil)

	m, err := svc.Search(context.Background(), 7, "gm 0042")
	require.NoError(t, err)
	assert.Equal(t, 42, m.ID)

	byName, err := svc.Search(context.Background(), 7, "gm 0042")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", byName.Name)
}

func TestSearch_NoMatch(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	repo.On("FindByRef", mock.Anything, 7, "nobody").Return(nil, sql.ErrNoRows)
	repo.On("List", mock.Anything, 7).Return([]Member{{ID: 1, UserID: "GM-0001", Name: "Jane"}}, nil)

	_, err := svc.Search(context.Background(), 7, "nobody")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSearch_BlankQuery(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	_, err := svc.Search(context.Background(), 7, "   ")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	repo.AssertNotCalled(t, "FindByRef", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_DefaultsJoinDateToToday(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.March, 15, 18, 45, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	repo.On("Create", mock.Anything, 7, "John Doe", "+15550001111", "Gold", date(2026, time.March, 15), (*time.Time)(nil)).
		Return(&Member{ID: 1, GymID: 7, UserID: "GM-0001", Name: "John Doe"}, nil)

	m, err := svc.Create(context.Background(), 7, CreateMemberRequest{
		Name:  "John Doe",
		Phone: "+15550001111",
		Plan:  "Gold",
	})
	require.NoError(t, err)
	assert.Equal(t, "GM-0001", m.UserID)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsBadDate(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := newTestService(repo, time.Now())

	_, err := svc.Create(context.Background(), 7, CreateMemberRequest{
		Name:     "John Doe",
		Phone:    "+15550001111",
		Plan:     "Gold",
		JoinDate: "15/03/2026",
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestList_AppliesClassifier(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	future := date(2026, time.April, 1)
	past := date(2026, time.March, 1)
	repo.On("List", mock.Anything, 7).Return([]Member{
		{ID: 1, Status: StatusInactive, PlanExpiryDate: &future},
		{ID: 2, Status: StatusActive, PlanExpiryDate: &past},
	}, nil)

	views, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, StatusActive, views[0].CurrentStatus)
	assert.Equal(t, StatusInactive, views[1].CurrentStatus)
	assert.Equal(t, 14, views[1].DaysExpired)
}

func TestExpiredReport(t *testing.T) {
	repo := new(MockMemberRepo)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	expiry := date(2026, time.March, 5)
	lastPay := date(2026, time.February, 5)
	repo.On("ListExpiredAsOf", mock.Anything, 7, date(2026, time.March, 15)).
		Return([]Member{{
			ID: 3, UserID: "GM-0003", Name: "Sam", Phone: "+15550002222",
			Plan: "Basic", PlanExpiryDate: &expiry, LastPayment: &lastPay,
		}}, nil)

	rows, err := svc.ExpiredReport(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "GM-0003", rows[0].MemberUserID)
	assert.Equal(t, 10, rows[0].DaysExpired)
	assert.Equal(t, expiry, rows[0].ExpiryDate)
}
