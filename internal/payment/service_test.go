package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) RecordAndExtend(ctx context.Context, gymID, memberID, monthsPaid int, amountCents int64, method, notes string, paymentDate time.Time) (*Payment, time.Time, error) {
	args := m.Called(ctx, gymID, memberID, monthsPaid, amountCents, method, notes, paymentDate)
	if args.Get(0) == nil {
		return nil, time.Time{}, args.Error(2)
	}
	return args.Get(0).(*Payment), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockPaymentRepo) List(ctx context.Context, gymID int) ([]Payment, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payment), args.Error(1)
}

func (m *MockPaymentRepo) ListBetween(ctx context.Context, gymID int, from, to time.Time) ([]Payment, error) {
	args := m.Called(ctx, gymID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payment), args.Error(1)
}

type MockMemberRepo struct{ mock.Mock }

func (m *MockMemberRepo) Create(ctx context.Context, gymID int, name, phone, plan string, joinDate time.Time, planExpiry *time.Time) (*member.Member, error) {
	args := m.Called(ctx, gymID, name, phone, plan, joinDate, planExpiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByID(ctx context.Context, gymID, id int) (*member.Member, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByUserID(ctx context.Context, gymID int, userID string) (*member.Member, error) {
	args := m.Called(ctx, gymID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByRef(ctx context.Context, gymID int, ref string) (*member.Member, error) {
	args := m.Called(ctx, gymID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, gymID, id int, name, phone, plan string, planExpiry *time.Time) (*member.Member, error) {
	args := m.Called(ctx, gymID, id, name, phone, plan, planExpiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) SetExpiry(ctx context.Context, gymID, id int, newExpiry time.Time, lastPayment time.Time) (*member.Member, error) {
	args := m.Called(ctx, gymID, id, newExpiry, lastPayment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) Delete(ctx context.Context, gymID, id int) error {
	args := m.Called(ctx, gymID, id)
	return args.Error(0)
}

func (m *MockMemberRepo) List(ctx context.Context, gymID int) ([]member.Member, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepo) ListExpiringBetween(ctx context.Context, gymID int, from, to time.Time) ([]member.Member, error) {
	args := m.Called(ctx, gymID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepo) ListExpiredAsOf(ctx context.Context, gymID int, day time.Time) ([]member.Member, error) {
	args := m.Called(ctx, gymID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

type MockPlanRepo struct{ mock.Mock }

func (m *MockPlanRepo) Create(ctx context.Context, gymID int, name string, priceCents int64, durationMonths int, description string) (*plan.Plan, error) {
	args := m.Called(ctx, gymID, name, priceCents, durationMonths, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, gymID, planID int, name string, priceCents int64, durationMonths int, description string) (*plan.Plan, error) {
	args := m.Called(ctx, gymID, planID, name, priceCents, durationMonths, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepo) Deactivate(ctx context.Context, gymID, planID int) error {
	args := m.Called(ctx, gymID, planID)
	return args.Error(0)
}

func (m *MockPlanRepo) FindActiveByName(ctx context.Context, gymID int, name string) (*plan.Plan, error) {
	args := m.Called(ctx, gymID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepo) ListActive(ctx context.Context, gymID int) ([]plan.Plan, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]plan.Plan), args.Error(1)
}

func (m *MockPlanRepo) NameExists(ctx context.Context, gymID int, name string) (bool, error) {
	args := m.Called(ctx, gymID, name)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo Repository, members member.Repository, plans plan.Repository, now time.Time) *service {
	return &service{repo: repo, members: members, plans: plans, now: func() time.Time { return now }}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProcessPayment_WholeMonths(t *testing.T) {
	repo := new(MockPaymentRepo)
	members := new(MockMemberRepo)
	plans := new(MockPlanRepo)
	now := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	svc := newTestService(repo, members, plans, now)

	members.On("FindByRef", mock.Anything, 7, "GM-0042").
		Return(&member.Member{ID: 42, GymID: 7, UserID: "GM-0042", Name: "John Doe", Plan: "Monthly"}, nil)
	plans.On("FindActiveByName", mock.Anything, 7, "Monthly").
		Return(&plan.Plan{ID: 1, Name: "Monthly", PriceCents: 100000, DurationMonths: 1}, nil)

	// 2500.00 at 1000.00/month buys 2 whole months, remainder forfeited.
	wantExpiry := date(2026, time.May, 15)
	repo.On("RecordAndExtend", mock.Anything, 7, 42, 2, int64(250000), "cash", "", now).
		Return(&Payment{ID: 1, GymID: 7, MemberID: 42, AmountCents: 250000, MonthsPaid: 2, Status: StatusCompleted}, wantExpiry, nil)

	result, err := svc.ProcessPayment(context.Background(), 7, RecordPaymentRequest{
		MemberRef:   "GM-0042",
		AmountCents: 250000,
		Method:      MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.MonthsPaid)
	assert.Equal(t, wantExpiry, result.NewExpiry)
	repo.AssertExpectations(t)
}

func TestProcessPayment_MultiMonthPlanRate(t *testing.T) {
	repo := new(MockPaymentRepo)
	members := new(MockMemberRepo)
	plans := new(MockPlanRepo)
	now := time.Date(2026, time.March, 15, 11, 0, 0, 0, time.UTC)
	svc := newTestService(repo, members, plans, now)

	members.On("FindByRef", mock.Anything, 7, "42").
		Return(&member.Member{ID: 42, GymID: 7, Plan: "Quarterly"}, nil)
	// 3000.00 for 3 months; paying 2000.00 buys exactly 2 months even
	// though the truncated monthly rate would not divide evenly.
	plans.On("FindActiveByName", mock.Anything, 7, "Quarterly").
		Return(&plan.Plan{ID: 2, Name: "Quarterly", PriceCents: 300000, DurationMonths: 3}, nil)

	repo.On("RecordAndExtend", mock.Anything, 7, 42, 2, int64(200000), "upi", "", now).
		Return(&Payment{ID: 2, MonthsPaid: 2}, date(2026, time.May, 15), nil)

	result, err := svc.ProcessPayment(context.Background(), 7, RecordPaymentRequest{
		MemberRef:   "42",
		AmountCents: 200000,
		Method:      MethodUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.MonthsPaid)
	repo.AssertExpectations(t)
}

func TestProcessPayment_Insufficient(t *testing.T) {
	repo := new(MockPaymentRepo)
	members := new(MockMemberRepo)
	plans := new(MockPlanRepo)
	svc := newTestService(repo, members, plans, time.Now())

	members.On("FindByRef", mock.Anything, 7, "42").
		Return(&member.Member{ID: 42, GymID: 7, Plan: "Monthly"}, nil)
	plans.On("FindActiveByName", mock.Anything, 7, "Monthly").
		Return(&plan.Plan{ID: 1, Name: "Monthly", PriceCents: 100000, DurationMonths: 1}, nil)

	_, err := svc.ProcessPayment(context.Background(), 7, RecordPaymentRequest{
		MemberRef:   "42",
		AmountCents: 50000,
		Method:      MethodCash,
	})
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	repo.AssertNotCalled(t, "RecordAndExtend",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPayment_MemberNotFound(t *testing.T) {
	repo := new(MockPaymentRepo)
	members := new(MockMemberRepo)
	plans := new(MockPlanRepo)
	svc := newTestService(repo, members, plans, time.Now())

	members.On("FindByRef", mock.Anything, 7, "GM-9999").Return(nil, sql.ErrNoRows)

	_, err := svc.ProcessPayment(context.Background(), 7, RecordPaymentRequest{
		MemberRef:   "GM-9999",
		AmountCents: 100000,
		Method:      MethodCash,
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestProcessPayment_PlanPricingMissing(t *testing.T) {
	repo := new(MockPaymentRepo)
	members := new(MockMemberRepo)
	plans := new(MockPlanRepo)
	svc := newTestService(repo, members, plans, time.Now())

	members.On("FindByRef", mock.Anything, 7, "42").
		Return(&member.Member{ID: 42, GymID: 7, Plan: "Legacy"}, nil)
	plans.On("FindActiveByName", mock.Anything, 7, "Legacy").Return(nil, sql.ErrNoRows)

	_, err := svc.ProcessPayment(context.Background(), 7, RecordPaymentRequest{
		MemberRef:   "42",
		AmountCents: 100000,
		Method:      MethodCard,
	})
	assert.ErrorIs(t, err, ErrPlanPricingMissing)
	repo.AssertNotCalled(t, "RecordAndExtend",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
