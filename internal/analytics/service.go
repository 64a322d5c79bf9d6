package analytics

import (
	"context"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/attendance"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/payment"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"
)

type Service interface {
	Advanced(ctx context.Context, gymID int) (*AdvancedAnalytics, error)
	Dashboard(ctx context.Context, gymID int) (*DashboardOverview, error)
}

type service struct {
	members    member.Repository
	plans      plan.Repository
	payments   payment.Repository
	attendance attendance.Repository
	now        func() time.Time
}

func NewService(members member.Repository, plans plan.Repository, payments payment.Repository, att attendance.Repository) Service {
	return &service{members: members, plans: plans, payments: payments, attendance: att, now: time.Now}
}

func (s *service) Advanced(ctx context.Context, gymID int) (*AdvancedAnalytics, error) {
	now := s.now()

	members, err := s.members.List(ctx, gymID)
	if err != nil {
		return nil, err
	}

	plans, err := s.plans.ListActive(ctx, gymID)
	if err != nil {
		return nil, err
	}

	// Three months of attendance covers every reducer window.
	from := dateutil.AddMonths(dateutil.TruncateToDay(now), -3)
	records, err := s.attendance.ListRange(ctx, gymID, from, dateutil.TruncateToDay(now).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &AdvancedAnalytics{
		PeakHours:        PeakHours(records),
		MemberEngagement: Engagement(records, members, now),
		AttendanceTrends: Trends(records, now),
		RevenueForecast:  Forecast(members, plans, now),
		Retention:        Retention(members, now),
	}, nil
}

func (s *service) Dashboard(ctx context.Context, gymID int) (*DashboardOverview, error) {
	now := s.now()

	members, err := s.members.List(ctx, gymID)
	if err != nil {
		return nil, err
	}

	plans, err := s.plans.ListActive(ctx, gymID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	payments, err := s.payments.ListBetween(ctx, gymID, monthStart, dateutil.TruncateToDay(now).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	overview := Overview(members, plans, payments, now)
	return &overview, nil
}
