package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/metrics"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrPlanPricingMissing  = errors.New("no active plan pricing for the member's plan")
	ErrInsufficientPayment = errors.New("payment does not cover a single month")
)

type Service interface {
	// ProcessPayment converts an amount into whole months of membership
	// at the member's plan rate and extends the expiry accordingly.
	// Partial months are not granted; an amount below one month's rate
	// is rejected with no writes.
	ProcessPayment(ctx context.Context, gymID int, req RecordPaymentRequest) (*Result, error)
	List(ctx context.Context, gymID int) ([]Payment, error)
}

type service struct {
	repo    Repository
	members member.Repository
	plans   plan.Repository
	now     func() time.Time
}

func NewService(repo Repository, members member.Repository, plans plan.Repository) Service {
	return &service{repo: repo, members: members, plans: plans, now: time.Now}
}

func (s *service) ProcessPayment(ctx context.Context, gymID int, req RecordPaymentRequest) (*Result, error) {
	m, err := s.members.FindByRef(ctx, gymID, req.MemberRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	p, err := s.plans.FindActiveByName(ctx, gymID, m.Plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanPricingMissing
		}
		return nil, err
	}
	if p.PriceCents <= 0 || p.DurationMonths <= 0 {
		return nil, ErrPlanPricingMissing
	}

	// Integer months at the plan's monthly rate. Computed as
	// amount * duration / price to avoid truncating the rate first:
	// paying 2000 on a 3000-per-3-months plan buys exactly 2 months.
	monthsPaid := int(req.AmountCents * int64(p.DurationMonths) / p.PriceCents)
	if monthsPaid < 1 {
		metrics.RecordPayment("rejected", req.Method)
		return nil, ErrInsufficientPayment
	}

	row, newExpiry, err := s.repo.RecordAndExtend(ctx, gymID, m.ID, monthsPaid, req.AmountCents, req.Method, req.Notes, s.now())
	if err != nil {
		metrics.RecordPayment("failed", req.Method)
		return nil, err
	}

	metrics.RecordPayment("completed", req.Method)
	metrics.RecordMonthsExtended(monthsPaid)

	return &Result{Payment: *row, MonthsPaid: monthsPaid, NewExpiry: newExpiry}, nil
}

func (s *service) List(ctx context.Context, gymID int) ([]Payment, error) {
	return s.repo.List(ctx, gymID)
}
