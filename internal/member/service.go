package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/logger"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/metrics"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidMonths  = errors.New("months must be at least 1")
)

// Notifier is the slice of the notification service the member flow
// needs. Kept local so the package does not depend on the queue wiring.
type Notifier interface {
	SendWelcome(ctx context.Context, gymID int, phone, name, planName string) error
}

type Service interface {
	Create(ctx context.Context, gymID int, req CreateMemberRequest) (*Member, error)
	Get(ctx context.Context, gymID int, ref string) (*View, error)
	Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error)
	Delete(ctx context.Context, gymID, id int) error
	List(ctx context.Context, gymID int) ([]View, error)
	// Search resolves a free-form query (name, member code, or id) to a
	// single member. Used by manual check-in.
	Search(ctx context.Context, gymID int, query string) (*Member, error)
	// Extend pushes the expiry date forward by whole calendar months
	// from the later of today and the current expiry.
	Extend(ctx context.Context, gymID, id, months int) (*Member, error)
	ExpiredReport(ctx context.Context, gymID int) ([]ExpiredReportRow, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier, now: time.Now}
}

func (s *service) Create(ctx context.Context, gymID int, req CreateMemberRequest) (*Member, error) {
	joinDate := dateutil.TruncateToDay(s.now())
	if req.JoinDate != "" {
		parsed, err := dateutil.ParseDate(req.JoinDate)
		if err != nil {
			return nil, err
		}
		joinDate = parsed
	}

	var planExpiry *time.Time
	if req.PlanExpiryDate != "" {
		parsed, err := dateutil.ParseDate(req.PlanExpiryDate)
		if err != nil {
			return nil, err
		}
		planExpiry = &parsed
	}

	m, err := s.repo.Create(ctx, gymID, req.Name, req.Phone, req.Plan, joinDate, planExpiry)
	if err != nil {
		return nil, err
	}

	metrics.RecordMemberCreated()

	if s.notifier != nil {
		go func(m Member) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifier.SendWelcome(ctx, m.GymID, m.Phone, m.Name, m.Plan); err != nil {
				logger.Warnf("welcome notification for member %s: %v", m.UserID, err)
			}
		}(*m)
	}

	return m, nil
}

func (s *service) Get(ctx context.Context, gymID int, ref string) (*View, error) {
	m, err := s.repo.FindByRef(ctx, gymID, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	v := NewView(*m, s.now())
	return &v, nil
}

func (s *service) Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error) {
	var planExpiry *time.Time
	if req.PlanExpiryDate != "" {
		parsed, err := dateutil.ParseDate(req.PlanExpiryDate)
		if err != nil {
			return nil, err
		}
		planExpiry = &parsed
	} else {
		current, err := s.repo.FindByID(ctx, gymID, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		planExpiry = current.PlanExpiryDate
	}

	m, err := s.repo.Update(ctx, gymID, id, req.Name, req.Phone, req.Plan, planExpiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return m, nil
}

func (s *service) Delete(ctx context.Context, gymID, id int) error {
	return s.repo.Delete(ctx, gymID, id)
}

func (s *service) List(ctx context.Context, gymID int) ([]View, error) {
	members, err := s.repo.List(ctx, gymID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]View, 0, len(members))
	for _, m := range members {
		views = append(views, NewView(m, now))
	}

	return views, nil
}

func (s *service) Search(ctx context.Context, gymID int, query string) (*Member, error) {
	if Normalize(query) == "" {
		return nil, ErrMemberNotFound
	}

	m, err := s.repo.FindByRef(ctx, gymID, query)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Exact lookup missed: fall back to a normalized scan so queries
	// like "gm 0042" or a member's name still resolve.
	members, err := s.repo.List(ctx, gymID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].MatchesQuery(query) {
			return &members[i], nil
		}
	}

	return nil, ErrMemberNotFound
}

func (s *service) Extend(ctx context.Context, gymID, id, months int) (*Member, error) {
	if months < 1 {
		return nil, ErrInvalidMonths
	}

	current, err := s.repo.FindByID(ctx, gymID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	today := dateutil.TruncateToDay(s.now())
	base := today
	if current.PlanExpiryDate != nil && current.PlanExpiryDate.After(base) {
		base = dateutil.TruncateToDay(*current.PlanExpiryDate)
	}

	newExpiry := dateutil.AddMonths(base, months)

	m, err := s.repo.SetExpiry(ctx, gymID, id, newExpiry, today)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	metrics.RecordMonthsExtended(months)

	return m, nil
}

func (s *service) ExpiredReport(ctx context.Context, gymID int) ([]ExpiredReportRow, error) {
	now := s.now()
	members, err := s.repo.ListExpiredAsOf(ctx, gymID, dateutil.TruncateToDay(now))
	if err != nil {
		return nil, err
	}

	rows := make([]ExpiredReportRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, ExpiredReportRow{
			MemberID:     m.ID,
			MemberUserID: m.UserID,
			Name:         m.Name,
			Phone:        m.Phone,
			Plan:         m.Plan,
			ExpiryDate:   *m.PlanExpiryDate,
			DaysExpired:  DaysExpired(&m, now),
			LastPayment:  m.LastPayment,
		})
	}

	return rows, nil
}
