package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/metrics"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberInactive   = errors.New("membership is not active")
	ErrAlreadyCheckedIn = errors.New("member already has an open session")
	ErrNoActiveSession  = errors.New("no open session to check out")
)

type Service interface {
	// CheckIn resolves the free-form query to a member, verifies the
	// membership is active and opens a session.
	CheckIn(ctx context.Context, gymID int, query, method string) (*Record, error)
	CheckOut(ctx context.Context, gymID, recordID int) (*Record, error)
	Today(ctx context.Context, gymID int) ([]RecordWithMember, error)
	Open(ctx context.Context, gymID int) ([]RecordWithMember, error)
	ListRange(ctx context.Context, gymID int, from, to time.Time) ([]Record, error)
	// ScanStatus backs the public QR page: membership state plus any
	// open session for the given member code.
	ScanStatus(ctx context.Context, gymID int, userID string) (*ScanStatusResponse, error)
}

type service struct {
	repo    Repository
	members member.Service
	now     func() time.Time
}

func NewService(repo Repository, members member.Service) Service {
	return &service{repo: repo, members: members, now: time.Now}
}

func (s *service) CheckIn(ctx context.Context, gymID int, query, method string) (*Record, error) {
	if method == "" {
		method = MethodManual
	}

	m, err := s.members.Search(ctx, gymID, query)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			metrics.RecordCheckIn(method, "not_found")
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if !member.IsActive(m, s.now()) {
		metrics.RecordCheckIn(method, "denied")
		return nil, ErrMemberInactive
	}

	rec, err := s.repo.CheckIn(ctx, gymID, m.ID, m.UserID, method, s.now())
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			metrics.RecordCheckIn(method, "duplicate")
		}
		return nil, err
	}

	metrics.RecordCheckIn(method, "success")
	return rec, nil
}

func (s *service) CheckOut(ctx context.Context, gymID, recordID int) (*Record, error) {
	rec, err := s.repo.CheckOut(ctx, gymID, recordID, s.now())
	if err != nil {
		return nil, err
	}

	if rec.DurationMinutes != nil {
		metrics.RecordCheckOut(*rec.DurationMinutes)
	}

	return rec, nil
}

func (s *service) Today(ctx context.Context, gymID int) ([]RecordWithMember, error) {
	dayStart := dateutil.TruncateToDay(s.now())
	return s.repo.ListToday(ctx, gymID, dayStart, dayStart.AddDate(0, 0, 1))
}

func (s *service) Open(ctx context.Context, gymID int) ([]RecordWithMember, error) {
	return s.repo.ListOpen(ctx, gymID)
}

func (s *service) ListRange(ctx context.Context, gymID int, from, to time.Time) ([]Record, error) {
	return s.repo.ListRange(ctx, gymID, from, to)
}

func (s *service) ScanStatus(ctx context.Context, gymID int, userID string) (*ScanStatusResponse, error) {
	v, err := s.members.Get(ctx, gymID, userID)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	resp := &ScanStatusResponse{
		MemberUserID:  v.UserID,
		Name:          v.Name,
		Plan:          v.Plan,
		CurrentStatus: v.CurrentStatus,
	}

	open, err := s.repo.FindOpenByMember(ctx, gymID, v.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, nil
		}
		return nil, err
	}

	resp.OpenRecordID = &open.ID
	checkedIn := open.CheckInTime.Format(time.RFC3339)
	resp.CheckedInAt = &checkedIn

	return resp, nil
}
