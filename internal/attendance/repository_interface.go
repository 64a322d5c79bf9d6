package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// CheckIn opens a session for the member. At most one open session
	// per member is allowed; a second attempt fails with
	// ErrAlreadyCheckedIn, enforced both by a transactional re-check
	// and by a partial unique index on open rows.
	CheckIn(ctx context.Context, gymID, memberID int, memberUserID, method string, at time.Time) (*Record, error)
	// CheckOut closes an open session and stores the duration in whole
	// minutes, floored at zero. Closing a session that is not open
	// fails with ErrNoActiveSession.
	CheckOut(ctx context.Context, gymID, recordID int, at time.Time) (*Record, error)
	FindOpenByMember(ctx context.Context, gymID, memberID int) (*Record, error)
	ListOpen(ctx context.Context, gymID int) ([]RecordWithMember, error)
	ListToday(ctx context.Context, gymID int, dayStart, dayEnd time.Time) ([]RecordWithMember, error)
	ListRange(ctx context.Context, gymID int, from, to time.Time) ([]Record, error)
}
