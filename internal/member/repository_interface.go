package member

import (
	"context"
	"time"
)

type Repository interface {
	// Create assigns the next member code for the gym (GM-0001, ...)
	// and inserts the row in a single transaction.
	Create(ctx context.Context, gymID int, name, phone, plan string, joinDate time.Time, planExpiry *time.Time) (*Member, error)
	FindByID(ctx context.Context, gymID, id int) (*Member, error)
	FindByUserID(ctx context.Context, gymID int, userID string) (*Member, error)
	// FindByRef resolves either key form: an all-digit ref is treated as
	// the internal id, anything else as the member code.
	FindByRef(ctx context.Context, gymID int, ref string) (*Member, error)
	Update(ctx context.Context, gymID, id int, name, phone, plan string, planExpiry *time.Time) (*Member, error)
	// SetExpiry write-throughs status and last_payment alongside the new
	// expiry date.
	SetExpiry(ctx context.Context, gymID, id int, newExpiry time.Time, lastPayment time.Time) (*Member, error)
	Delete(ctx context.Context, gymID, id int) error
	List(ctx context.Context, gymID int) ([]Member, error)
	// ListExpiringBetween returns members whose plan_expiry_date falls in
	// [from, to], for expiry reminders.
	ListExpiringBetween(ctx context.Context, gymID int, from, to time.Time) ([]Member, error)
	// ListExpiredAsOf returns members whose plan_expiry_date is strictly
	// before the given day.
	ListExpiredAsOf(ctx context.Context, gymID int, day time.Time) ([]Member, error)
}
