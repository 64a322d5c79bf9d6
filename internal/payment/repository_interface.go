package payment

import (
	"context"
	"time"
)

type Repository interface {
	// RecordAndExtend applies a paid extension atomically: it locks the
	// member row, recomputes the extension base from the locked expiry,
	// writes the new expiry through to the member and inserts the
	// ledger row in the same transaction.
	RecordAndExtend(ctx context.Context, gymID, memberID, monthsPaid int, amountCents int64, method, notes string, paymentDate time.Time) (*Payment, time.Time, error)
	List(ctx context.Context, gymID int) ([]Payment, error)
	// ListBetween returns completed payments with payment_date in
	// [from, to], newest first.
	ListBetween(ctx context.Context, gymID int, from, to time.Time) ([]Payment, error)
}
