package payment

import "time"

const (
	StatusCompleted = "completed"

	MethodCash   = "cash"
	MethodCard   = "card"
	MethodUPI    = "upi"
	MethodOnline = "online"
)

// Payment is one row of the immutable payment ledger. Member name,
// member code and plan name are denormalized at write time so the
// ledger survives member edits and plan deactivation.
type Payment struct {
	ID           int       `db:"id" json:"id"`
	GymID        int       `db:"gym_id" json:"gym_id"`
	MemberID     int       `db:"member_id" json:"member_id"`
	MemberUserID string    `db:"member_user_id" json:"member_user_id"`
	MemberName   string    `db:"member_name" json:"member_name"`
	PlanName     string    `db:"plan_name" json:"plan_name"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	Method       string    `db:"method" json:"method"`
	Status       string    `db:"status" json:"status"`
	MonthsPaid   int       `db:"months_paid" json:"months_paid"`
	Notes        string    `db:"notes" json:"notes"`
	PaymentDate  time.Time `db:"payment_date" json:"payment_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type RecordPaymentRequest struct {
	MemberRef   string `json:"member_ref" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Method      string `json:"method" binding:"required,oneof=cash card upi online"`
	Notes       string `json:"notes"`
}

// Result is what a processed payment hands back to the caller: the
// ledger row plus the membership state it produced.
type Result struct {
	Payment    Payment   `json:"payment"`
	MonthsPaid int       `json:"months_paid"`
	NewExpiry  time.Time `json:"new_expiry"`
}
