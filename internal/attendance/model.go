package attendance

import "time"

const (
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"

	MethodManual = "manual"
	MethodQR     = "qr"
)

// Record is one gym visit. MemberUserID carries the member code so
// listings and exports do not need a join for it.
type Record struct {
	ID              int        `db:"id" json:"id"`
	GymID           int        `db:"gym_id" json:"gym_id"`
	MemberID        int        `db:"member_id" json:"member_id"`
	MemberUserID    string     `db:"member_user_id" json:"member_user_id"`
	CheckInTime     time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime    *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Method          string     `db:"method" json:"method"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// RecordWithMember joins in the member's display name for listings.
type RecordWithMember struct {
	Record
	MemberName string `db:"member_name" json:"member_name"`
}

type CheckInRequest struct {
	Query  string `json:"query" binding:"required"`
	Method string `json:"method" binding:"omitempty,oneof=manual qr"`
}

type CheckOutRequest struct {
	RecordID int `json:"record_id" binding:"required"`
}

// ScanStatusResponse is what the public QR page shows a member after
// they scan: who they are, whether their membership is active, and any
// open session to check out of.
type ScanStatusResponse struct {
	MemberUserID  string  `json:"member_user_id"`
	Name          string  `json:"name"`
	Plan          string  `json:"plan"`
	CurrentStatus string  `json:"current_status"`
	OpenRecordID  *int    `json:"open_record_id,omitempty"`
	CheckedInAt   *string `json:"checked_in_at,omitempty"`
}
