package member

import (
	"strconv"
	"strings"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Member is a gym's customer. UserID is the human-facing member code
// (e.g. GM-0042), unique within a gym; ID is the internal key. Status is
// kept for compatibility with older records but the expiry classifier is
// the source of truth (see classifier.go).
type Member struct {
	ID             int        `db:"id" json:"id"`
	GymID          int        `db:"gym_id" json:"gym_id"`
	UserID         string     `db:"user_id" json:"user_id"`
	Name           string     `db:"name" json:"name"`
	Phone          string     `db:"phone" json:"phone"`
	Plan           string     `db:"plan" json:"plan"`
	Status         string     `db:"status" json:"status"`
	JoinDate       time.Time  `db:"join_date" json:"join_date"`
	LastPayment    *time.Time `db:"last_payment" json:"last_payment,omitempty"`
	PlanExpiryDate *time.Time `db:"plan_expiry_date" json:"plan_expiry_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// View is a member with the classifier applied, for listings and reports.
type View struct {
	Member
	CurrentStatus string `json:"current_status"`
	DaysExpired   int    `json:"days_expired"`
}

// ExpiredReportRow is one line of the expired-members report.
type ExpiredReportRow struct {
	MemberID     int        `json:"member_id"`
	MemberUserID string     `json:"member_user_id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Plan         string     `json:"plan"`
	ExpiryDate   time.Time  `json:"expiry_date"`
	DaysExpired  int        `json:"days_expired"`
	LastPayment  *time.Time `json:"last_payment,omitempty"`
}

type CreateMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Plan           string `json:"plan" binding:"required"`
	JoinDate       string `json:"join_date"`
	PlanExpiryDate string `json:"plan_expiry_date"`
}

type UpdateMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Plan           string `json:"plan" binding:"required"`
	PlanExpiryDate string `json:"plan_expiry_date"`
}

type ExtendMembershipRequest struct {
	Months int `json:"months" binding:"required,min=1"`
}

// Normalize lowercases and strips whitespace and separator runes, so
// "GM 0042" and "gm-0042" both resolve during manual check-in and
// member lookup.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MatchesQuery reports whether the normalized query equals the member's
// name, member code, or internal id.
func (m *Member) MatchesQuery(query string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	return q == Normalize(m.Name) ||
		q == Normalize(m.UserID) ||
		q == strconv.Itoa(m.ID)
}
