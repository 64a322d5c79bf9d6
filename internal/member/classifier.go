package member

import (
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
)

// Classify derives a member's effective status from the expiry date.
// When an expiry date is present it wins over the stored status column,
// which can drift out of sync; a member is active iff the expiry is
// today or later. Members with no expiry date fall back to the stored
// status verbatim.
func Classify(m *Member, now time.Time) string {
	if m.PlanExpiryDate == nil {
		return m.Status
	}
	if m.PlanExpiryDate.Before(dateutil.TruncateToDay(now)) {
		return StatusInactive
	}
	return StatusActive
}

func IsActive(m *Member, now time.Time) bool {
	return Classify(m, now) == StatusActive
}

// DaysExpired returns the whole days the membership has been lapsed.
// Zero for active members and members with no expiry date.
func DaysExpired(m *Member, now time.Time) int {
	if m.PlanExpiryDate == nil {
		return 0
	}
	days := dateutil.DaysBetween(*m.PlanExpiryDate, now)
	if days < 0 {
		return 0
	}
	if !m.PlanExpiryDate.Before(dateutil.TruncateToDay(now)) {
		return 0
	}
	return days
}

// NewView applies the classifier to a member.
func NewView(m Member, now time.Time) View {
	return View{
		Member:        m,
		CurrentStatus: Classify(&m, now),
		DaysExpired:   DaysExpired(&m, now),
	}
}
