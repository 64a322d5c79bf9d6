package analytics

import (
	"sort"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/attendance"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/payment"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"
)

// The reducers in this file are pure: they only look at their inputs,
// so they can be tested with literal fixtures and reused against any
// window the service decides to fetch.

const peakHourLimit = 24

// PeakHours buckets check-ins by (weekday, hour) and returns the top
// buckets by count, ties kept in first-seen order.
func PeakHours(records []attendance.Record) []PeakHour {
	type key struct {
		day  time.Weekday
		hour int
	}

	counts := make(map[key]int)
	var order []key
	for _, rec := range records {
		k := key{day: rec.CheckInTime.Weekday(), hour: rec.CheckInTime.Hour()}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > peakHourLimit {
		order = order[:peakHourLimit]
	}

	result := make([]PeakHour, 0, len(order))
	for _, k := range order {
		result = append(result, PeakHour{Day: k.day.String(), Hour: k.hour, Count: counts[k]})
	}
	return result
}

// Engagement scores each member by visits in the trailing 30 days,
// mapped to a 0..100 scale that saturates at 30 visits.
func Engagement(records []attendance.Record, members []member.Member, now time.Time) []MemberEngagement {
	windowStart := dateutil.WindowStart(now, 30)

	visits := make(map[int]int)
	lastVisit := make(map[int]time.Time)
	for _, rec := range records {
		if rec.CheckInTime.Before(windowStart) {
			continue
		}
		visits[rec.MemberID]++
		if rec.CheckInTime.After(lastVisit[rec.MemberID]) {
			lastVisit[rec.MemberID] = rec.CheckInTime
		}
	}

	result := make([]MemberEngagement, 0, len(members))
	for _, m := range members {
		count := visits[m.ID]
		score := float64(count) / 30 * 100
		if score > 100 {
			score = 100
		}
		e := MemberEngagement{
			MemberID:     m.ID,
			MemberUserID: m.UserID,
			Name:         m.Name,
			VisitCount:   count,
			Score:        score,
		}
		if lv, ok := lastVisit[m.ID]; ok {
			e.LastVisit = &lv
		}
		result = append(result, e)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// Trends returns daily visit counts for the trailing 30 days, oldest
// first. Days with no visits are present with a zero count.
func Trends(records []attendance.Record, now time.Time) []TrendPoint {
	// 30 points ending today.
	start := dateutil.WindowStart(now, 29)

	counts := make(map[string]int)
	for _, rec := range records {
		if rec.CheckInTime.Before(start) {
			continue
		}
		counts[dateutil.FormatDate(rec.CheckInTime)]++
	}

	result := make([]TrendPoint, 0, 30)
	for d := 0; d < 30; d++ {
		day := start.AddDate(0, 0, d)
		key := dateutil.FormatDate(day)
		result = append(result, TrendPoint{Date: key, Count: counts[key]})
	}
	return result
}

// Forecast reconstructs monthly revenue from active members' plan
// rates bucketed by join month, then projects six months forward at a
// flat 5% over the trailing average. This is an approximation of
// revenue, not a sum of actual payments.
func Forecast(members []member.Member, plans []plan.Plan, now time.Time) []ForecastMonth {
	rates := make(map[string]int64, len(plans))
	for _, p := range plans {
		if p.DurationMonths > 0 {
			rates[p.Name] = p.PriceCents / int64(p.DurationMonths)
		}
	}

	buckets := make(map[string]int64)
	for _, m := range members {
		if !member.IsActive(&m, now) {
			continue
		}
		buckets[dateutil.MonthKey(m.JoinDate)] += rates[m.Plan]
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var historicalSum int64
	for off := -3; off < 0; off++ {
		historicalSum += buckets[dateutil.MonthKey(dateutil.AddMonths(monthStart, off))]
	}
	forecast := historicalSum / 3 * 105 / 100

	result := make([]ForecastMonth, 0, 9)
	for off := -3; off <= 5; off++ {
		key := dateutil.MonthKey(dateutil.AddMonths(monthStart, off))
		fm := ForecastMonth{Month: key}
		if off < 0 {
			fm.ActualCents = buckets[key]
		} else {
			fm.ForecastCents = forecast
		}
		result = append(result, fm)
	}
	return result
}

// Retention computes 30/60/90-day join cohorts. Active and churned are
// decided by the expiry classifier, not the stored status column.
func Retention(members []member.Member, now time.Time) []RetentionWindow {
	windows := []int{30, 60, 90}

	result := make([]RetentionWindow, 0, len(windows))
	for _, days := range windows {
		start := dateutil.WindowStart(now, days)

		w := RetentionWindow{WindowDays: days}
		for _, m := range members {
			if m.JoinDate.Before(start) {
				continue
			}
			w.NewMembers++
			if member.IsActive(&m, now) {
				w.ActiveMembers++
			} else {
				w.ChurnedMembers++
			}
		}
		if w.NewMembers > 0 {
			w.RetentionRate = float64(w.ActiveMembers) / float64(w.NewMembers) * 100
		}
		result = append(result, w)
	}
	return result
}

// Overview condenses the gym's current state for the dashboard.
func Overview(members []member.Member, plans []plan.Plan, payments []payment.Payment, now time.Time) DashboardOverview {
	o := DashboardOverview{
		TotalMembers: len(members),
		TotalPlans:   len(plans),
	}

	planCounts := make(map[string]int)
	var popularOrder []string
	for _, m := range members {
		if member.IsActive(&m, now) {
			o.ActiveMembers++
		}
		if dateutil.SameMonth(m.JoinDate, now) {
			o.NewMembersThisMonth++
		}
		if dateutil.SameMonth(m.JoinDate, dateutil.AddMonths(now, -1)) {
			o.NewMembersLastMonth++
		}
		if _, seen := planCounts[m.Plan]; !seen {
			popularOrder = append(popularOrder, m.Plan)
		}
		planCounts[m.Plan]++
	}

	if o.NewMembersLastMonth > 0 {
		o.GrowthRate = float64(o.NewMembersThisMonth-o.NewMembersLastMonth) / float64(o.NewMembersLastMonth) * 100
	}

	for _, p := range payments {
		if p.Status == payment.StatusCompleted && dateutil.SameMonth(p.PaymentDate, now) {
			o.MonthlyRevenueCents += p.AmountCents
		}
	}

	if len(plans) > 0 {
		var total int64
		for _, p := range plans {
			total += p.PriceCents
		}
		o.AvgPlanPriceCents = total / int64(len(plans))
	}

	best := 0
	for _, name := range popularOrder {
		if planCounts[name] > best {
			best = planCounts[name]
			o.MostPopularPlan = name
		}
	}

	return o
}
