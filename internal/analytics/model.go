package analytics

import "time"

type PeakHour struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

type MemberEngagement struct {
	MemberID     int        `json:"member_id"`
	MemberUserID string     `json:"member_user_id"`
	Name         string     `json:"name"`
	VisitCount   int        `json:"visit_count"`
	Score        float64    `json:"score"`
	LastVisit    *time.Time `json:"last_visit,omitempty"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ForecastMonth struct {
	Month         string `json:"month"`
	ActualCents   int64  `json:"actual_cents"`
	ForecastCents int64  `json:"forecast_cents"`
}

type RetentionWindow struct {
	WindowDays     int     `json:"window_days"`
	NewMembers     int     `json:"new_members"`
	ActiveMembers  int     `json:"active_members"`
	ChurnedMembers int     `json:"churned_members"`
	RetentionRate  float64 `json:"retention_rate"`
}

// AdvancedAnalytics is the full reducer output for a gym.
type AdvancedAnalytics struct {
	PeakHours        []PeakHour         `json:"peak_hours"`
	MemberEngagement []MemberEngagement `json:"member_engagement"`
	AttendanceTrends []TrendPoint       `json:"attendance_trends"`
	RevenueForecast  []ForecastMonth    `json:"revenue_forecast"`
	Retention        []RetentionWindow  `json:"retention"`
}

type DashboardOverview struct {
	TotalMembers        int     `json:"total_members"`
	ActiveMembers       int     `json:"active_members"`
	TotalPlans          int     `json:"total_plans"`
	MonthlyRevenueCents int64   `json:"monthly_revenue_cents"`
	NewMembersThisMonth int     `json:"new_members_this_month"`
	NewMembersLastMonth int     `json:"new_members_last_month"`
	GrowthRate          float64 `json:"growth_rate"`
	AvgPlanPriceCents   int64   `json:"avg_plan_price_cents"`
	MostPopularPlan     string  `json:"most_popular_plan"`
}
