package plan

import "time"

// Plan is a named price/duration tier. Price is the total for the full
// duration; PriceCents / DurationMonths is the canonical monthly rate the
// ledger calculator works from.
type Plan struct {
	ID             int       `db:"id" json:"id"`
	GymID          int       `db:"gym_id" json:"gym_id"`
	Name           string    `db:"name" json:"name"`
	PriceCents     int64     `db:"price_cents" json:"price_cents"`
	DurationMonths int       `db:"duration_months" json:"duration_months"`
	Description    string    `db:"description" json:"description"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// MonthlyRateCents returns the per-month price. Fractional paise are
// truncated; exact month arithmetic in the ledger avoids the division
// entirely (see payment.Service).
func (p *Plan) MonthlyRateCents() int64 {
	if p.DurationMonths <= 0 {
		return 0
	}
	return p.PriceCents / int64(p.DurationMonths)
}

// MonthlyRate returns the per-month price as a float, for analytics.
func (p *Plan) MonthlyRate() float64 {
	if p.DurationMonths <= 0 {
		return 0
	}
	return float64(p.PriceCents) / float64(p.DurationMonths)
}

type CreatePlanRequest struct {
	Name           string `json:"name" binding:"required"`
	PriceCents     int64  `json:"price_cents" binding:"required,gt=0"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1"`
	Description    string `json:"description"`
}

type UpdatePlanRequest struct {
	Name           string `json:"name" binding:"required"`
	PriceCents     int64  `json:"price_cents" binding:"required,gt=0"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1"`
	Description    string `json:"description"`
}
