package gym

import (
	"fmt"
	"time"
)

type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateGymRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ScanURLResponse struct {
	URL string `json:"url" example:"https://app.fitlynk.com/scan-attendance?gym_id=7"`
}

// ScanURL builds the public check-in URL encoded into the gym's QR code.
func ScanURL(publicBaseURL string, gymID int) string {
	return fmt.Sprintf("%s/scan-attendance?gym_id=%d", publicBaseURL, gymID)
}
