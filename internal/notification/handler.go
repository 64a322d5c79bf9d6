package notification

import (
	"net/http"
	"time"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/api"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/logger"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"

	"github.com/gin-gonic/gin"
)

type ExpiryReminderRequest struct {
	MemberRef string `json:"member_ref" binding:"required"`
}

type BulkReminderRequest struct {
	DaysBefore int `json:"days_before" binding:"omitempty,min=1,max=60"`
}

type TestSMSRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type Handler struct {
	svc         *Service
	members     member.Repository
	defaultDays int
	now         func() time.Time
}

func NewHandler(svc *Service, members member.Repository, defaultDays int) *Handler {
	return &Handler{svc: svc, members: members, defaultDays: defaultDays, now: time.Now}
}

// SendExpiryReminder godoc
// @Summary      Queue an expiry reminder for one member
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ExpiryReminderRequest  true  "Member reference"
// @Success      202      {object}  api.MessageResponse
// @Failure      404      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /notifications/expiry-reminder [post]
func (h *Handler) SendExpiryReminder(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req ExpiryReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.members.FindByRef(c.Request.Context(), gymID, req.MemberRef)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if m.PlanExpiryDate == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Member has no expiry date"})
		return
	}

	daysLeft := dateutil.DaysBetween(h.now(), *m.PlanExpiryDate)
	if err := h.svc.SendExpiryReminder(c.Request.Context(), m.Phone, m.Name, m.Plan, *m.PlanExpiryDate, daysLeft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue reminder"})
		return
	}

	c.JSON(http.StatusAccepted, api.MessageResponse{Message: "Reminder queued"})
}

// SendBulkExpiryReminders godoc
// @Summary      Queue reminders for everyone expiring soon
// @Description  Covers members whose expiry falls within days_before from today. Returns queued and failed counts.
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BulkReminderRequest  false  "Window override"
// @Success      200      {object}  api.BulkSendResponse
// @Failure      500      {object}  gin.H
// @Router       /notifications/expiry-reminders/bulk [post]
func (h *Handler) SendBulkExpiryReminders(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	// An empty or invalid body falls back to the default window.
	var req BulkReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = BulkReminderRequest{}
	}
	days := req.DaysBefore
	if days == 0 {
		days = h.defaultDays
	}

	today := dateutil.TruncateToDay(h.now())
	expiring, err := h.members.ListExpiringBetween(c.Request.Context(), gymID, today, today.AddDate(0, 0, days))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expiring members"})
		return
	}

	var resp api.BulkSendResponse
	for _, m := range expiring {
		daysLeft := dateutil.DaysBetween(today, *m.PlanExpiryDate)
		if err := h.svc.SendExpiryReminder(c.Request.Context(), m.Phone, m.Name, m.Plan, *m.PlanExpiryDate, daysLeft); err != nil {
			logger.Warnf("Bulk reminder for %s not queued: %v", m.UserID, err)
			resp.Failed++
			continue
		}
		resp.Queued++
	}

	c.JSON(http.StatusOK, resp)
}

// SendTestSMS godoc
// @Summary      Queue a test SMS
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TestSMSRequest  true  "Destination phone"
// @Success      202      {object}  api.MessageResponse
// @Failure      500      {object}  gin.H
// @Router       /notifications/test [post]
func (h *Handler) SendTestSMS(c *gin.Context) {
	var req TestSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SendTest(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue test SMS"})
		return
	}

	c.JSON(http.StatusAccepted, api.MessageResponse{Message: "Test SMS queued"})
}
