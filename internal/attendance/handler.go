package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	members := member.NewService(member.NewRepository(db), nil)
	return &Handler{service: NewService(NewRepository(db), members)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary      Check a member in
// @Description  Query may be a member code, internal id or name. Inactive memberships are refused.
// @Tags         attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckInRequest  true  "Check-in data"
// @Success      201      {object}  Record
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /attendance/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), gymID, req.Query, req.Method)
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// CheckOut godoc
// @Summary      Check a member out
// @Tags         attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckOutRequest  true  "Open record id"
// @Success      200      {object}  Record
// @Failure      404      {object}  gin.H
// @Router       /attendance/check-out [post]
func (h *Handler) CheckOut(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.CheckOut(c.Request.Context(), gymID, req.RecordID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open session for this record"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Today godoc
// @Summary      Today's attendance with member names
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   RecordWithMember
// @Failure      500  {object}  gin.H
// @Router       /attendance/today [get]
func (h *Handler) Today(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	records, err := h.service.Today(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Open godoc
// @Summary      Members currently in the gym
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   RecordWithMember
// @Failure      500  {object}  gin.H
// @Router       /attendance/open [get]
func (h *Handler) Open(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	records, err := h.service.Open(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch open sessions"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// ScanStatus godoc
// @Summary      Public scan page: member status by code
// @Description  No auth; backs the QR code page. Rate limited.
// @Tags         scan
// @Produce      json
// @Param        gym_id   query     int     true  "Gym ID"
// @Param        user_id  query     string  true  "Member code"
// @Success      200      {object}  ScanStatusResponse
// @Failure      404      {object}  gin.H
// @Router       /scan-attendance/status [get]
func (h *Handler) ScanStatus(c *gin.Context) {
	gymID, userID, ok := scanParams(c)
	if !ok {
		return
	}

	resp, err := h.service.ScanStatus(c.Request.Context(), gymID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ScanCheckIn godoc
// @Summary      Public scan page: self check-in by member code
// @Tags         scan
// @Produce      json
// @Param        gym_id   query     int     true  "Gym ID"
// @Param        user_id  query     string  true  "Member code"
// @Success      201      {object}  Record
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /scan-attendance/check-in [post]
func (h *Handler) ScanCheckIn(c *gin.Context) {
	gymID, userID, ok := scanParams(c)
	if !ok {
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), gymID, userID, MethodQR)
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// ScanCheckOut godoc
// @Summary      Public scan page: self check-out
// @Tags         scan
// @Produce      json
// @Param        gym_id     query     int  true  "Gym ID"
// @Param        record_id  query     int  true  "Open record id"
// @Success      200        {object}  Record
// @Failure      404        {object}  gin.H
// @Router       /scan-attendance/check-out [post]
func (h *Handler) ScanCheckOut(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Query("gym_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gym_id"})
		return
	}

	recordID, err := strconv.Atoi(c.Query("record_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record_id"})
		return
	}

	rec, err := h.service.CheckOut(c.Request.Context(), gymID, recordID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open session for this record"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func scanParams(c *gin.Context) (int, string, bool) {
	gymID, err := strconv.Atoi(c.Query("gym_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gym_id"})
		return 0, "", false
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return 0, "", false
	}

	return gymID, userID, true
}

func respondCheckInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
	case errors.Is(err, ErrMemberInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Membership is not active"})
	case errors.Is(err, ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "Member already has an open session"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
	}
}
