package member

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/dateutil"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, notifier Notifier) *Handler {
	return &Handler{service: NewService(NewRepository(db), notifier)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// ListMembers godoc
// @Summary      List members with derived status
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   View
// @Failure      500  {object}  gin.H
// @Router       /members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	views, err := h.service.List(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateMember godoc
// @Summary      Register a new member
// @Description  Assigns the next member code (GM-0001, ...) and queues a welcome SMS.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMemberRequest  true  "Member data"
// @Success      201      {object}  Member
// @Failure      400      {object}  gin.H
// @Router       /members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		if errors.Is(err, dateutil.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// GetMember godoc
// @Summary      Get a member by id or member code
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        ref  path      string  true  "Member ID or code (GM-0042)"
// @Success      200  {object}  View
// @Failure      404  {object}  gin.H
// @Router       /members/{ref} [get]
func (h *Handler) GetMember(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	v, err := h.service.Get(c.Request.Context(), gymID, c.Param("ref"))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch member"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// UpdateMember godoc
// @Summary      Update member details
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int                  true  "Member ID"
// @Param        request   body      UpdateMemberRequest  true  "Member data"
// @Success      200       {object}  Member
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /members/{memberID} [put]
func (h *Handler) UpdateMember(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.Update(c.Request.Context(), gymID, memberID, req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if errors.Is(err, dateutil.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMember godoc
// @Summary      Delete a member
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /members/{memberID} [delete]
func (h *Handler) DeleteMember(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), gymID, memberID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// ExtendMembership godoc
// @Summary      Extend membership by whole months
// @Description  Manual extension without a payment record. Extends from the later of today and the current expiry.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int                      true  "Member ID"
// @Param        request   body      ExtendMembershipRequest  true  "Months to add"
// @Success      200       {object}  Member
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /members/{memberID}/extend [post]
func (h *Handler) ExtendMembership(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req ExtendMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.Extend(c.Request.Context(), gymID, memberID, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, ErrInvalidMonths):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Months must be at least 1"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extend membership"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// ExpiredMembersReport godoc
// @Summary      Expired members report
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ExpiredReportRow
// @Failure      500  {object}  gin.H
// @Router       /members/expired [get]
func (h *Handler) ExpiredMembersReport(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	rows, err := h.service.ExpiredReport(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build expired members report"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
