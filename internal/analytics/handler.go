package analytics

import (
	"net/http"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/attendance"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/payment"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{service: NewService(
		member.NewRepository(db),
		plan.NewRepository(db),
		payment.NewRepository(db),
		attendance.NewRepository(db),
	)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// Advanced godoc
// @Summary      Peak hours, engagement, trends, forecast and retention
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  AdvancedAnalytics
// @Failure      500  {object}  gin.H
// @Router       /analytics/advanced [get]
func (h *Handler) Advanced(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	result, err := h.service.Advanced(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Dashboard godoc
// @Summary      Dashboard overview
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  DashboardOverview
// @Failure      500  {object}  gin.H
// @Router       /analytics/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	overview, err := h.service.Dashboard(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
