package payment

import (
	"errors"
	"net/http"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{service: NewService(NewRepository(db), member.NewRepository(db), plan.NewRepository(db))}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// ProcessPayment godoc
// @Summary      Record a payment and extend the membership
// @Description  Whole months only; an amount below one month's rate is rejected without writing anything.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RecordPaymentRequest  true  "Payment data"
// @Success      201      {object}  Result
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /payments [post]
func (h *Handler) ProcessPayment(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ProcessPayment(c.Request.Context(), gymID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, ErrPlanPricingMissing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No active pricing for the member's plan"})
		case errors.Is(err, ErrInsufficientPayment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Amount does not cover a single month at the plan rate"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListPayments godoc
// @Summary      List the gym's payment ledger
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Payment
// @Failure      500  {object}  gin.H
// @Router       /payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	payments, err := h.service.List(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
