package gym

import (
	"net/http"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo          Repository
	publicBaseURL string
}

func NewHandler(db *sqlx.DB, publicBaseURL string) *Handler {
	return &Handler{
		repo:          NewRepository(db),
		publicBaseURL: publicBaseURL,
	}
}

// GetProfile godoc
// @Summary      Get gym profile
// @Tags         gym
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Gym
// @Failure      404  {object}  gin.H
// @Router       /gym [get]
func (h *Handler) GetProfile(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	g, err := h.repo.GetByID(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gym not found"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// UpdateProfile godoc
// @Summary      Update gym profile
// @Tags         gym
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateGymRequest  true  "Gym profile"
// @Success      200      {object}  Gym
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /gym [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.repo.Update(c.Request.Context(), gymID, req.Name, req.Phone, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gym"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// GetScanURL godoc
// @Summary      Get public attendance check-in URL
// @Description  Returns the URL the gym's attendance QR code should encode.
// @Tags         gym
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  ScanURLResponse
// @Router       /gym/scan-url [get]
func (h *Handler) GetScanURL(c *gin.Context) {
	gymID, ok := auth.GetGymID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gym context missing"})
		return
	}

	c.JSON(http.StatusOK, ScanURLResponse{URL: ScanURL(h.publicBaseURL, gymID)})
}
