package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/usecase/availability"
)

type AvailabilityHandler struct {
	availabilityUseCase *availability.UseCase
}

func NewAvailabilityHandler(availabilityUseCase *availability.UseCase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUseCase: availabilityUseCase,
	}
}

type ActivateModeRequest struct {
	ModeType      string `json:"mode_type" binding:"required,oneof=relaxed spontaneous explorer"`
	DurationHours int    `json:"duration_hours" binding:"required,oneof=24 72"`
}

// Activate handles POST /modes
// @Summary Activate an availability mode
// @Tags modes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ActivateModeRequest true "Mode"
// @Success 200 {object} domain.AvailabilityMode
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /modes [post]
func (h *AvailabilityHandler) Activate(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req ActivateModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	mode, err := h.availabilityUseCase.Activate(c.Request.Context(), userID, domain.AvailabilityModeType(req.ModeType), req.DurationHours)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mode)
}

// Active handles GET /modes/me
// @Summary Get my active availability mode
// @Tags modes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.AvailabilityMode
// @Failure 404 {object} ErrorResponse
// @Router /modes/me [get]
func (h *AvailabilityHandler) Active(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	mode, err := h.availabilityUseCase.Active(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mode)
}

// Deactivate handles DELETE /modes
// @Summary Deactivate my availability mode
// @Tags modes
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /modes [delete]
func (h *AvailabilityHandler) Deactivate(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	if err := h.availabilityUseCase.Deactivate(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
