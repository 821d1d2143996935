package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/usecase/limits"
)

type LimitsHandler struct {
	limitsService *limits.Service
}

func NewLimitsHandler(limitsService *limits.Service) *LimitsHandler {
	return &LimitsHandler{
		limitsService: limitsService,
	}
}

// Overview handles GET /limits
// @Summary Get today's quota usage
// @Tags limits
// @Security BearerAuth
// @Produce json
// @Success 200 {array} limits.Status
// @Router /limits [get]
func (h *LimitsHandler) Overview(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	statuses, err := h.limitsService.Overview(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}
