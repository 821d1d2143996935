package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/usecase/reaction"
)

type ReactionHandler struct {
	reactionUseCase *reaction.UseCase
}

func NewReactionHandler(reactionUseCase *reaction.UseCase) *ReactionHandler {
	return &ReactionHandler{
		reactionUseCase: reactionUseCase,
	}
}

type ReactRequest struct {
	ToUserID uuid.UUID `json:"to_user_id" binding:"required"`
	Type     string    `json:"type" binding:"required,oneof=like invitation super_like pass"`
}

type DirectConnectRequest struct {
	ToUserID uuid.UUID `json:"to_user_id" binding:"required"`
}

// React handles POST /reactions
// @Summary React to a profile
// @Tags reactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ReactRequest true "Reaction"
// @Success 200 {object} reaction.ReactResult
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /reactions [post]
func (h *ReactionHandler) React(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.reactionUseCase.React(c.Request.Context(), userID, req.ToUserID, domain.ReactionType(req.Type))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DirectConnect handles POST /reactions/direct
// @Summary Open a conversation directly
// @Tags reactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DirectConnectRequest true "Target user"
// @Success 200 {object} reaction.ConnectResult
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /reactions/direct [post]
func (h *ReactionHandler) DirectConnect(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req DirectConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.reactionUseCase.DirectConnect(c.Request.Context(), userID, req.ToUserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LikesReceived handles GET /reactions/likes-received
// @Summary List profiles that liked me
// @Tags reactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Profile
// @Router /reactions/likes-received [get]
func (h *ReactionHandler) LikesReceived(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	profiles, err := h.reactionUseCase.LikesReceived(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// Connections handles GET /connections
// @Summary List my connections
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Connection
// @Router /connections [get]
func (h *ReactionHandler) Connections(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	connections, err := h.reactionUseCase.Connections(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, connections)
}

// Disconnect handles DELETE /connections/:user_id
// @Summary Remove a connection
// @Tags connections
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /connections/{user_id} [delete]
func (h *ReactionHandler) Disconnect(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	targetID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	if err := h.reactionUseCase.Disconnect(c.Request.Context(), userID, targetID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = queryInt(c, "limit")
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset = queryInt(c, "offset")
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
