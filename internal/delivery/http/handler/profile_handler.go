package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
}

func NewProfileHandler(profileUseCase *profile.UseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfileRequest is the onboarding payload.
type CreateProfileRequest struct {
	DisplayName  string   `json:"display_name" binding:"required,min=1,max=50"`
	BirthDate    string   `json:"birth_date" binding:"required,dateonly"` // Format: YYYY-MM-DD
	Gender       string   `json:"gender" binding:"required,oneof=homme femme non-binaire autre"`
	Intention    string   `json:"intention" binding:"required,oneof=social dating amical local"`
	Bio          *string  `json:"bio" binding:"omitempty,max=500"`
	Interests    []string `json:"interests" binding:"omitempty,max=10"`
	Photos       []string `json:"photos" binding:"required,min=1,max=6"`
	GenderFilter []string `json:"gender_filter"`
}

type UpdateProfileRequest struct {
	DisplayName    *string  `json:"display_name" binding:"omitempty,min=1,max=50"`
	Intention      *string  `json:"intention" binding:"omitempty,oneof=social dating amical local"`
	Bio            *string  `json:"bio" binding:"omitempty,max=500"`
	Interests      []string `json:"interests" binding:"omitempty,max=10"`
	Photos         []string `json:"photos" binding:"omitempty,min=1,max=6"`
	SearchRadiusKm *int     `json:"search_radius_km" binding:"omitempty,min=1,max=500"`
	MinAgeFilter   *int     `json:"min_age_filter" binding:"omitempty,min=18,max=99"`
	MaxAgeFilter   *int     `json:"max_age_filter" binding:"omitempty,min=18,max=99"`
	GenderFilter   []string `json:"gender_filter"`
}

type UpdateLocationRequest struct {
	Enabled   bool     `json:"enabled"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// CompleteOnboarding handles POST /profile/complete-onboarding
// @Summary Complete onboarding
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Profile creation data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile/complete-onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid birth date"})
		return
	}

	p, err := h.profileUseCase.Create(c.Request.Context(), profile.CreateRequest{
		UserID:       userID,
		DisplayName:  req.DisplayName,
		BirthDate:    birthDate,
		Gender:       domain.Gender(req.Gender),
		Intention:    domain.Intention(req.Intention),
		Bio:          req.Bio,
		Interests:    req.Interests,
		Photos:       req.Photos,
		GenderFilter: req.GenderFilter,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProfileByUserID handles GET /profile/:user_id
// @Summary Get a profile by user id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /profile/{user_id} [get]
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	if _, ok := authedUser(c); !ok {
		return
	}
	targetID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), targetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update data"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := profile.UpdateRequest{
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		Interests:      req.Interests,
		Photos:         req.Photos,
		SearchRadiusKm: req.SearchRadiusKm,
		MinAgeFilter:   req.MinAgeFilter,
		MaxAgeFilter:   req.MaxAgeFilter,
		GenderFilter:   req.GenderFilter,
	}
	if req.Intention != nil {
		intention := domain.Intention(*req.Intention)
		update.Intention = &intention
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), userID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateLocation handles PUT /profile/me/location
// @Summary Update my location
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateLocationRequest true "Location data"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/location [put]
func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.profileUseCase.UpdateLocation(c.Request.Context(), userID, req.Enabled, req.Latitude, req.Longitude); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BlockUser handles POST /profile/:user_id/block
// @Summary Block a user
// @Tags profile
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /profile/{user_id}/block [post]
func (h *ProfileHandler) BlockUser(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	targetID, ok := pathUserID(c, "user_id")
	if !ok {
		return
	}

	if err := h.profileUseCase.Block(c.Request.Context(), userID, targetID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteMyProfile handles DELETE /profile/me
// @Summary Delete my profile
// @Tags profile
// @Security BearerAuth
// @Success 204
// @Router /profile/me [delete]
func (h *ProfileHandler) DeleteMyProfile(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
