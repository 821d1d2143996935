package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/usecase/travel"
)

type TravelHandler struct {
	travelUseCase *travel.UseCase
}

func NewTravelHandler(travelUseCase *travel.UseCase) *TravelHandler {
	return &TravelHandler{
		travelUseCase: travelUseCase,
	}
}

type ActivateTravelRequest struct {
	City        string  `json:"city" binding:"required"`
	Country     string  `json:"country" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"required,min=-180,max=180"`
	ArrivalDate *string `json:"arrival_date" binding:"omitempty,dateonly"` // Format: YYYY-MM-DD
}

// Activate handles POST /travel
// @Summary Activate travel mode
// @Tags travel
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ActivateTravelRequest true "Destination"
// @Success 200 {object} domain.TravelMode
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /travel [post]
func (h *TravelHandler) Activate(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req ActivateTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	activate := travel.ActivateRequest{
		Destination: domain.TravelDestination{
			City:      req.City,
			Country:   req.Country,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
	}
	if req.ArrivalDate != nil {
		arrival, err := time.Parse("2006-01-02", *req.ArrivalDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid arrival date"})
			return
		}
		activate.ArrivalDate = &arrival
	}

	mode, err := h.travelUseCase.Activate(c.Request.Context(), userID, activate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mode)
}

// Active handles GET /travel/me
// @Summary Get my active travel mode
// @Tags travel
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.TravelMode
// @Failure 404 {object} ErrorResponse
// @Router /travel/me [get]
func (h *TravelHandler) Active(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	mode, err := h.travelUseCase.Active(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mode)
}

// Deactivate handles DELETE /travel
// @Summary Deactivate travel mode
// @Tags travel
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /travel [delete]
func (h *TravelHandler) Deactivate(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	if err := h.travelUseCase.Deactivate(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchCities handles GET /travel/cities
// @Summary Search travel destinations
// @Tags travel
// @Security BearerAuth
// @Produce json
// @Param q query string true "City query"
// @Success 200 {array} domain.TravelDestination
// @Failure 400 {object} ErrorResponse
// @Router /travel/cities [get]
func (h *TravelHandler) SearchCities(c *gin.Context) {
	if _, ok := authedUser(c); !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
		return
	}

	destinations, err := h.travelUseCase.SearchDestinations(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, destinations)
}
