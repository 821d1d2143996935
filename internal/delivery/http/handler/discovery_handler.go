package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/usecase/discovery"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.UseCase
}

func NewDiscoveryHandler(discoveryUseCase *discovery.UseCase) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUseCase: discoveryUseCase,
	}
}

// Discover handles GET /discovery
// @Summary Get the discovery feed
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param min_age query int false "Minimum age"
// @Param max_age query int false "Maximum age"
// @Param genders query []string false "Gender filter"
// @Param intentions query []string false "Intention filter"
// @Param radius_km query int false "Search radius in km"
// @Success 200 {object} discovery.Feed
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /discovery [get]
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	filters := discovery.Filters{
		MinAge:         queryInt(c, "min_age"),
		MaxAge:         queryInt(c, "max_age"),
		SearchRadiusKm: queryInt(c, "radius_km"),
	}
	for _, g := range c.QueryArray("genders") {
		gender := domain.Gender(g)
		if !gender.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid gender filter"})
			return
		}
		filters.Genders = append(filters.Genders, gender)
	}
	for _, i := range c.QueryArray("intentions") {
		intention := domain.Intention(i)
		if !intention.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid intention filter"})
			return
		}
		filters.Intentions = append(filters.Intentions, intention)
	}

	feed, err := h.discoveryUseCase.Discover(c.Request.Context(), userID, filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
