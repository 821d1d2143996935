package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shyapp/shy-backend/internal/delivery/http/handler"
	"github.com/shyapp/shy-backend/internal/delivery/http/middleware"
)

type Router struct {
	profileHandler      *handler.ProfileHandler
	discoveryHandler    *handler.DiscoveryHandler
	reactionHandler     *handler.ReactionHandler
	availabilityHandler *handler.AvailabilityHandler
	travelHandler       *handler.TravelHandler
	limitsHandler       *handler.LimitsHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	discoveryHandler *handler.DiscoveryHandler,
	reactionHandler *handler.ReactionHandler,
	availabilityHandler *handler.AvailabilityHandler,
	travelHandler *handler.TravelHandler,
	limitsHandler *handler.LimitsHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:      profileHandler,
		discoveryHandler:    discoveryHandler,
		reactionHandler:     reactionHandler,
		availabilityHandler: availabilityHandler,
		travelHandler:       travelHandler,
		limitsHandler:       limitsHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(r.authMiddleware.RequireAuth())
	{
		// Profile routes
		profile := protected.Group("/profile")
		{
			profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
			profile.GET("/me", r.profileHandler.GetMyProfile)
			profile.PUT("/me", r.profileHandler.UpdateMyProfile)
			profile.PUT("/me/location", r.profileHandler.UpdateLocation)
			profile.DELETE("/me", r.profileHandler.DeleteMyProfile)
			profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			profile.POST("/:user_id/block", r.profileHandler.BlockUser)
		}

		// Discovery feed
		protected.GET("/discovery", r.discoveryHandler.Discover)

		// Reaction routes
		reactions := protected.Group("/reactions")
		{
			reactions.POST("", r.reactionHandler.React)
			reactions.POST("/direct", r.reactionHandler.DirectConnect)
			reactions.GET("/likes-received", r.reactionHandler.LikesReceived)
		}

		// Connection routes
		connections := protected.Group("/connections")
		{
			connections.GET("", r.reactionHandler.Connections)
			connections.DELETE("/:user_id", r.reactionHandler.Disconnect)
		}

		// Availability mode routes
		modes := protected.Group("/modes")
		{
			modes.POST("", r.availabilityHandler.Activate)
			modes.GET("/me", r.availabilityHandler.Active)
			modes.DELETE("", r.availabilityHandler.Deactivate)
		}

		// Travel mode routes
		travel := protected.Group("/travel")
		{
			travel.POST("", r.travelHandler.Activate)
			travel.GET("/me", r.travelHandler.Active)
			travel.DELETE("", r.travelHandler.Deactivate)
			travel.GET("/cities", r.travelHandler.SearchCities)
		}

		// Quota overview
		protected.GET("/limits", r.limitsHandler.Overview)
	}

	return router
}
