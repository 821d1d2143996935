package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/shyapp/shy-backend/internal/config"
	"github.com/shyapp/shy-backend/internal/delivery/http"
	"github.com/shyapp/shy-backend/internal/delivery/http/handler"
	"github.com/shyapp/shy-backend/internal/delivery/http/middleware"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/infrastructure/database"
	"github.com/shyapp/shy-backend/internal/infrastructure/geocoding"
	"github.com/shyapp/shy-backend/internal/infrastructure/server"
	"github.com/shyapp/shy-backend/internal/infrastructure/subscription"
	"github.com/shyapp/shy-backend/internal/repository/postgres"
	"github.com/shyapp/shy-backend/internal/usecase/availability"
	"github.com/shyapp/shy-backend/internal/usecase/discovery"
	"github.com/shyapp/shy-backend/internal/usecase/limits"
	"github.com/shyapp/shy-backend/internal/usecase/profile"
	"github.com/shyapp/shy-backend/internal/usecase/reaction"
	"github.com/shyapp/shy-backend/internal/usecase/travel"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Log    *slog.Logger
}

// quotaGate adapts the limits service to the single-error contract the
// reaction usecase consumes.
type quotaGate struct {
	limits *limits.Service
}

func (g quotaGate) CheckAndConsume(ctx context.Context, userID uuid.UUID, action domain.LimitAction) error {
	_, err := g.limits.CheckAndConsume(ctx, userID, action)
	return err
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *slog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis. The plan cache is an optimization; resolution falls
	// back to postgres when Redis is down.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, plan cache disabled", slog.String("error", err.Error()))
		redisClient = nil
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	reactionRepo := postgres.NewReactionRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	travelRepo := postgres.NewTravelRepository(db)
	limitRepo := postgres.NewLimitRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)

	// Initialize collaborator services
	planService := subscription.NewService(subscriptionRepo, redisClient, log)
	geocodingClient := geocoding.NewClient(&cfg.Geocoding)

	// Initialize use cases
	limitsService := limits.NewService(limitRepo, planService, log)

	profileUseCase := profile.NewUseCase(profileRepo, blockRepo, log)

	travelUseCase := travel.NewUseCase(
		travelRepo,
		profileRepo,
		planService,
		geocodingClient,
		log,
	)

	availabilityUseCase := availability.NewUseCase(
		availabilityRepo,
		planService,
		log,
	)

	reactionUseCase := reaction.NewUseCase(
		reactionRepo,
		connectionRepo,
		profileRepo,
		blockRepo,
		quotaGate{limits: limitsService},
		log,
	)

	discoveryUseCase := discovery.NewUseCase(
		profileRepo,
		reactionRepo,
		blockRepo,
		availabilityRepo,
		travelUseCase,
		log,
	)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase)
	reactionHandler := handler.NewReactionHandler(reactionUseCase)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUseCase)
	travelHandler := handler.NewTravelHandler(travelUseCase)
	limitsHandler := handler.NewLimitsHandler(limitsService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		profileHandler,
		discoveryHandler,
		reactionHandler,
		availabilityHandler,
		travelHandler,
		limitsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Log:    log,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", slog.String("error", err.Error()))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
