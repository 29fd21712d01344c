package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"geocortex/internal/handlers"
	"geocortex/internal/middleware"
	"geocortex/internal/repositories"
	"geocortex/internal/services"
	"geocortex/internal/transformers"
	"geocortex/internal/validators"
	"geocortex/pkg/cache"
	"geocortex/pkg/config"
	"geocortex/pkg/database"
	"geocortex/pkg/logger"
	"geocortex/pkg/metrics"
	"geocortex/pkg/nominatim"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	PropertyHandler *handlers.PropertyHandler
	HealthHandler   *handlers.HealthHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server

	mongoClient *mongo.Client
	redisClient *redis.Client
	collection  *mongo.Collection
	geocoder    *nominatim.Client
	stop        context.CancelFunc
}

// Create and initialize a new App instance. On error every resource opened
// so far is released.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize infrastructure
	if err := app.initializeDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initializeCache(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	app.initializeMetrics()
	app.initializeRateLimiter()
	app.initializeGeocoder()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app, nil
}

// initialize the database connection
func (a *App) initializeDatabase(ctx context.Context) error {
	client, err := database.Connect(ctx, a.Config.Database.URI, a.Config.Database.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.mongoClient = client

	db := database.NewMongoDatabase(client.Database(a.Config.Database.DBName))
	a.collection = db.Collection(a.Config.Database.Collection)
	if err := db.EnsureIndexes(ctx, a.Config.Database.Collection); err != nil {
		logger.GlobalLogger.Errorf("Continuing without indexes: %v", err)
	}
	return nil
}

// initialize the Redis cache
func (a *App) initializeCache(ctx context.Context) error {
	client, err := cache.Connect(ctx, cache.Options{
		Addr:        a.Config.RedisAddr(),
		Password:    a.Config.Redis.Password,
		DB:          a.Config.Redis.DB,
		TLSEnabled:  a.Config.Redis.TLSEnabled,
		TLSCertFile: a.Config.Redis.TLSCertFile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	a.redisClient = client
	return nil
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter and its idle-client sweeper
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(a.Config.RateLimit.PerMinute, a.Config.RateLimit.Burst)
	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	go a.RateLimiter.Run(ctx, time.Hour)
}

func (a *App) initializeGeocoder() {
	a.geocoder = nominatim.NewClient(a.Config.Geocoder.BaseURL, a.Config.Geocoder.UserAgent, a.Config.Geocoder.Timeout)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// repositories
	propertyRepo := repositories.NewPropertyRepository(a.collection)
	propertyCache := repositories.NewPropertyCache(
		cache.NewStore(a.redisClient),
		func(ctx context.Context) error { return a.redisClient.Ping(ctx).Err() },
		a.Config.Redis.ListTTL,
		a.Config.Redis.GeocodeTTL,
	)

	// transformers
	recordTrans := transformers.NewRecordTransformer(transformers.DefaultFieldSources)

	// validators
	propertyValidator := validators.NewPropertyValidator()

	// services
	propertyService := services.NewPropertyService(propertyRepo, propertyCache, recordTrans, propertyValidator)
	ingestionService := services.NewIngestionService(propertyService, recordTrans, propertyService.InvalidateCache)
	geocodeService := services.NewGeocodeService(propertyRepo, propertyCache, a.geocoder)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(propertyService, ingestionService, geocodeService, a.Config.Server.MaxUploadBytes)
	a.HealthHandler = handlers.NewHealthHandler(propertyService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.Router.MaxMultipartMemory = a.Config.Server.MaxUploadBytes
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.stop != nil {
		a.stop()
	}
	database.Disconnect(a.mongoClient)
	cache.Close(a.redisClient)
}
