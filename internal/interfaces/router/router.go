package router

import (
	appsvc "petsitter-backend/internal/application/applications"
	listsvc "petsitter-backend/internal/application/listings"
	"petsitter-backend/internal/config"
	"petsitter-backend/internal/infrastructure/database"
	apphandler "petsitter-backend/internal/interfaces/handlers/applications"
	healthhandler "petsitter-backend/internal/interfaces/handlers/health"
	listhandler "petsitter-backend/internal/interfaces/handlers/listings"
	"petsitter-backend/internal/middleware"
	"petsitter-backend/internal/seeder"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration, opens the store, runs migrations and seeds demo data.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	db, err := database.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	seeder.Run(db)

	// Redis is optional: rate limiting and the health redis probe degrade
	// gracefully without it.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		IsProduction:   cfg.Env == "production",
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rdb:    rdb,
		Window: cfg.RateLimitWindow,
		Max:    cfg.RateLimitMax,
	}))

	healthHandlers := &healthhandler.Handlers{DB: &gormDBPinger{db: db}, Rdb: rdb}
	app.Get("/health", healthHandlers.JSON)

	listingsService := &listsvc.Service{DB: db}
	listingsHandlers := &listhandler.Handlers{Service: listingsService}
	applicationsService := &appsvc.Service{DB: db}
	applicationsHandlers := &apphandler.Handlers{Service: applicationsService}

	api := app.Group("/api/v1")

	listings := api.Group("/listings")
	listings.Post("/", listingsHandlers.Create)
	listings.Get("/", listingsHandlers.Find)
	listings.Get("/owner/:ownerId", listingsHandlers.FindByOwner)
	listings.Get("/:id/with-applications", listingsHandlers.FindOneWithApplications)
	listings.Get("/:listingId/applications", applicationsHandlers.ByListing)
	listings.Post("/:id/applications", applicationsHandlers.Apply)
	listings.Get("/:id", listingsHandlers.FindOne)

	api.Patch("/applications/:id", applicationsHandlers.UpdateStatus)
	api.Get("/sitters/:sitterId/applications", applicationsHandlers.BySitter)

	return app, db, rdb, nil
}
