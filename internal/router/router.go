package router

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/be2025/memory-wall/backend/internal/handlers"
	"github.com/be2025/memory-wall/backend/internal/middleware"
	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
	"github.com/be2025/memory-wall/backend/internal/services"
	"github.com/be2025/memory-wall/backend/pkg/config"
	"github.com/be2025/memory-wall/backend/pkg/firebase"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.BodyLimit("16M"))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseApp *firebase.App) error {
	// AutoMigrate PostgreSQL models
	if err := db.Postgres.AutoMigrate(&models.ReactionRecord{}); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check and the informational root endpoint - always accessible.
	// The root carries no data operations; everything lives under /api/v1.
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Memory Wall API - data operations live under /api/v1",
		})
	})

	// --- Initialize repositories ---
	memoryRepo, err := newMemoryRepository(cfg, db, firebaseApp)
	if err != nil {
		return err
	}
	log.Printf("Memory repository configured (backend: %s).", cfg.StorageBackend)
	recordRepo := repositories.NewPostgresReactionRecordRepository(db.Postgres)

	// --- Initialize services ---
	normalizer := services.NewImageNormalizer()
	imageStore, err := newImageStore(cfg, firebaseApp, normalizer)
	if err != nil {
		return err
	}
	log.Printf("Image store configured (medium: %s).", imageStore.Medium())

	cache := services.NewFeedCache(db.Redis)
	hub := services.NewNotificationHub()
	submissions := services.NewSubmissionService(memoryRepo, normalizer, imageStore, cache, hub, services.ParseAckPolicy(cfg.SubmitAck))
	feed := services.NewFeedService(memoryRepo, cache)
	ledger := services.NewReactionLedger(memoryRepo, recordRepo, hub)
	admin := services.NewAdminService(memoryRepo, cache)

	// --- API routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.ClientIDMiddleware())

	memoryHandler := handlers.NewMemoryHandler(submissions, feed, memoryRepo)
	memoryHandler.RegisterMemoryRoutes(api)
	log.Println("Memory routes configured.")

	storyHandler := handlers.NewStoryHandler(feed)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	reactionHandler := handlers.NewReactionHandler(ledger, memoryRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	notificationHandler := handlers.NewNotificationHandler(hub)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	adminHandler := handlers.NewAdminHandler(admin, cfg.AdminToken)
	adminHandler.RegisterAdminRoutes(api)
	if cfg.AdminToken == "" {
		log.Println("Admin routes configured (disabled: no ADMIN_TOKEN set).")
	} else {
		log.Println("Admin routes configured.")
	}

	log.Println("All routes configured.")
	return nil
}

// newMemoryRepository selects the memory store backend from configuration.
func newMemoryRepository(cfg *config.Config, db *config.DB, firebaseApp *firebase.App) (repositories.MemoryRepository, error) {
	switch cfg.StorageBackend {
	case "firestore":
		return repositories.NewFirestoreMemoryRepository(firebaseApp.Firestore), nil
	case "mongo":
		return repositories.NewMongoMemoryRepository(db.Mongo.Database("memorywall")), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: %s", cfg.StorageBackend)
	}
}

// newImageStore selects the image storage medium from configuration.
func newImageStore(cfg *config.Config, firebaseApp *firebase.App, normalizer *services.ImageNormalizer) (services.ImageStore, error) {
	switch cfg.ImageStoreMedium {
	case "firebase":
		if firebaseApp.Bucket == nil {
			return nil, fmt.Errorf("IMAGE_STORE=firebase requires FIREBASE_STORAGE_BUCKET")
		}
		return services.NewFirebaseImageStore(firebaseApp.Bucket), nil
	case "cloudinary":
		return services.NewCloudinaryImageStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "inline":
		return services.NewInlineImageStore(normalizer), nil
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE: %s", cfg.ImageStoreMedium)
	}
}
