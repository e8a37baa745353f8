package router

import (
	"log"

	"github.com/gallario/backend/internal/handlers"
	"github.com/gallario/backend/internal/middleware"
	"github.com/gallario/backend/internal/models"
	"github.com/gallario/backend/internal/repositories"
	"github.com/gallario/backend/internal/storage"
	"github.com/gallario/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) error {
	// AutoMigrate models; this also adds any missing columns to existing tables
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	log.Println("Auto-migrations completed for all models.")

	media, err := storage.NewMediaStore(cfg.UploadDir, cfg.AvatarDir)
	if err != nil {
		return err
	}

	// Session resolution runs on every request; handlers needing auth add RequireUser
	e.Use(middleware.SessionAuth(cfg.SessionSecret))
	requireUser := echo.MiddlewareFunc(middleware.RequireUser)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, media, cfg.SessionSecret)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	feedHandler := handlers.NewFeedHandler(postRepo)
	feedHandler.RegisterFeedRoutes(e)
	log.Println("Feed routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, commentRepo, reactionRepo, media)
	postHandler.RegisterPostRoutes(e, requireUser)
	log.Println("Post routes configured.")

	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo)
	reactionHandler.RegisterReactionRoutes(e, requireUser)
	log.Println("Reaction routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(e, requireUser)
	log.Println("Comment routes configured.")

	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, media)
	profileHandler.RegisterProfileRoutes(e, requireUser)
	log.Println("Profile routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(e, requireUser)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}
