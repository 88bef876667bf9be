package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"pasar-kerja/internal/config"
	"pasar-kerja/internal/handler"
	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/repository"
	"pasar-kerja/internal/service"
	"pasar-kerja/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, cfg)
	handlers := handler.NewHandlers(services)

	// Re-create APPLICATION notifications whose write failed after the
	// application row was committed.
	go services.Application.RunReconciler(context.Background(), cfg.ReconcileInterval)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := services.Auth.CleanupExpiredSessions(context.Background()); err != nil {
				log.Printf("session cleanup failed: %v", err)
			}
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Delete("/me", h.Auth.DeactivateAccount)

	jobs := protected.Group("/jobs")
	jobs.Post("/", middleware.RequireRole("poster"), h.Job.Create)
	jobs.Get("/", h.Job.List)
	jobs.Get("/nearby", h.Job.Nearby)
	jobs.Get("/mine", middleware.RequireRole("poster"), h.Job.ListMine)
	jobs.Get("/:jobId", h.Job.Get)
	jobs.Put("/:jobId", middleware.RequireRole("poster"), h.Job.Update)
	jobs.Delete("/:jobId", middleware.RequireRole("poster"), h.Job.Delete)
	jobs.Post("/:jobId/apply", h.Application.Apply)
	jobs.Get("/:jobId/application", h.Application.Status)
	jobs.Get("/:jobId/applications", middleware.RequireRole("poster"), h.Application.ListForJob)

	applications := protected.Group("/applications")
	applications.Get("/", h.Application.ListMine)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/:id/respond", middleware.RequireRole("poster"), h.Notification.Respond)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	audit := protected.Group("/audit")
	audit.Get("/recent", h.Audit.GetRecentActivities)
	audit.Get("/:entityType/:entityId", h.Audit.GetEntityHistory)
}
