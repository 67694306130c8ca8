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

	"arena-comments/internal/config"
	"arena-comments/internal/dblock"
	"arena-comments/internal/handler"
	"arena-comments/internal/middleware"
	"arena-comments/internal/repository"
	"arena-comments/internal/service"
	"arena-comments/internal/service/auth"
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
	go cleanupSessions(repos)

	locks := dblock.Default()
	services := service.NewServices(repos, redis, locks, cfg)
	handlers := handler.NewHandlers(services)

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
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Use(middleware.RequestInfo())

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
	authGroup.Post("/logout", middleware.AuthRequired(authService), h.Auth.Logout)

	threads := v1.Group("/pages/:pageType/:pageKey/comments")
	threads.Get("/", middleware.OptionalAuth(authService), h.Comment.Thread)
	threads.Post("/", middleware.AuthRequired(authService), h.Comment.Post)

	staff := v1.Group("", middleware.AuthRequired(authService), middleware.RequireStaff())
	staff.Get("/audit/recent", h.Audit.Recent)
	staff.Get("/comments/:commentId/revisions", h.Audit.CommentRevisions)
	staff.Post("/users/:userId/mute", h.User.Mute)
	staff.Post("/users/:userId/unmute", h.User.Unmute)
}

// cleanupSessions purges expired and revoked session rows once an hour.
func cleanupSessions(repos *repository.Repositories) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := repos.Session.DeleteExpired(ctx); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
		cancel()
	}
}
