package main

import (
	"log"

	"testmaster/config"
	"testmaster/handlers"
	"testmaster/middleware"
	"testmaster/models"
	"testmaster/routes"
	"testmaster/services"
	"testmaster/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(&models.Attempt{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis-backed key-value store
	redisClient := config.InitRedis(cfg)
	kv := storage.NewRedisKV(redisClient)

	// Initialize services
	authService := services.NewAuthService(cfg.AdminPassword, cfg.JWTSecret)
	catalogService := services.NewCatalogService(kv)
	sessionService := services.NewSessionService(kv, db, cfg.QuizDuration)

	// Initialize WebSocket hub (drives the per-session countdown)
	hub := services.NewHub(sessionService)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, sessionService)
	sessionHandler := handlers.NewSessionHandler(sessionService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, catalogHandler, sessionHandler, hub, sessionService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
