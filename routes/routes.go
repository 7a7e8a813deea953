package routes

import (
	"log"
	"net/http"

	"testmaster/handlers"
	"testmaster/middleware"
	"testmaster/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	sessionHandler *handlers.SessionHandler,
	hub *services.Hub,
	sessionService *services.SessionService,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Public quiz routes
		api.GET("/categories", sessionHandler.ListCategories)
		api.GET("/tests", catalogHandler.PublishedTests)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.ResetSession)
			sessions.POST("/:id/answer", sessionHandler.SelectAnswer)
			sessions.POST("/:id/goto", sessionHandler.GoToQuestion)
			sessions.POST("/:id/next", sessionHandler.NextQuestion)
			sessions.POST("/:id/previous", sessionHandler.PreviousQuestion)
			sessions.POST("/:id/submit", sessionHandler.SubmitSession)
			sessions.GET("/:id/score", sessionHandler.GetScore)
		}

		// Protected admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtSecret))
		{
			admin.POST("/auth/logout", authHandler.Logout)
			admin.GET("/stats", catalogHandler.Stats)
			admin.GET("/attempts", catalogHandler.RecentAttempts)

			tests := admin.Group("/tests")
			{
				tests.GET("", catalogHandler.ListTests)
				tests.POST("", catalogHandler.CreateTest)
				tests.GET("/template", catalogHandler.DownloadTemplate)
				tests.GET("/:id", catalogHandler.GetTest)
				tests.PUT("/:id", catalogHandler.UpdateTest)
				tests.DELETE("/:id", catalogHandler.DeleteTest)
				tests.POST("/:id/questions", catalogHandler.AddQuestion)
				tests.POST("/:id/questions/bulk", catalogHandler.AddBulkQuestions)
				tests.POST("/:id/questions/import", catalogHandler.ImportQuestions)
				tests.PUT("/:id/questions/:questionId", catalogHandler.UpdateQuestion)
				tests.DELETE("/:id/questions/:questionId", catalogHandler.DeleteQuestion)
			}
		}
	}

	// WebSocket endpoint for timer updates and state sync
	router.GET("/ws/:sessionID", func(c *gin.Context) {
		sessionID := c.Param("sessionID")

		session, err := sessionService.Get(c.Request.Context(), sessionID)
		if err != nil || session == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn, sessionID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
