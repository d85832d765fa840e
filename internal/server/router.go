package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/handlers"
	"github.com/novibenocode/novibe-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins    []string
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	AnalysisHandler *handlers.AnalysisHandler
	SpeechHandler   *handlers.SpeechHandler
	CreditHandler   *handlers.CreditHandler
	IdeaHandler     *handlers.IdeaHandler
	DocumentHandler *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Analysis pipeline
	protected.POST("/analyze", cfg.AnalysisHandler.Analyze)
	protected.POST("/hackathon/analyze", cfg.AnalysisHandler.AnalyzeHackathon)
	protected.POST("/doctor-frankenstein/generate", cfg.AnalysisHandler.GenerateFrankenstein)
	// Speech
	protected.POST("/tts", cfg.SpeechHandler.Synthesize)
	// Credits
	protected.GET("/credits/balance", cfg.CreditHandler.Balance)
	// Ideas and documents
	protected.POST("/ideas", cfg.IdeaHandler.Save)
	protected.GET("/ideas", cfg.IdeaHandler.List)
	protected.GET("/ideas/:id", cfg.IdeaHandler.Get)
	protected.GET("/ideas/:id/documents", cfg.IdeaHandler.Documents)
	protected.GET("/documents/:id", cfg.DocumentHandler.Get)
	protected.DELETE("/documents/:id", cfg.DocumentHandler.Delete)

	return router
}
