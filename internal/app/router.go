package app

import (
	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:    cfg.AllowOrigins,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		AnalysisHandler: handlers.Analysis,
		SpeechHandler:   handlers.Speech,
		CreditHandler:   handlers.Credit,
		IdeaHandler:     handlers.Idea,
		DocumentHandler: handlers.Document,
	})
}
