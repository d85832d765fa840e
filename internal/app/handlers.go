package app

import (
	"github.com/novibenocode/novibe-backend/internal/handlers"
	"github.com/novibenocode/novibe-backend/internal/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Analysis *handlers.AnalysisHandler
	Speech   *handlers.SpeechHandler
	Credit   *handlers.CreditHandler
	Idea     *handlers.IdeaHandler
	Document *handlers.DocumentHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		Analysis: handlers.NewAnalysisHandler(services.Analysis),
		Speech:   handlers.NewSpeechHandler(services.Speech),
		Credit:   handlers.NewCreditHandler(services.Credit),
		Idea:     handlers.NewIdeaHandler(services.Idea, services.Document),
		Document: handlers.NewDocumentHandler(services.Document),
	}
}
