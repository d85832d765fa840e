package app

import (
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Credit   services.CreditService
	Analysis services.AnalysisService
	Speech   services.SpeechService
	Idea     services.IdeaService
	Document services.DocumentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...", "provider_mode", cfg.ProviderMode)

	var aiClient services.AIClient
	billingEnabled := true
	if cfg.ProviderMode == "mock" {
		// Mock runs serve canned replies and bill nothing.
		aiClient = services.NewMockAIClient()
		billingEnabled = false
	} else {
		client, err := services.NewGeminiClient(log)
		if err != nil {
			return Services{}, err
		}
		aiClient = client
	}

	credit := services.NewCreditService(db, log, r.Credit, cfg.StartingCredits)
	auth := services.NewAuthService(db, log, r.User, r.UserToken, credit, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	analysis := services.NewAnalysisService(db, log, r.Idea, r.Document, r.AICallLog, credit, aiClient, billingEnabled)
	speech := services.NewSpeechService(log, credit, aiClient, billingEnabled)
	idea := services.NewIdeaService(db, log, r.Idea)
	document := services.NewDocumentService(db, log, r.Idea, r.Document)

	return Services{
		Auth:     auth,
		Credit:   credit,
		Analysis: analysis,
		Speech:   speech,
		Idea:     idea,
		Document: document,
	}, nil
}
