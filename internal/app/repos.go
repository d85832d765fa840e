package app

import (
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Idea      repos.IdeaRepo
	Document  repos.DocumentRepo
	Credit    repos.CreditRepo
	AICallLog repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Idea:      repos.NewIdeaRepo(db, log),
		Document:  repos.NewDocumentRepo(db, log),
		Credit:    repos.NewCreditRepo(db, log),
		AICallLog: repos.NewAICallLogRepo(db, log),
	}
}
