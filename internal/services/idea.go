package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type IdeaService interface {
	// SaveIdea persists an idea outside the analysis pipeline (the explicit
	// "save idea" action, including frankenstein mashups).
	SaveIdea(ctx context.Context, userID uuid.UUID, ideaText, source string) (*types.Idea, error)
	GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*types.Idea, error)
	ListIdeas(ctx context.Context, userID uuid.UUID) ([]*types.Idea, error)
}

type ideaService struct {
	db       *gorm.DB
	log      *logger.Logger
	ideaRepo repos.IdeaRepo
}

func NewIdeaService(db *gorm.DB, log *logger.Logger, ideaRepo repos.IdeaRepo) IdeaService {
	return &ideaService{db: db, log: log.With("service", "IdeaService"), ideaRepo: ideaRepo}
}

func (is *ideaService) SaveIdea(ctx context.Context, userID uuid.UUID, ideaText, source string) (*types.Idea, error) {
	ideaText = strings.TrimSpace(ideaText)
	if ideaText == "" {
		return nil, apperr.New(apperr.KindValidation, "idea text is required")
	}
	switch source {
	case "":
		source = types.IdeaSourceManual
	case types.IdeaSourceManual, types.IdeaSourceFrankenstein:
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unsupported source %q", source)
	}

	idea, err := is.ideaRepo.Create(ctx, nil, &types.Idea{
		ID:       uuid.New(),
		UserID:   userID,
		IdeaText: ideaText,
		Source:   source,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "save idea", err)
	}
	return idea, nil
}

func (is *ideaService) GetIdea(ctx context.Context, userID, ideaID uuid.UUID) (*types.Idea, error) {
	idea, err := is.ideaRepo.GetByID(ctx, nil, ideaID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "idea not found")
		}
		return nil, apperr.Wrap(apperr.KindPersistence, "load idea", err)
	}
	return idea, nil
}

func (is *ideaService) ListIdeas(ctx context.Context, userID uuid.UUID) ([]*types.Idea, error) {
	ideas, err := is.ideaRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list ideas", err)
	}
	return ideas, nil
}
