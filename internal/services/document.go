package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type DocumentService interface {
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*types.Document, error)
	ListByIdea(ctx context.Context, userID, ideaID uuid.UUID) ([]*types.Document, error)
	// DeleteDocument removes one document. The parent idea always survives.
	DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error
}

type documentService struct {
	db           *gorm.DB
	log          *logger.Logger
	ideaRepo     repos.IdeaRepo
	documentRepo repos.DocumentRepo
}

func NewDocumentService(db *gorm.DB, log *logger.Logger, ideaRepo repos.IdeaRepo, documentRepo repos.DocumentRepo) DocumentService {
	return &documentService{
		db:           db,
		log:          log.With("service", "DocumentService"),
		ideaRepo:     ideaRepo,
		documentRepo: documentRepo,
	}
}

func (ds *documentService) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*types.Document, error) {
	document, err := ds.documentRepo.GetByID(ctx, nil, documentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "document not found")
		}
		return nil, apperr.Wrap(apperr.KindPersistence, "load document", err)
	}
	return document, nil
}

func (ds *documentService) ListByIdea(ctx context.Context, userID, ideaID uuid.UUID) ([]*types.Document, error) {
	// Confirm the idea exists for this user so a bad idea id is a 404, not
	// an empty list.
	if _, err := ds.ideaRepo.GetByID(ctx, nil, ideaID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "idea not found")
		}
		return nil, apperr.Wrap(apperr.KindPersistence, "load idea", err)
	}
	documents, err := ds.documentRepo.ListByIdea(ctx, nil, ideaID, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "list documents", err)
	}
	return documents, nil
}

func (ds *documentService) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	affected, err := ds.documentRepo.Delete(ctx, nil, documentID, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "delete document", err)
	}
	if affected == 0 {
		return apperr.New(apperr.KindNotFound, "document not found")
	}
	return nil
}
