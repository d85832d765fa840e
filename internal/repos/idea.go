package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/types"
)

// IdeaRepo scopes every read by owner. A lookup for another user's idea
// fails with gorm.ErrRecordNotFound, indistinguishable from a missing row.
type IdeaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, idea *types.Idea) (*types.Idea, error)
	GetByID(ctx context.Context, tx *gorm.DB, ideaID, userID uuid.UUID) (*types.Idea, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Idea, error)
}

type ideaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
	return &ideaRepo{db: db, log: baseLog.With("repo", "IdeaRepo")}
}

func (ir *ideaRepo) Create(ctx context.Context, tx *gorm.DB, idea *types.Idea) (*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

func (ir *ideaRepo) GetByID(ctx context.Context, tx *gorm.DB, ideaID, userID uuid.UUID) (*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Idea
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", ideaID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *ideaRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Idea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Idea
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
