package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, document *types.Document) (*types.Document, error)
	GetByID(ctx context.Context, tx *gorm.DB, documentID, userID uuid.UUID) (*types.Document, error)
	ListByIdea(ctx context.Context, tx *gorm.DB, ideaID, userID uuid.UUID) ([]*types.Document, error)
	Delete(ctx context.Context, tx *gorm.DB, documentID, userID uuid.UUID) (int64, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (dr *documentRepo) Create(ctx context.Context, tx *gorm.DB, document *types.Document) (*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

func (dr *documentRepo) GetByID(ctx context.Context, tx *gorm.DB, documentID, userID uuid.UUID) (*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Document
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", documentID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *documentRepo) ListByIdea(ctx context.Context, tx *gorm.DB, ideaID, userID uuid.UUID) ([]*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Document
	if err := transaction.WithContext(ctx).
		Where("idea_id = ? AND user_id = ?", ideaID, userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes a single document row. The parent idea is never touched.
func (dr *documentRepo) Delete(ctx context.Context, tx *gorm.DB, documentID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", documentID, userID).
		Delete(&types.Document{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
