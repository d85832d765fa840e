package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type CreditRepo interface {
	CreateAccount(ctx context.Context, tx *gorm.DB, account *types.CreditAccount) (*types.CreditAccount, error)
	GetAccountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CreditAccount, error)
	// DeductIfPositive atomically decrements the balance when it is above
	// zero. It reports whether a row was decremented; two racing requests
	// on a balance of one cannot both succeed.
	DeductIfPositive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
	CreateDeduction(ctx context.Context, tx *gorm.DB, deduction *types.CreditDeduction) error
	GetDeductionByOperationID(ctx context.Context, tx *gorm.DB, operationID string) (*types.CreditDeduction, error)
}

type creditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreditRepo(db *gorm.DB, baseLog *logger.Logger) CreditRepo {
	return &creditRepo{db: db, log: baseLog.With("repo", "CreditRepo")}
}

func (cr *creditRepo) CreateAccount(ctx context.Context, tx *gorm.DB, account *types.CreditAccount) (*types.CreditAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (cr *creditRepo) GetAccountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CreditAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.CreditAccount
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *creditRepo) DeductIfPositive(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.CreditAccount{}).
		Where("user_id = ? AND credits > 0", userID).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (cr *creditRepo) CreateDeduction(ctx context.Context, tx *gorm.DB, deduction *types.CreditDeduction) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(deduction).Error
}

func (cr *creditRepo) GetDeductionByOperationID(ctx context.Context, tx *gorm.DB, operationID string) (*types.CreditDeduction, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.CreditDeduction
	if err := transaction.WithContext(ctx).
		Where("operation_id = ?", operationID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
