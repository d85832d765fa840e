package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type CreditCheck struct {
	Allowed bool   `json:"allowed"`
	Credits int    `json:"credits"`
	Tier    string `json:"tier"`
}

// CreditService is the only mutator of credit balances. One deduction per
// successfully completed billable operation, after the operation's side
// effects succeed.
type CreditService interface {
	// CheckCredits reports whether the user may start a billable operation.
	// Admin tier is always allowed; other tiers need a positive balance.
	CheckCredits(ctx context.Context, userID uuid.UUID) (*CreditCheck, error)
	// DeductCredit consumes one credit. It is idempotent per operationID:
	// a repeated call with the same id returns the current balance without
	// charging again. Admin tier is never charged.
	DeductCredit(ctx context.Context, userID uuid.UUID, operationID string) (int, error)
	// EnsureAccount creates the user's account with the starting grant if
	// it does not exist yet.
	EnsureAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CreditAccount, error)
}

type creditService struct {
	db              *gorm.DB
	log             *logger.Logger
	creditRepo      repos.CreditRepo
	startingCredits int
}

func NewCreditService(db *gorm.DB, log *logger.Logger, creditRepo repos.CreditRepo, startingCredits int) CreditService {
	return &creditService{
		db:              db,
		log:             log.With("service", "CreditService"),
		creditRepo:      creditRepo,
		startingCredits: startingCredits,
	}
}

func (cs *creditService) EnsureAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CreditAccount, error) {
	account, err := cs.creditRepo.GetAccountByUserID(ctx, tx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindPersistence, "load credit account", err)
	}
	account = &types.CreditAccount{
		ID:      uuid.New(),
		UserID:  userID,
		Credits: cs.startingCredits,
		Tier:    types.TierFree,
	}
	created, err := cs.creditRepo.CreateAccount(ctx, tx, account)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "create credit account", err)
	}
	cs.log.Info("Created credit account", "user_id", userID, "credits", created.Credits)
	return created, nil
}

func (cs *creditService) CheckCredits(ctx context.Context, userID uuid.UUID) (*CreditCheck, error) {
	account, err := cs.EnsureAccount(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	allowed := account.Tier == types.TierAdmin || account.Credits > 0
	return &CreditCheck{Allowed: allowed, Credits: account.Credits, Tier: account.Tier}, nil
}

func (cs *creditService) DeductCredit(ctx context.Context, userID uuid.UUID, operationID string) (int, error) {
	if operationID == "" {
		return 0, apperr.New(apperr.KindValidation, "operation id required for deduction")
	}

	var balance int
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replayed operation: already charged, report the current balance.
		if _, err := cs.creditRepo.GetDeductionByOperationID(ctx, tx, operationID); err == nil {
			account, aErr := cs.creditRepo.GetAccountByUserID(ctx, tx, userID)
			if aErr != nil {
				return fmt.Errorf("load account for replayed deduction: %w", aErr)
			}
			balance = account.Credits
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check deduction record: %w", err)
		}

		account, err := cs.creditRepo.GetAccountByUserID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load credit account: %w", err)
		}
		if account.Tier == types.TierAdmin {
			balance = account.Credits
			return nil
		}

		ok, err := cs.creditRepo.DeductIfPositive(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("deduct credit: %w", err)
		}
		if !ok {
			return apperr.New(apperr.KindInsufficientCredits, "no credits remaining").
				WithDetails(map[string]any{"credits": account.Credits, "tier": account.Tier})
		}
		if err := cs.creditRepo.CreateDeduction(ctx, tx, &types.CreditDeduction{
			ID:          uuid.New(),
			UserID:      userID,
			OperationID: operationID,
			CreatedAt:   time.Now(),
		}); err != nil {
			return fmt.Errorf("record deduction: %w", err)
		}
		balance = account.Credits - 1
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInsufficientCredits) {
			return 0, err
		}
		return 0, apperr.Wrap(apperr.KindPersistence, "deduct credit", err)
	}
	return balance, nil
}
