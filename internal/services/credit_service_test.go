package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

func TestEnsureAccountGrantsStartingCredits(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	cs := NewCreditService(db, log, repos.NewCreditRepo(db, log), 3)
	userID := uuid.New()

	account, err := cs.EnsureAccount(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("EnsureAccount: %v", err)
	}
	if account.Credits != 3 {
		t.Fatalf("credits = %d, want 3", account.Credits)
	}
	if account.Tier != types.TierFree {
		t.Fatalf("tier = %q, want %q", account.Tier, types.TierFree)
	}

	// Second call must return the same account, not regrant.
	db.Model(&types.CreditAccount{}).Where("user_id = ?", userID).UpdateColumn("credits", 1)
	again, err := cs.EnsureAccount(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("EnsureAccount again: %v", err)
	}
	if again.Credits != 1 {
		t.Fatalf("credits after regrant check = %d, want 1", again.Credits)
	}
}

func TestCheckCredits(t *testing.T) {
	tests := []struct {
		name    string
		credits int
		tier    string
		allowed bool
	}{
		{"free with credits", 2, types.TierFree, true},
		{"free exhausted", 0, types.TierFree, false},
		{"paid exhausted", 0, types.TierPaid, false},
		{"admin exhausted", 0, types.TierAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			log := newTestLogger(t)
			cs := NewCreditService(db, log, repos.NewCreditRepo(db, log), 3)
			userID := uuid.New()
			seedAccount(t, db, userID, tt.credits, tt.tier)

			check, err := cs.CheckCredits(context.Background(), userID)
			if err != nil {
				t.Fatalf("CheckCredits: %v", err)
			}
			if check.Allowed != tt.allowed {
				t.Fatalf("allowed = %v, want %v", check.Allowed, tt.allowed)
			}
			if check.Credits != tt.credits || check.Tier != tt.tier {
				t.Fatalf("check = %+v", check)
			}
		})
	}
}

func TestDeductCreditIdempotentPerOperation(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	cs := NewCreditService(db, log, repos.NewCreditRepo(db, log), 3)
	userID := uuid.New()
	seedAccount(t, db, userID, 2, types.TierFree)

	opID := uuid.New().String()
	balance, err := cs.DeductCredit(context.Background(), userID, opID)
	if err != nil {
		t.Fatalf("DeductCredit: %v", err)
	}
	if balance != 1 {
		t.Fatalf("balance = %d, want 1", balance)
	}

	// Replay with the same operation id must not charge again.
	balance, err = cs.DeductCredit(context.Background(), userID, opID)
	if err != nil {
		t.Fatalf("DeductCredit replay: %v", err)
	}
	if balance != 1 {
		t.Fatalf("balance after replay = %d, want 1", balance)
	}

	// A fresh operation charges normally.
	balance, err = cs.DeductCredit(context.Background(), userID, uuid.New().String())
	if err != nil {
		t.Fatalf("DeductCredit second op: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}

	_, err = cs.DeductCredit(context.Background(), userID, uuid.New().String())
	if !apperr.Is(err, apperr.KindInsufficientCredits) {
		t.Fatalf("err = %v, want insufficient credits", err)
	}
}

func TestDeductCreditAdminNeverCharged(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	cs := NewCreditService(db, log, repos.NewCreditRepo(db, log), 3)
	userID := uuid.New()
	seedAccount(t, db, userID, 0, types.TierAdmin)

	balance, err := cs.DeductCredit(context.Background(), userID, uuid.New().String())
	if err != nil {
		t.Fatalf("DeductCredit: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}

	var count int64
	db.Model(&types.CreditDeduction{}).Where("user_id = ?", userID).Count(&count)
	if count != 0 {
		t.Fatalf("deduction rows = %d, want 0", count)
	}
}
