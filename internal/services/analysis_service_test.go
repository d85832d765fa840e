package services

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

func newAnalysisService(t *testing.T, db *gorm.DB, log *logger.Logger, client AIClient, billing bool) AnalysisService {
	t.Helper()
	creditRepo := repos.NewCreditRepo(db, log)
	return NewAnalysisService(
		db,
		log,
		repos.NewIdeaRepo(db, log),
		repos.NewDocumentRepo(db, log),
		repos.NewAICallLogRepo(db, log),
		NewCreditService(db, log, creditRepo, 3),
		client,
		billing,
	)
}

func TestAnalyzeIdeaFullPipeline(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := newAnalysisService(t, db, log, NewMockAIClient(), true)
	userID := uuid.New()
	seedAccount(t, db, userID, 3, types.TierFree)

	result, err := svc.AnalyzeIdea(context.Background(), userID, "An app that rates startup ideas", "en")
	if err != nil {
		t.Fatalf("AnalyzeIdea: %v", err)
	}
	if result.Analysis == nil {
		t.Fatal("analysis is nil")
	}
	// Rubric scores 4, 3, 5, 2, 4 average to 3.6.
	if math.Abs(result.Analysis.FinalScore-3.6) > 1e-9 {
		t.Fatalf("finalScore = %v, want 3.6", result.Analysis.FinalScore)
	}
	if len(result.Analysis.ScoringRubric) != 5 {
		t.Fatalf("rubric size = %d, want 5", len(result.Analysis.ScoringRubric))
	}
	if result.CreditsRemaining == nil || *result.CreditsRemaining != 2 {
		t.Fatalf("creditsRemaining = %v, want 2", result.CreditsRemaining)
	}

	// Idea and document were persisted together.
	var idea types.Idea
	if err := db.Where("id = ?", result.IdeaID).First(&idea).Error; err != nil {
		t.Fatalf("load idea: %v", err)
	}
	if idea.Source != types.IdeaSourceManual {
		t.Fatalf("idea source = %q, want manual", idea.Source)
	}
	var document types.Document
	if err := db.Where("id = ?", result.DocumentID).First(&document).Error; err != nil {
		t.Fatalf("load document: %v", err)
	}
	if document.DocumentType != types.DocumentTypeStartupAnalysis {
		t.Fatalf("document type = %q", document.DocumentType)
	}
	var content AnalysisDocumentContent
	if err := json.Unmarshal(document.Content, &content); err != nil {
		t.Fatalf("decode document content: %v", err)
	}
	if content.Submission.IdeaText != "An app that rates startup ideas" {
		t.Fatalf("stored submission = %+v", content.Submission)
	}

	// Exactly one deduction was recorded.
	var deductions int64
	db.Model(&types.CreditDeduction{}).Where("user_id = ?", userID).Count(&deductions)
	if deductions != 1 {
		t.Fatalf("deduction rows = %d, want 1", deductions)
	}
	// The call was audited.
	var calls int64
	db.Model(&types.AICallLog{}).Where("call_type = ?", "startup_analysis").Count(&calls)
	if calls != 1 {
		t.Fatalf("audit rows = %d, want 1", calls)
	}
}

func TestAnalyzeIdeaExhaustedCreditsBlocksBeforeProviderCall(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	client := &scriptedAIClient{reply: mockAnalysisReply}
	svc := newAnalysisService(t, db, log, client, true)
	userID := uuid.New()
	seedAccount(t, db, userID, 0, types.TierFree)

	_, err := svc.AnalyzeIdea(context.Background(), userID, "some idea", "en")
	if !apperr.Is(err, apperr.KindInsufficientCredits) {
		t.Fatalf("err = %v, want insufficient credits", err)
	}
	if client.textCalls != 0 {
		t.Fatalf("provider called %d times, want 0", client.textCalls)
	}
	details := apperr.DetailsOf(err)
	if details == nil {
		t.Fatal("error carries no details")
	}
	if details["tier"] != types.TierFree {
		t.Fatalf("details = %v", details)
	}
}

func TestAnalyzeIdeaAdminBypassesBalance(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := newAnalysisService(t, db, log, NewMockAIClient(), true)
	userID := uuid.New()
	seedAccount(t, db, userID, 0, types.TierAdmin)

	result, err := svc.AnalyzeIdea(context.Background(), userID, "admin idea", "en")
	if err != nil {
		t.Fatalf("AnalyzeIdea: %v", err)
	}
	if result.CreditsRemaining == nil || *result.CreditsRemaining != 0 {
		t.Fatalf("creditsRemaining = %v, want 0", result.CreditsRemaining)
	}
	var deductions int64
	db.Model(&types.CreditDeduction{}).Where("user_id = ?", userID).Count(&deductions)
	if deductions != 0 {
		t.Fatalf("admin was charged: %d deduction rows", deductions)
	}
}

func TestAnalyzeIdeaMalformedReplyPersistsNothingAndChargesNothing(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	client := &scriptedAIClient{reply: "Sorry, I cannot produce that analysis."}
	svc := newAnalysisService(t, db, log, client, true)
	userID := uuid.New()
	seedAccount(t, db, userID, 3, types.TierFree)

	_, err := svc.AnalyzeIdea(context.Background(), userID, "some idea", "en")
	if !apperr.Is(err, apperr.KindMalformedResponse) {
		t.Fatalf("err = %v, want malformed response", err)
	}

	var ideas, documents, deductions int64
	db.Model(&types.Idea{}).Where("user_id = ?", userID).Count(&ideas)
	db.Model(&types.Document{}).Where("user_id = ?", userID).Count(&documents)
	db.Model(&types.CreditDeduction{}).Where("user_id = ?", userID).Count(&deductions)
	if ideas != 0 || documents != 0 || deductions != 0 {
		t.Fatalf("ideas=%d documents=%d deductions=%d, want all 0", ideas, documents, deductions)
	}

	var account types.CreditAccount
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if account.Credits != 3 {
		t.Fatalf("credits = %d, want 3", account.Credits)
	}
}

func TestAnalyzeIdeaValidation(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	client := &scriptedAIClient{reply: mockAnalysisReply}
	svc := newAnalysisService(t, db, log, client, true)
	userID := uuid.New()

	tests := []struct {
		name   string
		idea   string
		locale string
	}{
		{"empty idea", "   ", "en"},
		{"unsupported locale", "an idea", "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeIdea(context.Background(), userID, tt.idea, tt.locale)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("err = %v, want validation", err)
			}
		})
	}
	if client.textCalls != 0 {
		t.Fatalf("provider called %d times on invalid input", client.textCalls)
	}
}

func TestAnalyzeIdeaBillingDisabledSkipsCredits(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := newAnalysisService(t, db, log, NewMockAIClient(), false)
	userID := uuid.New()
	// No account seeded: with billing disabled none is needed.

	result, err := svc.AnalyzeIdea(context.Background(), userID, "free-of-charge idea", "en")
	if err != nil {
		t.Fatalf("AnalyzeIdea: %v", err)
	}
	if result.CreditsRemaining != nil {
		t.Fatalf("creditsRemaining = %v, want nil", *result.CreditsRemaining)
	}
	var accounts int64
	db.Model(&types.CreditAccount{}).Where("user_id = ?", userID).Count(&accounts)
	if accounts != 0 {
		t.Fatalf("account rows = %d, want 0", accounts)
	}
}

func TestAnalyzeHackathon(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := newAnalysisService(t, db, log, NewMockAIClient(), true)
	userID := uuid.New()
	seedAccount(t, db, userID, 1, types.TierFree)

	submission := types.HackathonSubmission{
		ProjectName:      "DeployBot",
		Description:      "An agent that writes release notes.",
		SelectedCategory: types.CategorySkeletonCrew,
	}
	result, err := svc.AnalyzeHackathon(context.Background(), userID, submission, "es")
	if err != nil {
		t.Fatalf("AnalyzeHackathon: %v", err)
	}

	var document types.Document
	if err := db.Where("id = ?", result.DocumentID).First(&document).Error; err != nil {
		t.Fatalf("load document: %v", err)
	}
	if document.DocumentType != types.DocumentTypeHackathonAnalysis {
		t.Fatalf("document type = %q", document.DocumentType)
	}
	var content AnalysisDocumentContent
	if err := json.Unmarshal(document.Content, &content); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if content.Submission.ProjectName != "DeployBot" || content.Submission.Locale != "es" {
		t.Fatalf("stored submission = %+v", content.Submission)
	}

	if _, err := svc.AnalyzeHackathon(context.Background(), userID, types.HackathonSubmission{
		ProjectName:      "NoCategory",
		Description:      "something",
		SelectedCategory: "knitting",
	}, "en"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad category err = %v, want validation", err)
	}
}

func TestGenerateFrankenstein(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := newAnalysisService(t, db, log, NewMockAIClient(), true)
	userID := uuid.New()
	seedAccount(t, db, userID, 2, types.TierFree)

	elements := []types.FrankensteinElement{{Name: "Airbnb"}, {Name: "Duolingo"}}
	result, err := svc.GenerateFrankenstein(context.Background(), userID, elements, types.FrankensteinModeCompanies, "en")
	if err != nil {
		t.Fatalf("GenerateFrankenstein: %v", err)
	}
	if result.Idea == nil || result.Idea.Name == "" {
		t.Fatalf("idea = %+v", result.Idea)
	}
	if result.CreditsRemaining == nil || *result.CreditsRemaining != 1 {
		t.Fatalf("creditsRemaining = %v, want 1", result.CreditsRemaining)
	}

	// Nothing persisted until the user saves the idea explicitly.
	var ideas int64
	db.Model(&types.Idea{}).Where("user_id = ?", userID).Count(&ideas)
	if ideas != 0 {
		t.Fatalf("idea rows = %d, want 0", ideas)
	}

	if _, err := svc.GenerateFrankenstein(context.Background(), userID, nil, types.FrankensteinModeCompanies, "en"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("empty elements err = %v, want validation", err)
	}
	if _, err := svc.GenerateFrankenstein(context.Background(), userID, elements, "chaos", "en"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad mode err = %v, want validation", err)
	}
}

// racingCreditService admits the check but fails the deduction, as when a
// concurrent spender empties the balance between the gate and the settle.
type racingCreditService struct{}

func (racingCreditService) CheckCredits(context.Context, uuid.UUID) (*CreditCheck, error) {
	return &CreditCheck{Allowed: true, Credits: 1, Tier: types.TierFree}, nil
}

func (racingCreditService) DeductCredit(context.Context, uuid.UUID, string) (int, error) {
	return 0, apperr.New(apperr.KindInsufficientCredits, "no credits remaining")
}

func (racingCreditService) EnsureAccount(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.CreditAccount, error) {
	return &types.CreditAccount{Credits: 1, Tier: types.TierFree}, nil
}

func TestAnalyzeIdeaSucceedsWhenDeductionFails(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewAnalysisService(
		db,
		log,
		repos.NewIdeaRepo(db, log),
		repos.NewDocumentRepo(db, log),
		repos.NewAICallLogRepo(db, log),
		racingCreditService{},
		NewMockAIClient(),
		true,
	)
	userID := uuid.New()

	result, err := svc.AnalyzeIdea(context.Background(), userID, "raced idea", "en")
	if err != nil {
		t.Fatalf("AnalyzeIdea: %v", err)
	}
	if result.CreditsRemaining != nil {
		t.Fatalf("creditsRemaining = %v, want nil after failed deduction", *result.CreditsRemaining)
	}
	// The analysis itself was still persisted.
	var documents int64
	db.Model(&types.Document{}).Where("user_id = ?", userID).Count(&documents)
	if documents != 1 {
		t.Fatalf("document rows = %d, want 1", documents)
	}
}
