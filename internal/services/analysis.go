package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/repos"
	"github.com/novibenocode/novibe-backend/internal/types"
)

// AnalysisResult is what the pipeline hands back to the HTTP layer; the
// handler serializes the Analysis as data and the rest as meta.
type AnalysisResult struct {
	Analysis         *types.Analysis
	IdeaID           uuid.UUID
	DocumentID       uuid.UUID
	CreditsRemaining *int
}

type FrankensteinResult struct {
	Idea             *types.FrankensteinIdea
	CreditsRemaining *int
}

// AnalysisDocumentContent is what a Document's content column stores: the
// parsed analysis plus the submission that produced it.
type AnalysisDocumentContent struct {
	Analysis   *types.Analysis        `json:"analysis"`
	Submission AnalysisSubmissionMeta `json:"submission"`
}

type AnalysisSubmissionMeta struct {
	IdeaText    string `json:"ideaText,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	Category    string `json:"category,omitempty"`
	Locale      string `json:"locale"`
}

// AnalysisService runs the credit-gated analysis pipeline. Every step is
// sequential: credit check, prompt build, provider call, parse, persist,
// deduct. The credit check runs before any provider spend; the deduction
// runs only after the analysis has been produced and persisted.
type AnalysisService interface {
	AnalyzeIdea(ctx context.Context, userID uuid.UUID, ideaText, locale string) (*AnalysisResult, error)
	AnalyzeHackathon(ctx context.Context, userID uuid.UUID, submission types.HackathonSubmission, locale string) (*AnalysisResult, error)
	GenerateFrankenstein(ctx context.Context, userID uuid.UUID, elements []types.FrankensteinElement, mode, language string) (*FrankensteinResult, error)
}

type analysisService struct {
	db             *gorm.DB
	log            *logger.Logger
	ideaRepo       repos.IdeaRepo
	documentRepo   repos.DocumentRepo
	aiCallLogRepo  repos.AICallLogRepo
	creditService  CreditService
	aiClient       AIClient
	billingEnabled bool
}

func NewAnalysisService(
	db *gorm.DB,
	log *logger.Logger,
	ideaRepo repos.IdeaRepo,
	documentRepo repos.DocumentRepo,
	aiCallLogRepo repos.AICallLogRepo,
	creditService CreditService,
	aiClient AIClient,
	billingEnabled bool,
) AnalysisService {
	return &analysisService{
		db:             db,
		log:            log.With("service", "AnalysisService"),
		ideaRepo:       ideaRepo,
		documentRepo:   documentRepo,
		aiCallLogRepo:  aiCallLogRepo,
		creditService:  creditService,
		aiClient:       aiClient,
		billingEnabled: billingEnabled,
	}
}

func normalizeLocale(locale string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "en":
		return "en", nil
	case "es":
		return "es", nil
	default:
		return "", apperr.Newf(apperr.KindValidation, "unsupported locale %q", locale)
	}
}

func (s *analysisService) AnalyzeIdea(ctx context.Context, userID uuid.UUID, ideaText, locale string) (*AnalysisResult, error) {
	ideaText = strings.TrimSpace(ideaText)
	if ideaText == "" {
		return nil, apperr.New(apperr.KindValidation, "idea is required")
	}
	loc, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}

	if err := s.gateCredits(ctx, userID); err != nil {
		return nil, err
	}

	operationID := uuid.New().String()
	prompt := BuildStartupAnalysisPrompt(ideaText, loc)

	raw, err := s.callProvider(ctx, userID, "startup_analysis", prompt)
	if err != nil {
		return nil, err
	}
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	meta := AnalysisSubmissionMeta{IdeaText: ideaText, Locale: loc}
	idea, document, err := s.persistAnalysis(ctx, userID, ideaText, types.IdeaSourceManual, types.DocumentTypeStartupAnalysis, analysis, meta)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{Analysis: analysis, IdeaID: idea.ID, DocumentID: document.ID}
	s.settleCredit(ctx, userID, operationID, result)
	return result, nil
}

func (s *analysisService) AnalyzeHackathon(ctx context.Context, userID uuid.UUID, submission types.HackathonSubmission, locale string) (*AnalysisResult, error) {
	submission.ProjectName = strings.TrimSpace(submission.ProjectName)
	submission.Description = strings.TrimSpace(submission.Description)
	if submission.ProjectName == "" || submission.Description == "" {
		return nil, apperr.New(apperr.KindValidation, "projectName and description are required")
	}
	if !types.ValidHackathonCategory(submission.SelectedCategory) {
		return nil, apperr.Newf(apperr.KindValidation, "unsupported category %q", submission.SelectedCategory)
	}
	loc, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}

	if err := s.gateCredits(ctx, userID); err != nil {
		return nil, err
	}

	operationID := uuid.New().String()
	prompt := BuildHackathonAnalysisPrompt(submission, loc)

	raw, err := s.callProvider(ctx, userID, "hackathon_analysis", prompt)
	if err != nil {
		return nil, err
	}
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	ideaText := fmt.Sprintf("%s: %s", submission.ProjectName, submission.Description)
	meta := AnalysisSubmissionMeta{
		ProjectName: submission.ProjectName,
		Category:    submission.SelectedCategory,
		Locale:      loc,
	}
	idea, document, err := s.persistAnalysis(ctx, userID, ideaText, types.IdeaSourceManual, types.DocumentTypeHackathonAnalysis, analysis, meta)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{Analysis: analysis, IdeaID: idea.ID, DocumentID: document.ID}
	s.settleCredit(ctx, userID, operationID, result)
	return result, nil
}

func (s *analysisService) GenerateFrankenstein(ctx context.Context, userID uuid.UUID, elements []types.FrankensteinElement, mode, language string) (*FrankensteinResult, error) {
	if len(elements) == 0 {
		return nil, apperr.New(apperr.KindValidation, "at least one element is required")
	}
	for i, el := range elements {
		if strings.TrimSpace(el.Name) == "" {
			return nil, apperr.Newf(apperr.KindValidation, "element %d missing name", i)
		}
	}
	if mode != types.FrankensteinModeCompanies && mode != types.FrankensteinModeAWS {
		return nil, apperr.Newf(apperr.KindValidation, "unsupported mode %q", mode)
	}
	loc, err := normalizeLocale(language)
	if err != nil {
		return nil, err
	}

	if err := s.gateCredits(ctx, userID); err != nil {
		return nil, err
	}

	operationID := uuid.New().String()
	prompt := BuildFrankensteinPrompt(elements, mode, loc)

	raw, err := s.callProvider(ctx, userID, "frankenstein_generate", prompt)
	if err != nil {
		return nil, err
	}
	idea, err := ParseFrankensteinIdea(raw)
	if err != nil {
		return nil, err
	}

	result := &FrankensteinResult{Idea: idea}
	if s.billingEnabled {
		if remaining, dErr := s.creditService.DeductCredit(ctx, userID, operationID); dErr != nil {
			s.log.Warn("Credit deduction failed after successful generation", "user_id", userID, "operation_id", operationID, "error", dErr)
		} else {
			result.CreditsRemaining = &remaining
		}
	}
	return result, nil
}

// gateCredits enforces the credit policy before any provider spend.
func (s *analysisService) gateCredits(ctx context.Context, userID uuid.UUID) error {
	if !s.billingEnabled {
		return nil
	}
	check, err := s.creditService.CheckCredits(ctx, userID)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return apperr.New(apperr.KindInsufficientCredits, "no credits remaining").
			WithDetails(map[string]any{"credits": check.Credits, "tier": check.Tier})
	}
	return nil
}

// callProvider invokes the AI client and records the call in the audit log.
// Audit failures are logged, never propagated.
func (s *analysisService) callProvider(ctx context.Context, userID uuid.UUID, callType, prompt string) (string, error) {
	raw, err := s.aiClient.GenerateText(ctx, prompt)

	entry := &types.AICallLog{
		ID:       uuid.New(),
		UserID:   &userID,
		CallType: callType,
		Model:    s.aiClient.Model(),
		Prompt:   prompt,
		Response: raw,
		Success:  err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if logErr := s.aiCallLogRepo.Create(ctx, nil, entry); logErr != nil {
		s.log.Warn("Failed to record AI call log", "call_type", callType, "error", logErr)
	}

	if err != nil {
		return "", err
	}
	return raw, nil
}

// persistAnalysis writes the idea and its document in one transaction.
func (s *analysisService) persistAnalysis(
	ctx context.Context,
	userID uuid.UUID,
	ideaText, source, documentType string,
	analysis *types.Analysis,
	meta AnalysisSubmissionMeta,
) (*types.Idea, *types.Document, error) {
	content, err := json.Marshal(AnalysisDocumentContent{Analysis: analysis, Submission: meta})
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindPersistence, "encode document content", err)
	}

	var idea *types.Idea
	var document *types.Document
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		idea, err = s.ideaRepo.Create(ctx, tx, &types.Idea{
			ID:       uuid.New(),
			UserID:   userID,
			IdeaText: ideaText,
			Source:   source,
		})
		if err != nil {
			return fmt.Errorf("save idea: %w", err)
		}
		document, err = s.documentRepo.Create(ctx, tx, &types.Document{
			ID:           uuid.New(),
			IdeaID:       idea.ID,
			UserID:       userID,
			DocumentType: documentType,
			Content:      content,
		})
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, apperr.Wrap(apperr.KindPersistence, "persist analysis", txErr)
	}
	return idea, document, nil
}

// settleCredit deducts one credit after a successful, persisted analysis.
// A deduction failure here is logged and absorbed: the user already has
// their analysis, and charging is not worth failing the response over.
func (s *analysisService) settleCredit(ctx context.Context, userID uuid.UUID, operationID string, result *AnalysisResult) {
	if !s.billingEnabled {
		return
	}
	remaining, err := s.creditService.DeductCredit(ctx, userID, operationID)
	if err != nil {
		s.log.Warn("Credit deduction failed after successful analysis", "user_id", userID, "operation_id", operationID, "error", err)
		return
	}
	result.CreditsRemaining = &remaining
}
