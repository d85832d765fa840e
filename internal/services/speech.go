package services

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
)

type SpeechResult struct {
	Audio            string // base64
	MimeType         string
	CreditsRemaining *int
}

// SpeechService turns report text into spoken audio. Synthesis is a
// billable operation and follows the same gate/deduct sequence as
// analysis.
type SpeechService interface {
	Synthesize(ctx context.Context, userID uuid.UUID, text, locale string) (*SpeechResult, error)
}

type speechService struct {
	log            *logger.Logger
	creditService  CreditService
	aiClient       AIClient
	billingEnabled bool
	maxTextLen     int
}

func NewSpeechService(log *logger.Logger, creditService CreditService, aiClient AIClient, billingEnabled bool) SpeechService {
	return &speechService{
		log:            log.With("service", "SpeechService"),
		creditService:  creditService,
		aiClient:       aiClient,
		billingEnabled: billingEnabled,
		maxTextLen:     8000,
	}
}

func (ss *speechService) Synthesize(ctx context.Context, userID uuid.UUID, text, locale string) (*SpeechResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.New(apperr.KindValidation, "text is required")
	}
	if len(text) > ss.maxTextLen {
		return nil, apperr.Newf(apperr.KindValidation, "text exceeds %d characters", ss.maxTextLen)
	}
	loc, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}

	if ss.billingEnabled {
		check, err := ss.creditService.CheckCredits(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !check.Allowed {
			return nil, apperr.New(apperr.KindInsufficientCredits, "no credits remaining").
				WithDetails(map[string]any{"credits": check.Credits, "tier": check.Tier})
		}
	}

	operationID := uuid.New().String()
	audio, mimeType, err := ss.aiClient.GenerateSpeech(ctx, text, loc)
	if err != nil {
		return nil, err
	}

	result := &SpeechResult{
		Audio:    base64.StdEncoding.EncodeToString(audio),
		MimeType: mimeType,
	}
	if ss.billingEnabled {
		if remaining, dErr := ss.creditService.DeductCredit(ctx, userID, operationID); dErr != nil {
			ss.log.Warn("Credit deduction failed after successful synthesis", "user_id", userID, "operation_id", operationID, "error", dErr)
		} else {
			result.CreditsRemaining = &remaining
		}
	}
	return result, nil
}
