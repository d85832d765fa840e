package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/services"
)

type SpeechHandler struct {
	speechService services.SpeechService
}

func NewSpeechHandler(speechService services.SpeechService) *SpeechHandler {
	return &SpeechHandler{speechService: speechService}
}

func (h *SpeechHandler) Synthesize(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Text   string `json:"text"`
		Locale string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	result, err := h.speechService.Synthesize(c.Request.Context(), userID, req.Text, req.Locale)
	if err != nil {
		RespondError(c, err)
		return
	}
	meta := gin.H{}
	if result.CreditsRemaining != nil {
		meta["credits_remaining"] = *result.CreditsRemaining
	}
	RespondOKWithMeta(c, gin.H{"audio": result.Audio, "mime_type": result.MimeType}, meta)
}
