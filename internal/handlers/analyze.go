package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/requestdata"
	"github.com/novibenocode/novibe-backend/internal/services"
	"github.com/novibenocode/novibe-backend/internal/types"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// currentUserID pulls the authenticated user out of the request context.
// The auth middleware guarantees it is set on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apperr.New(apperr.KindAuthRequired, "no authenticated user")
	}
	return rd.UserID, nil
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Idea   string `json:"idea"`
		Locale string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	result, err := h.analysisService.AnalyzeIdea(c.Request.Context(), userID, req.Idea, req.Locale)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKWithMeta(c, result.Analysis, analysisMeta(result))
}

func analysisMeta(result *services.AnalysisResult) gin.H {
	meta := gin.H{"idea_id": result.IdeaID, "document_id": result.DocumentID}
	if result.CreditsRemaining != nil {
		meta["credits_remaining"] = *result.CreditsRemaining
	}
	return meta
}

func (h *AnalysisHandler) AnalyzeHackathon(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Submission types.HackathonSubmission `json:"submission"`
		Locale     string                    `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	result, err := h.analysisService.AnalyzeHackathon(c.Request.Context(), userID, req.Submission, req.Locale)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKWithMeta(c, result.Analysis, analysisMeta(result))
}

func (h *AnalysisHandler) GenerateFrankenstein(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		Elements []types.FrankensteinElement `json:"elements"`
		Mode     string                      `json:"mode"`
		Language string                      `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	if req.Mode == "" {
		req.Mode = types.FrankensteinModeCompanies
	}
	result, err := h.analysisService.GenerateFrankenstein(c.Request.Context(), userID, req.Elements, req.Mode, req.Language)
	if err != nil {
		RespondError(c, err)
		return
	}
	meta := gin.H{}
	if result.CreditsRemaining != nil {
		meta["credits_remaining"] = *result.CreditsRemaining
	}
	RespondOKWithMeta(c, result.Idea, meta)
}
