package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/services"
)

type IdeaHandler struct {
	ideaService     services.IdeaService
	documentService services.DocumentService
}

func NewIdeaHandler(ideaService services.IdeaService, documentService services.DocumentService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService, documentService: documentService}
}

func (h *IdeaHandler) Save(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req struct {
		IdeaText string `json:"idea_text"`
		Source   string `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
		return
	}
	idea, err := h.ideaService.SaveIdea(c.Request.Context(), userID, req.IdeaText, req.Source)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, idea)
}

func (h *IdeaHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid idea id"))
		return
	}
	idea, err := h.ideaService.GetIdea(c.Request.Context(), userID, ideaID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, idea)
}

func (h *IdeaHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	ideas, err := h.ideaService.ListIdeas(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"ideas": ideas})
}

// Documents lists the analysis documents attached to one idea.
func (h *IdeaHandler) Documents(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid idea id"))
		return
	}
	documents, err := h.documentService.ListByIdea(c.Request.Context(), userID, ideaID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"documents": documents})
}
