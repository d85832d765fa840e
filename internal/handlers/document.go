package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid document id"))
		return
	}
	document, err := h.documentService.GetDocument(c.Request.Context(), userID, documentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, document)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apperr.New(apperr.KindValidation, "invalid document id"))
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), userID, documentID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": documentID})
}
