package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/services"
)

type CreditHandler struct {
	creditService services.CreditService
}

func NewCreditHandler(creditService services.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

func (h *CreditHandler) Balance(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	check, err := h.creditService.CheckCredits(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"credits": check.Credits, "tier": check.Tier})
}
