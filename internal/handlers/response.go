package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/apperr"
)

type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    any  `json:"meta,omitempty"`
}

// RespondError maps the error's kind to an HTTP status and a stable code.
// Internal detail stays out of the body; the user-facing message comes
// from the kind.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := apperr.UserMessage(kind)
	// Validation messages are written for the client; pass them through.
	if kind == apperr.KindValidation {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Message != "" {
			message = ae.Message
		}
	}
	c.JSON(apperr.HTTPStatus(kind), ErrorEnvelope{
		Error: APIError{
			Message: message,
			Code:    string(kind),
			Details: apperr.DetailsOf(err),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, SuccessEnvelope{Success: true, Data: payload})
}

// RespondOKWithMeta keeps the domain object in data and request-scoped
// bookkeeping (ids, remaining credits) in meta.
func RespondOKWithMeta(c *gin.Context, payload, meta any) {
	c.JSON(http.StatusOK, SuccessEnvelope{Success: true, Data: payload, Meta: meta})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, SuccessEnvelope{Success: true, Data: payload})
}
