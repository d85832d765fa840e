// Package apperr defines the application error taxonomy. Adapter and
// service failures are wrapped into an Error with a Kind; the handler
// boundary maps the Kind to an HTTP status and a user-facing message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindAuthRequired        Kind = "AUTHENTICATION_REQUIRED"
	KindInsufficientCredits Kind = "INSUFFICIENT_CREDITS"
	KindValidation          Kind = "VALIDATION_ERROR"
	KindProviderUnavailable Kind = "PROVIDER_UNAVAILABLE"
	KindProvider            Kind = "PROVIDER_ERROR"
	KindEmptyResponse       Kind = "EMPTY_RESPONSE"
	KindMalformedResponse   Kind = "MALFORMED_RESPONSE"
	KindNotFound            Kind = "NOT_FOUND"
	KindPersistence         Kind = "PERSISTENCE_ERROR"
	KindInternal            Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
	// Details is returned to the client verbatim (e.g. remaining credits
	// on an InsufficientCredits error). Keep it free of internal detail.
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// DetailsOf returns the client-facing details of err, if any.
func DetailsOf(err error) map[string]any {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}

// KindOf returns the Kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the status the API surface returns.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindInsufficientCredits:
		return http.StatusTooManyRequests
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindProviderUnavailable, KindProvider, KindEmptyResponse, KindMalformedResponse, KindPersistence, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the generic client-facing message for a kind. Full
// detail stays in server logs.
func UserMessage(kind Kind) string {
	switch kind {
	case KindAuthRequired:
		return "authentication required"
	case KindInsufficientCredits:
		return "insufficient credits"
	case KindValidation:
		return "invalid request"
	case KindNotFound:
		return "not found"
	case KindProviderUnavailable:
		return "the analysis service is not configured"
	case KindProvider, KindEmptyResponse:
		return "the analysis service is unreachable"
	case KindMalformedResponse:
		return "the model returned an invalid format"
	default:
		return "failed to process request"
	}
}
