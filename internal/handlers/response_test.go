package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/novibenocode/novibe-backend/internal/apperr"
)

func TestRespondErrorMapsKindToStatusAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"auth", apperr.New(apperr.KindAuthRequired, "nope"), http.StatusUnauthorized, "AUTHENTICATION_REQUIRED"},
		{"credits", apperr.New(apperr.KindInsufficientCredits, "no credits remaining"), http.StatusTooManyRequests, "INSUFFICIENT_CREDITS"},
		{"validation", apperr.New(apperr.KindValidation, "idea is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperr.New(apperr.KindNotFound, "gone"), http.StatusNotFound, "NOT_FOUND"},
		{"malformed", apperr.New(apperr.KindMalformedResponse, "bad json"), http.StatusInternalServerError, "MALFORMED_RESPONSE"},
		{"unclassified", http.ErrBodyNotAllowed, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatal("error envelope has success=true")
			}
			if body.Error.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message == "" {
				t.Fatal("empty error message")
			}
		})
	}
}

func TestRespondErrorPassesValidationMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, apperr.New(apperr.KindValidation, "unsupported locale \"fr\""))

	var body ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Message != "unsupported locale \"fr\"" {
		t.Fatalf("message = %q", body.Error.Message)
	}
}

func TestRespondErrorCarriesCreditDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	err := apperr.New(apperr.KindInsufficientCredits, "no credits remaining").
		WithDetails(map[string]any{"credits": 0, "tier": "free"})
	RespondError(c, err)

	var body ErrorEnvelope
	if dErr := json.Unmarshal(rec.Body.Bytes(), &body); dErr != nil {
		t.Fatalf("decode body: %v", dErr)
	}
	if body.Error.Details["tier"] != "free" {
		t.Fatalf("details = %v", body.Error.Details)
	}
}

func TestRespondOKEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondOK(c, gin.H{"credits": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data["credits"] != float64(3) {
		t.Fatalf("body = %+v", body)
	}
}

func TestRespondOKWithMetaEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondOKWithMeta(c, gin.H{"viabilitySummary": "ok"}, gin.H{"credits_remaining": 2})

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Meta    map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success {
		t.Fatal("success = false")
	}
	if body.Data["viabilitySummary"] != "ok" {
		t.Fatalf("data = %v", body.Data)
	}
	if body.Meta["credits_remaining"] != float64(2) {
		t.Fatalf("meta = %v", body.Meta)
	}
}
