package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/logger"
)

// AIClient wraps the generative-AI provider. It performs no retries; retry
// policy, if any, belongs to callers. Misconfiguration (missing API key)
// surfaces at construction time, before any network call.
type AIClient interface {
	// GenerateText sends a prompt and returns the provider's raw text reply.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateSpeech synthesizes spoken audio for text and returns the raw
	// audio bytes plus their mime type.
	GenerateSpeech(ctx context.Context, text string, locale string) ([]byte, string, error)
	// Model reports the configured generation model name, for call logging.
	Model() string
}

type geminiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	ttsModel   string
	httpClient *http.Client
}

func NewGeminiClient(log *logger.Logger) (AIClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, apperr.New(apperr.KindProviderUnavailable, "missing GEMINI_API_KEY")
	}

	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	ttsModel := os.Getenv("GEMINI_TTS_MODEL")
	if ttsModel == "" {
		ttsModel = "gemini-2.5-flash-preview-tts"
	}

	timeoutSec := 180
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &geminiClient{
		log:        log.With("service", "GeminiClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		ttsModel:   ttsModel,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *geminiClient) Model() string {
	return c.model
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature        float64       `json:"temperature,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechGenCfg `json:"speechConfig,omitempty"`
}

type speechGenCfg struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

func (c *geminiClient) do(ctx context.Context, model string, body *generateContentRequest) (*generateContentResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "encode provider request", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "provider request failed", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "read provider response", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Provider returned non-2xx", "model", model, "status", resp.StatusCode, "body", string(raw))
		return nil, apperr.Newf(apperr.KindProvider, "provider http %d", resp.StatusCode)
	}

	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "decode provider response", err)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return nil, apperr.Newf(apperr.KindProvider, "provider blocked prompt: %s", out.PromptFeedback.BlockReason)
	}
	return &out, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := &generateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: 0.2},
	}
	resp, err := c.do(ctx, c.model, req)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", apperr.New(apperr.KindEmptyResponse, "provider returned no usable payload")
	}
	return text.String(), nil
}

func (c *geminiClient) GenerateSpeech(ctx context.Context, text string, locale string) ([]byte, string, error) {
	voice := "Kore"
	if strings.HasPrefix(strings.ToLower(locale), "es") {
		voice = "Puck"
	}
	cfg := &generationConfig{ResponseModalities: []string{"AUDIO"}, SpeechConfig: &speechGenCfg{}}
	cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = voice

	req := &generateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: text}}},
		},
		GenerationConfig: cfg,
	}
	resp, err := c.do(ctx, c.ttsModel, req)
	if err != nil {
		return nil, "", err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				audio, decErr := decodeBase64(part.InlineData.Data)
				if decErr != nil {
					return nil, "", apperr.Wrap(apperr.KindProvider, "decode provider audio", decErr)
				}
				return audio, part.InlineData.MimeType, nil
			}
		}
	}
	return nil, "", apperr.New(apperr.KindEmptyResponse, "provider returned no audio payload")
}

func decodeBase64(data string) ([]byte, error) {
	if out, err := base64.StdEncoding.DecodeString(data); err == nil {
		return out, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
}
