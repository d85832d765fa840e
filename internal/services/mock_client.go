package services

import (
	"context"
	"strings"
)

// mockAIClient serves canned replies so the full pipeline can run without
// a provider key. Selected by AI_PROVIDER_MODE=mock; mock runs bill no
// credits.
type mockAIClient struct{}

func NewMockAIClient() AIClient {
	return &mockAIClient{}
}

func (m *mockAIClient) Model() string { return "mock" }

const mockAnalysisReply = "```json\n" + `{
  "scoringRubric": [
    {"name": "Problem Severity", "score": 4, "justification": "Clear pain point for the target audience."},
    {"name": "Market Size", "score": 3, "justification": "Sizable but contested market."},
    {"name": "Differentiation", "score": 5, "justification": "Novel combination of existing capabilities."},
    {"name": "Feasibility", "score": 2, "justification": "Significant build effort for a small team."},
    {"name": "Monetization Potential", "score": 4, "justification": "Several plausible revenue paths."}
  ],
  "swot": {
    "strengths": ["focused scope"],
    "weaknesses": ["unproven demand"],
    "opportunities": ["growing category"],
    "threats": ["incumbent response"]
  },
  "competitors": [{"name": "Example Inc", "description": "established player", "difference": "broader but slower"}],
  "monetizationStrategies": ["subscription", "usage-based pricing"],
  "founderQuestions": [{"question": "Why now?", "analysis": "The enabling technology only recently matured."}],
  "finalScore": 3.6,
  "finalScoreExplanation": "Average of the five rubric scores.",
  "viabilitySummary": "Promising with execution risk."
}` + "\n```"

const mockFrankensteinReply = `{
  "name": "Mock Mashup",
  "tagline": "two ideas stitched together",
  "description": "A deliberately canned mashup used when no provider is configured.",
  "ingredients": ["element one: the body", "element two: the spark"]
}`

func (m *mockAIClient) GenerateText(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Doctor Frankenstein") {
		return mockFrankensteinReply, nil
	}
	return mockAnalysisReply, nil
}

func (m *mockAIClient) GenerateSpeech(_ context.Context, _ string, _ string) ([]byte, string, error) {
	// Minimal silent WAV-ish payload; enough for clients to round-trip.
	return []byte("RIFF mock audio"), "audio/wav", nil
}
