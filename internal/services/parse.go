package services

import (
	"encoding/json"
	"strings"

	"github.com/novibenocode/novibe-backend/internal/apperr"
	"github.com/novibenocode/novibe-backend/internal/types"
)

// ExtractJSONObject pulls the JSON object out of a free-form model reply.
// If the reply contains a fenced code block the block's body is used;
// within the candidate text the span from the first '{' to the last '}'
// is taken. The first-{/last-} heuristic can over-capture when narrative
// text itself contains braces; that is a known limitation of the format.
func ExtractJSONObject(raw string) (string, error) {
	candidate := stripFence(raw)

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end < start {
		return "", apperr.New(apperr.KindMalformedResponse, "no JSON object found in model reply")
	}
	return candidate[start : end+1], nil
}

func stripFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	open := strings.Index(trimmed, "```")
	if open == -1 {
		return trimmed
	}
	rest := trimmed[open+3:]
	// Optional language tag on the opening fence line.
	if nl := strings.Index(rest, "\n"); nl != -1 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}") {
			rest = rest[nl+1:]
		}
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// ParseAnalysis parses a model reply into an Analysis. Parse failures are
// classified MalformedResponse so callers can distinguish "the model
// returned an invalid format" from transport failures.
func ParseAnalysis(raw string) (*types.Analysis, error) {
	objText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var analysis types.Analysis
	if err := json.Unmarshal([]byte(objText), &analysis); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "parse analysis JSON", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "validate analysis", err)
	}
	return &analysis, nil
}

// ParseFrankensteinIdea parses a model reply into a FrankensteinIdea.
func ParseFrankensteinIdea(raw string) (*types.FrankensteinIdea, error) {
	objText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var idea types.FrankensteinIdea
	if err := json.Unmarshal([]byte(objText), &idea); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "parse frankenstein JSON", err)
	}
	if idea.Name == "" || idea.Description == "" {
		return nil, apperr.New(apperr.KindMalformedResponse, "frankenstein reply missing required fields")
	}
	return &idea, nil
}
