package services

import (
	"fmt"
	"strings"

	"github.com/novibenocode/novibe-backend/internal/types"
)

// Prompt builders are pure: the same submission and locale always produce
// the same prompt. Each prompt carries an explicit language directive and
// the output schema so the model's reply stays parseable.

const analysisSchemaBlock = `Respond with a single JSON object and nothing else. Schema:
{
  "scoringRubric": [
    {"name": "Problem Severity", "score": 1-5, "justification": "..."},
    {"name": "Market Size", "score": 1-5, "justification": "..."},
    {"name": "Differentiation", "score": 1-5, "justification": "..."},
    {"name": "Feasibility", "score": 1-5, "justification": "..."},
    {"name": "Monetization Potential", "score": 1-5, "justification": "..."}
  ],
  "swot": {"strengths": [...], "weaknesses": [...], "opportunities": [...], "threats": [...]},
  "competitors": [{"name": "...", "description": "...", "difference": "..."}],
  "monetizationStrategies": ["..."],
  "founderQuestions": [{"question": "...", "analysis": "..."}],
  "finalScore": 0.0,
  "finalScoreExplanation": "...",
  "viabilitySummary": "..."
}
The scoringRubric must contain exactly those five criteria in that order.
finalScore is the average of the five scores rounded to one decimal place.`

func languageDirective(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "es":
		return "Write every textual field of the response in Spanish."
	default:
		return "Write every textual field of the response in English."
	}
}

func BuildStartupAnalysisPrompt(ideaText, locale string) string {
	var b strings.Builder
	b.WriteString("You are a seasoned startup analyst. Evaluate the viability of the following startup idea.\n\n")
	b.WriteString("Idea:\n")
	b.WriteString(strings.TrimSpace(ideaText))
	b.WriteString("\n\n")
	b.WriteString("Score each rubric criterion from 1 (very weak) to 5 (very strong), research likely competitors, list realistic monetization strategies, and answer the questions a founder should be asking.\n\n")
	b.WriteString(languageDirective(locale))
	b.WriteString("\n\n")
	b.WriteString(analysisSchemaBlock)
	return b.String()
}

func BuildHackathonAnalysisPrompt(submission types.HackathonSubmission, locale string) string {
	var b strings.Builder
	b.WriteString("You are a hackathon judge. Evaluate the following project submission.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", strings.TrimSpace(submission.ProjectName))
	fmt.Fprintf(&b, "Category: %s\n", submission.SelectedCategory)
	if len(submission.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(submission.Technologies, ", "))
	}
	if submission.TeamSize > 0 {
		fmt.Fprintf(&b, "Team size: %d\n", submission.TeamSize)
	}
	b.WriteString("Description:\n")
	b.WriteString(strings.TrimSpace(submission.Description))
	b.WriteString("\n\n")
	b.WriteString("Judge the project against its category, score each rubric criterion from 1 to 5, and call out what would impress or worry the judging panel.\n\n")
	b.WriteString(languageDirective(locale))
	b.WriteString("\n\n")
	b.WriteString(analysisSchemaBlock)
	return b.String()
}

const frankensteinSchemaBlock = `Respond with a single JSON object and nothing else. Schema:
{
  "name": "...",
  "tagline": "...",
  "description": "...",
  "ingredients": ["which element contributed what"]
}`

func BuildFrankensteinPrompt(elements []types.FrankensteinElement, mode, language string) string {
	var b strings.Builder
	switch mode {
	case types.FrankensteinModeAWS:
		b.WriteString("You are Doctor Frankenstein for cloud architects. Stitch the following AWS services into one coherent, slightly monstrous product idea.\n\n")
	default:
		b.WriteString("You are Doctor Frankenstein for startups. Stitch the following companies into one coherent, slightly monstrous product idea.\n\n")
	}
	b.WriteString("Elements:\n")
	for _, el := range elements {
		if el.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", el.Name, el.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", el.Name)
		}
	}
	b.WriteString("\n")
	b.WriteString("Every element must visibly contribute to the result.\n\n")
	b.WriteString(languageDirective(language))
	b.WriteString("\n\n")
	b.WriteString(frankensteinSchemaBlock)
	return b.String()
}
