package types

import (
	"fmt"
	"math"
)

// RubricCriterionCount is the fixed size of the viability scoring rubric.
const RubricCriterionCount = 5

type ScoreCriterion struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"` // 1-5
	Justification string  `json:"justification"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difference  string `json:"difference,omitempty"`
}

type FounderQuestion struct {
	Question string `json:"question"`
	Analysis string `json:"analysis"`
}

// Analysis is the parsed result of one AI viability analysis. It is stored
// as the content of a Document and never persisted on its own.
type Analysis struct {
	ScoringRubric          []ScoreCriterion  `json:"scoringRubric"`
	SWOT                   SWOT              `json:"swot"`
	Competitors            []Competitor      `json:"competitors"`
	MonetizationStrategies []string          `json:"monetizationStrategies"`
	FounderQuestions       []FounderQuestion `json:"founderQuestions"`
	FinalScore             float64           `json:"finalScore"`
	FinalScoreExplanation  string            `json:"finalScoreExplanation"`
	ViabilitySummary       string            `json:"viabilitySummary"`
}

// ComputeFinalScore returns the mean of the rubric scores rounded to one
// decimal place.
func ComputeFinalScore(rubric []ScoreCriterion) float64 {
	if len(rubric) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range rubric {
		sum += c.Score
	}
	mean := sum / float64(len(rubric))
	return math.Round(mean*10) / 10
}

// Validate checks the structural invariants of a parsed analysis and
// recomputes FinalScore so it always equals the rubric mean, regardless of
// what the model returned.
func (a *Analysis) Validate() error {
	if len(a.ScoringRubric) != RubricCriterionCount {
		return fmt.Errorf("scoringRubric must have %d criteria, got %d", RubricCriterionCount, len(a.ScoringRubric))
	}
	for i, c := range a.ScoringRubric {
		if c.Name == "" {
			return fmt.Errorf("scoringRubric[%d] missing name", i)
		}
		if c.Score < 1 || c.Score > 5 {
			return fmt.Errorf("scoringRubric[%d] score %v out of range 1-5", i, c.Score)
		}
	}
	if a.ViabilitySummary == "" {
		return fmt.Errorf("missing viabilitySummary")
	}
	a.FinalScore = ComputeFinalScore(a.ScoringRubric)
	return nil
}
