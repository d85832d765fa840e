package types

// Hackathon submission categories.
const (
	CategoryResurrection   = "resurrection"
	CategoryFrankenstein   = "frankenstein"
	CategorySkeletonCrew   = "skeleton-crew"
	CategoryCostumeContest = "costume-contest"
)

func ValidHackathonCategory(category string) bool {
	switch category {
	case CategoryResurrection, CategoryFrankenstein, CategorySkeletonCrew, CategoryCostumeContest:
		return true
	}
	return false
}

type HackathonSubmission struct {
	ProjectName      string   `json:"projectName"`
	Description      string   `json:"description"`
	SelectedCategory string   `json:"selectedCategory"`
	Technologies     []string `json:"technologies,omitempty"`
	TeamSize         int      `json:"teamSize,omitempty"`
}

// Frankenstein generation modes: mash up existing companies, or AWS
// service primitives.
const (
	FrankensteinModeCompanies = "companies"
	FrankensteinModeAWS       = "aws"
)

type FrankensteinElement struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FrankensteinIdea is the generated mashup. It is not persisted by the
// generation call; saving it creates an Idea with source "frankenstein".
type FrankensteinIdea struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}
