package domain

import "strings"

// UseCaseExercise is a scenario analysis exercise assembled from directive
// blocks. Unlike a code exercise it has no starter/solution code; the student
// writes a free-text response evaluated against a rubric.
type UseCaseExercise struct {
	Metadata     UseCaseMetadata    `json:"metadata"`
	Title        string             `json:"title,omitempty"`
	Description  string             `json:"description"`
	Scenario     Scenario           `json:"scenario"`
	Prompt       UseCasePrompt      `json:"prompt"`
	Hints        []Hint             `json:"hints,omitempty"`
	Evaluation   EvaluationCriteria `json:"evaluation"`
	SampleAnswer *SampleAnswer      `json:"sample_answer,omitempty"`
	Context      string             `json:"context,omitempty"`
	Objectives   *Objectives        `json:"objectives,omitempty"`
}

// UseCaseMetadata extends exercise metadata with a domain category.
type UseCaseMetadata struct {
	ID            string        `json:"id"`
	Difficulty    Difficulty    `json:"difficulty"`
	Domain        UseCaseDomain `json:"domain"`
	TimeMinutes   int           `json:"time_minutes,omitempty"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
}

// UseCaseDomain categorizes the industry a scenario is drawn from.
type UseCaseDomain string

const (
	DomainGeneral    UseCaseDomain = "general"
	DomainHealthcare UseCaseDomain = "healthcare"
	DomainDefense    UseCaseDomain = "defense"
	DomainFinancial  UseCaseDomain = "financial"
)

// ParseUseCaseDomain parses a domain string case-insensitively.
func ParseUseCaseDomain(s string) (UseCaseDomain, bool) {
	switch strings.ToLower(s) {
	case "general":
		return DomainGeneral, true
	case "healthcare":
		return DomainHealthcare, true
	case "defense":
		return DomainDefense, true
	case "financial":
		return DomainFinancial, true
	}
	return DomainGeneral, false
}

// Scenario sets the stage for a use case.
type Scenario struct {
	Organization string   `json:"organization,omitempty"`
	Content      string   `json:"content"`
	Constraints  []string `json:"constraints,omitempty"`
}

// UseCasePrompt is the task statement plus the aspects an answer must cover.
type UseCasePrompt struct {
	Prompt  string   `json:"prompt"`
	Aspects []string `json:"aspects,omitempty"`
}

// EvaluationCriteria is the rubric for scoring a free-text answer.
type EvaluationCriteria struct {
	Criteria      []Criterion `json:"criteria,omitempty"`
	KeyPoints     []string    `json:"key_points,omitempty"`
	MinWords      int         `json:"min_words,omitempty"`
	MaxWords      int         `json:"max_words,omitempty"`
	PassThreshold float64     `json:"pass_threshold,omitempty"` // 0..1, 0 means unset
}

// Criterion is one weighted rubric entry.
type Criterion struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description,omitempty"`
}

// SampleAnswer is a model response shown behind a reveal control.
type SampleAnswer struct {
	Content       string       `json:"content"`
	ExpectedScore float64      `json:"expected_score,omitempty"`
	Reveal        RevealPolicy `json:"reveal"`
}
