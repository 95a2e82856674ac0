package domain

import "strings"

// ParsedExercise is the result of parsing one exercise document. Exactly one
// of Code or UseCase is set, selected once per document and never mixed.
type ParsedExercise struct {
	Code    *Exercise        `json:"code,omitempty"`
	UseCase *UseCaseExercise `json:"usecase,omitempty"`
}

// Kind returns which variant this record holds.
func (p *ParsedExercise) Kind() ExerciseKind {
	if p.UseCase != nil {
		return KindUseCase
	}
	return KindCode
}

// ID returns the exercise identifier regardless of variant.
func (p *ParsedExercise) ID() string {
	if p.UseCase != nil {
		return p.UseCase.Metadata.ID
	}
	if p.Code != nil {
		return p.Code.Metadata.ID
	}
	return ""
}

// Title returns the captured title regardless of variant, or "".
func (p *ParsedExercise) Title() string {
	if p.UseCase != nil {
		return p.UseCase.Title
	}
	if p.Code != nil {
		return p.Code.Title
	}
	return ""
}

// ExerciseKind distinguishes the two record variants.
type ExerciseKind string

const (
	KindCode    ExerciseKind = "code"
	KindUseCase ExerciseKind = "usecase"
)

// Exercise is a coding exercise assembled from directive blocks.
type Exercise struct {
	Metadata    ExerciseMetadata `json:"metadata"`
	Title       string           `json:"title,omitempty"` // first markdown heading before any directive
	Description string           `json:"description"`     // prose before the first content directive
	Objectives  *Objectives      `json:"objectives,omitempty"`
	Discussion  []string         `json:"discussion,omitempty"`
	Starter     *StarterCode     `json:"starter,omitempty"`
	Hints       []Hint           `json:"hints,omitempty"` // kept sorted ascending by level
	Solution    *Solution        `json:"solution,omitempty"`
	Tests       *TestBlock       `json:"tests,omitempty"`
	Reflection  []string         `json:"reflection,omitempty"`
}

// ExerciseMetadata carries the required id plus optional scheduling fields.
type ExerciseMetadata struct {
	ID            string     `json:"id"`
	Difficulty    Difficulty `json:"difficulty"`
	TimeMinutes   int        `json:"time_minutes,omitempty"` // 0 means unset
	Prerequisites []string   `json:"prerequisites,omitempty"`
}

// Difficulty is an exercise difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty parses a difficulty string case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(s) {
	case "beginner":
		return DifficultyBeginner, true
	case "intermediate":
		return DifficultyIntermediate, true
	case "advanced":
		return DifficultyAdvanced, true
	}
	return DifficultyBeginner, false
}

// Objectives separates conceptual goals from practical ones.
type Objectives struct {
	Thinking []string `json:"thinking,omitempty"`
	Doing    []string `json:"doing,omitempty"`
}

// StarterCode is the code handed to the student.
type StarterCode struct {
	Filename string `json:"filename,omitempty"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Hint is one progressive hint. Hints display in ascending level order.
type Hint struct {
	Level   int    `json:"level"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Solution is the complete solution with an optional explanation.
type Solution struct {
	Code        string       `json:"code"`
	Language    string       `json:"language"`
	Explanation string       `json:"explanation,omitempty"`
	Reveal      RevealPolicy `json:"reveal"`
}

// RevealPolicy controls whether a solution or sample answer starts expanded.
type RevealPolicy string

const (
	RevealOnDemand RevealPolicy = "on-demand"
	RevealAlways   RevealPolicy = "always"
	RevealNever    RevealPolicy = "never"
)

// ParseRevealPolicy maps an attribute value to a policy. Anything that is not
// "always" or "never" (case-insensitive) is on-demand.
func ParseRevealPolicy(s string) RevealPolicy {
	switch strings.ToLower(s) {
	case "always":
		return RevealAlways
	case "never":
		return RevealNever
	}
	return RevealOnDemand
}

// TestBlock is the test code attached to an exercise.
type TestBlock struct {
	Language string   `json:"language"`
	Code     string   `json:"code"`
	Mode     TestMode `json:"mode"`
}

// TestMode says where tests run.
type TestMode string

const (
	// TestModePlayground runs tests in the browser via a playground service.
	TestModePlayground TestMode = "playground"
	// TestModeLocal displays tests for local execution only.
	TestModeLocal TestMode = "local"
)

// ParseTestMode parses a mode attribute; unrecognized values fall back to
// playground silently.
func ParseTestMode(s string) TestMode {
	if strings.ToLower(s) == "local" {
		return TestModeLocal
	}
	return TestModePlayground
}
