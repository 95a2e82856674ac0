package parser

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

const basicExercise = `# Ownership Basics

Learn how ownership moves values.

::: exercise
id: ownership-basics
difficulty: beginner
time: 30 minutes
prerequisites:
  - variables
:::

::: objectives
thinking:
  - Understand move semantics
doing:
  - Fix a borrow error
:::

::: starter file="src/main.rs"
` + "```rust" + `
fn main() {
    let s = String::from("hello");
}
` + "```" + `
:::

::: hint level=2 title="Bigger hint"
Look at the clone method.
:::

::: hint level=1
Think about who owns the string.
:::

::: solution reveal=always
` + "```rust" + `
fn main() {
    let s = String::from("hello");
    println!("{s}");
}
` + "```" + `

### Explanation

The value is used before it is dropped.
:::

::: tests mode=local
` + "```rust" + `
#[test]
fn compiles() {}
` + "```" + `
:::

::: reflection
- What would happen with Copy types?
:::
`

func TestParseBasicExercise(t *testing.T) {
	parsed, err := ParseExercise(basicExercise)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	if parsed.Kind() != domain.KindCode {
		t.Fatalf("Kind() = %q, want %q", parsed.Kind(), domain.KindCode)
	}
	ex := parsed.Code

	if got, want := ex.Title, "Ownership Basics"; got != want {
		t.Errorf("Title = %q, want %q", got, want)
	}
	if got, want := ex.Description, "Learn how ownership moves values."; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
	if got, want := ex.Metadata.ID, "ownership-basics"; got != want {
		t.Errorf("Metadata.ID = %q, want %q", got, want)
	}
	if got, want := ex.Metadata.Difficulty, domain.DifficultyBeginner; got != want {
		t.Errorf("Metadata.Difficulty = %q, want %q", got, want)
	}
	if got, want := ex.Metadata.TimeMinutes, 30; got != want {
		t.Errorf("Metadata.TimeMinutes = %d, want %d", got, want)
	}
	if got, want := len(ex.Metadata.Prerequisites), 1; got != want {
		t.Fatalf("len(Prerequisites) = %d, want %d", got, want)
	}

	if ex.Objectives == nil {
		t.Fatal("Objectives = nil, want populated")
	}
	if got, want := len(ex.Objectives.Thinking), 1; got != want {
		t.Errorf("len(Objectives.Thinking) = %d, want %d", got, want)
	}

	if ex.Starter == nil {
		t.Fatal("Starter = nil, want populated")
	}
	if got, want := ex.Starter.Filename, "src/main.rs"; got != want {
		t.Errorf("Starter.Filename = %q, want %q", got, want)
	}
	if got, want := ex.Starter.Language, "rust"; got != want {
		t.Errorf("Starter.Language = %q, want %q", got, want)
	}

	if ex.Solution == nil {
		t.Fatal("Solution = nil, want populated")
	}
	if got, want := ex.Solution.Reveal, domain.RevealAlways; got != want {
		t.Errorf("Solution.Reveal = %q, want %q", got, want)
	}
	if got, want := ex.Solution.Explanation, "The value is used before it is dropped."; got != want {
		t.Errorf("Solution.Explanation = %q, want %q", got, want)
	}

	if ex.Tests == nil {
		t.Fatal("Tests = nil, want populated")
	}
	if got, want := ex.Tests.Mode, domain.TestModeLocal; got != want {
		t.Errorf("Tests.Mode = %q, want %q", got, want)
	}

	if got, want := len(ex.Reflection), 1; got != want {
		t.Errorf("len(Reflection) = %d, want %d", got, want)
	}
}

func TestHintsSortedByLevel(t *testing.T) {
	markdown := `::: exercise
id: hint-order
:::

::: hint level=3
third
:::

::: hint level=1
first
:::

::: hint level=2
second
:::
`
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	hints := parsed.Code.Hints
	if len(hints) != 3 {
		t.Fatalf("len(Hints) = %d, want 3", len(hints))
	}
	for i, want := range []int{1, 2, 3} {
		if hints[i].Level != want {
			t.Errorf("Hints[%d].Level = %d, want %d", i, hints[i].Level, want)
		}
	}
	if got, want := hints[0].Content, "first"; got != want {
		t.Errorf("Hints[0].Content = %q, want %q", got, want)
	}
}

func TestDirectiveInsideFenceIgnored(t *testing.T) {
	markdown := `# Doc Syntax

Shows how to author exercises.

::: exercise
id: meta-doc
:::

::: starter
` + "```markdown" + `
::: hint level=1
This is how you write a hint.
:::
` + "```" + `
:::
`
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	ex := parsed.Code
	if len(ex.Hints) != 0 {
		t.Errorf("len(Hints) = %d, want 0 (directive inside code fence)", len(ex.Hints))
	}
	if ex.Starter == nil {
		t.Fatal("Starter = nil, want the fenced example captured")
	}
	if got, want := ex.Starter.Language, "markdown"; got != want {
		t.Errorf("Starter.Language = %q, want %q", got, want)
	}
}

func TestDirectiveInsideIndentedCodeIgnored(t *testing.T) {
	markdown := `# Real Exercise

::: exercise
id: real
difficulty: advanced
:::

Example of the block syntax:

    ::: exercise id=fake
    difficulty: beginner
    :::
`
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	ex := parsed.Code
	if got, want := ex.Metadata.ID, "real"; got != want {
		t.Errorf("Metadata.ID = %q, want %q", got, want)
	}
	if got, want := ex.Metadata.Difficulty, domain.DifficultyAdvanced; got != want {
		t.Errorf("Metadata.Difficulty = %q, want %q (indented fake block must not apply)", got, want)
	}
}

func TestDirectiveInsideInlineCodeIgnored(t *testing.T) {
	markdown := "Use `::: exercise` to open a block.\n\n::: usecase\nid: inline-span\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	if parsed.Kind() != domain.KindUseCase {
		t.Errorf("Kind() = %q, want %q", parsed.Kind(), domain.KindUseCase)
	}
}

func TestUnclosedBlockReportsOpeningLine(t *testing.T) {
	markdown := `::: exercise
id: unclosed
:::

::: hint level=1
never closed
`
	_, err := ParseExercise(markdown)
	var unclosed *UnclosedBlockError
	if !errors.As(err, &unclosed) {
		t.Fatalf("ParseExercise() error = %v, want *UnclosedBlockError", err)
	}
	if got, want := unclosed.Block, "hint"; got != want {
		t.Errorf("Block = %q, want %q", got, want)
	}
	if got, want := unclosed.Line, 5; got != want {
		t.Errorf("Line = %d, want %d", got, want)
	}
}

func TestMissingMetadataID(t *testing.T) {
	markdown := `::: exercise
difficulty: beginner
:::
`
	_, err := ParseExercise(markdown)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("ParseExercise() error = %v, want *MissingFieldError", err)
	}
	if got, want := missing.Field, "id"; got != want {
		t.Errorf("Field = %q, want %q", got, want)
	}
}

func TestInvalidDifficulty(t *testing.T) {
	markdown := `::: exercise
id: bad-difficulty
difficulty: impossible
:::
`
	_, err := ParseExercise(markdown)
	var invalid *InvalidAttributeError
	if !errors.As(err, &invalid) {
		t.Fatalf("ParseExercise() error = %v, want *InvalidAttributeError", err)
	}
	if got, want := invalid.Attribute, "difficulty"; got != want {
		t.Errorf("Attribute = %q, want %q", got, want)
	}
}

func TestDuplicateMetadataBlock(t *testing.T) {
	markdown := `::: exercise
id: first
:::

::: exercise
id: second
:::
`
	_, err := ParseExercise(markdown)
	var dup *DuplicateBlockError
	if !errors.As(err, &dup) {
		t.Fatalf("ParseExercise() error = %v, want *DuplicateBlockError", err)
	}
	if got, want := dup.BlockType, "exercise"; got != want {
		t.Errorf("BlockType = %q, want %q", got, want)
	}
}

func TestHintErrors(t *testing.T) {
	t.Run("missing level", func(t *testing.T) {
		markdown := "::: exercise\nid: h\n:::\n\n::: hint\nno level\n:::\n"
		_, err := ParseExercise(markdown)
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("error = %v, want *MissingFieldError", err)
		}
		if got, want := missing.Field, "level"; got != want {
			t.Errorf("Field = %q, want %q", got, want)
		}
	})

	t.Run("non-numeric level", func(t *testing.T) {
		markdown := "::: exercise\nid: h\n:::\n\n::: hint level=abc\nbad\n:::\n"
		_, err := ParseExercise(markdown)
		var invalid *InvalidHintLevelError
		if !errors.As(err, &invalid) {
			t.Fatalf("error = %v, want *InvalidHintLevelError", err)
		}
	})

	t.Run("negative level", func(t *testing.T) {
		markdown := "::: exercise\nid: h\n:::\n\n::: hint level=-1\nbad\n:::\n"
		_, err := ParseExercise(markdown)
		var invalid *InvalidHintLevelError
		if !errors.As(err, &invalid) {
			t.Fatalf("error = %v, want *InvalidHintLevelError", err)
		}
	})

	t.Run("level too large", func(t *testing.T) {
		markdown := "::: exercise\nid: h\n:::\n\n::: hint level=300\nbad\n:::\n"
		_, err := ParseExercise(markdown)
		var invalid *InvalidHintLevelError
		if !errors.As(err, &invalid) {
			t.Fatalf("error = %v, want *InvalidHintLevelError", err)
		}
		if got, want := invalid.Value, "300"; got != want {
			t.Errorf("Value = %q, want %q", got, want)
		}
	})
}

func TestUnknownExerciseType(t *testing.T) {
	_, err := ParseExercise("# Just a chapter\n\nNo directives here.\n")
	if !errors.Is(err, ErrUnknownExerciseType) {
		t.Fatalf("ParseExercise() error = %v, want ErrUnknownExerciseType", err)
	}
}

func TestEmptyStarterDropped(t *testing.T) {
	markdown := "::: exercise\nid: empty-starter\n:::\n\n::: starter\n```rust\n```\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	if parsed.Code.Starter != nil {
		t.Errorf("Starter = %+v, want nil for empty code body", parsed.Code.Starter)
	}
}

func TestAttributePrecedenceOverFence(t *testing.T) {
	markdown := "::: exercise\nid: precedence\n:::\n\n" +
		`::: starter file="src/lib.rs" language=go` + "\n" +
		"```rust,filename=src/main.rs\nfn main() {}\n```\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	starter := parsed.Code.Starter
	if starter == nil {
		t.Fatal("Starter = nil")
	}
	if got, want := starter.Filename, "src/lib.rs"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
	if got, want := starter.Language, "go"; got != want {
		t.Errorf("Language = %q, want %q", got, want)
	}
}

func TestFenceInfoFallbacks(t *testing.T) {
	markdown := "::: exercise\nid: fence-info\n:::\n\n" +
		"::: starter\n```python,filename=app.py\nprint()\n```\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	starter := parsed.Code.Starter
	if got, want := starter.Language, "python"; got != want {
		t.Errorf("Language = %q, want %q", got, want)
	}
	if got, want := starter.Filename, "app.py"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestDefaultLanguage(t *testing.T) {
	p := &Parser{DefaultLanguage: "go"}
	markdown := "::: exercise\nid: default-lang\n:::\n\n::: starter\n```\ncode\n```\n:::\n"
	parsed, err := p.Parse(markdown)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := parsed.Code.Starter.Language, "go"; got != want {
		t.Errorf("Language = %q, want %q", got, want)
	}
}

func TestDescriptionWithoutDirectives(t *testing.T) {
	markdown := "# Title Only\n\nSome trailing prose.\n\n::: exercise\nid: trailing\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	// The metadata directive does not freeze the description; prose after it
	// would still accumulate, and with no further content directives the
	// buffer flushes at end of input.
	if got, want := parsed.Code.Description, "Some trailing prose."; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestLastWinsForRepeatedContentBlocks(t *testing.T) {
	markdown := "::: usecase\nid: last-wins\n:::\n\n" +
		"::: context\nfirst\n:::\n\n::: context\nsecond\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	if got, want := parsed.UseCase.Context, "second"; got != want {
		t.Errorf("Context = %q, want %q", got, want)
	}
}

func TestParseUseCase(t *testing.T) {
	markdown := `# Incident Response

Analyze a production incident.

::: usecase
id: incident-response
difficulty: advanced
domain: financial
time: 2 hours
:::

::: scenario
organization: Meridian Payments
constraints:
  - No customer data may leave the region
  - Rollback must complete within 15 minutes

The settlement pipeline stalled during peak hours.
:::

::: prompt
aspects:
  - Root cause analysis
  - Communication plan

Describe how you would lead the response.
:::

::: evaluation
criteria:
  - name: Technical depth
    weight: 60
    description: Accurate diagnosis
  - weight: 40
key_points:
  - Mentions rollback window
min_words: 200
max_words: 800
pass_threshold: 0.7
:::

::: sample-answer reveal=never
expected_score: 0.9

First, freeze deployments and page the on-call DBA.
:::

::: context
Settlement runs on a sharded ledger.
:::
`
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	uc := parsed.UseCase
	if uc == nil {
		t.Fatal("UseCase = nil")
	}

	if got, want := uc.Metadata.Domain, domain.DomainFinancial; got != want {
		t.Errorf("Metadata.Domain = %q, want %q", got, want)
	}
	if got, want := uc.Metadata.TimeMinutes, 120; got != want {
		t.Errorf("Metadata.TimeMinutes = %d, want %d", got, want)
	}

	if got, want := uc.Scenario.Organization, "Meridian Payments"; got != want {
		t.Errorf("Scenario.Organization = %q, want %q", got, want)
	}
	if got, want := len(uc.Scenario.Constraints), 2; got != want {
		t.Errorf("len(Scenario.Constraints) = %d, want %d", got, want)
	}
	if got, want := uc.Scenario.Content, "The settlement pipeline stalled during peak hours."; got != want {
		t.Errorf("Scenario.Content = %q, want %q", got, want)
	}

	if got, want := uc.Prompt.Prompt, "Describe how you would lead the response."; got != want {
		t.Errorf("Prompt.Prompt = %q, want %q", got, want)
	}
	if got, want := len(uc.Prompt.Aspects), 2; got != want {
		t.Errorf("len(Prompt.Aspects) = %d, want %d", got, want)
	}

	if got, want := len(uc.Evaluation.Criteria), 2; got != want {
		t.Fatalf("len(Evaluation.Criteria) = %d, want %d", got, want)
	}
	if got, want := uc.Evaluation.Criteria[0].Weight, 60; got != want {
		t.Errorf("Criteria[0].Weight = %d, want %d", got, want)
	}
	if got, want := uc.Evaluation.Criteria[1].Name, "Unknown"; got != want {
		t.Errorf("Criteria[1].Name = %q, want %q (nameless criterion default)", got, want)
	}
	if got, want := uc.Evaluation.PassThreshold, 0.7; got != want {
		t.Errorf("PassThreshold = %v, want %v", got, want)
	}

	if uc.SampleAnswer == nil {
		t.Fatal("SampleAnswer = nil")
	}
	if got, want := uc.SampleAnswer.ExpectedScore, 0.9; got != want {
		t.Errorf("SampleAnswer.ExpectedScore = %v, want %v", got, want)
	}
	if got, want := uc.SampleAnswer.Reveal, domain.RevealNever; got != want {
		t.Errorf("SampleAnswer.Reveal = %q, want %q", got, want)
	}
	if got, want := uc.SampleAnswer.Content, "First, freeze deployments and page the on-call DBA."; got != want {
		t.Errorf("SampleAnswer.Content = %q, want %q", got, want)
	}

	if got, want := uc.Context, "Settlement runs on a sharded ledger."; got != want {
		t.Errorf("Context = %q, want %q", got, want)
	}
}

func TestUseCaseWinsOverExercise(t *testing.T) {
	markdown := "::: usecase\nid: both\n:::\n\n::: exercise\nid: ignored\n:::\n"
	parsed, err := ParseExercise(markdown)
	if err != nil {
		t.Fatalf("ParseExercise() error = %v", err)
	}
	if parsed.Kind() != domain.KindUseCase {
		t.Errorf("Kind() = %q, want %q", parsed.Kind(), domain.KindUseCase)
	}
}
