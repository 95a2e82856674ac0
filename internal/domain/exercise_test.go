package domain

import (
	"encoding/json"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in     string
		want   Difficulty
		wantOK bool
	}{
		{"beginner", DifficultyBeginner, true},
		{"Intermediate", DifficultyIntermediate, true},
		{"ADVANCED", DifficultyAdvanced, true},
		{"expert", DifficultyBeginner, false},
		{"", DifficultyBeginner, false},
	}
	for _, tt := range tests {
		got, ok := ParseDifficulty(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDifficulty(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseRevealPolicy(t *testing.T) {
	if got := ParseRevealPolicy("Always"); got != RevealAlways {
		t.Errorf("ParseRevealPolicy(Always) = %q", got)
	}
	if got := ParseRevealPolicy("never"); got != RevealNever {
		t.Errorf("ParseRevealPolicy(never) = %q", got)
	}
	// Anything else, including empty and garbage, is on-demand.
	for _, in := range []string{"", "on-demand", "sometimes"} {
		if got := ParseRevealPolicy(in); got != RevealOnDemand {
			t.Errorf("ParseRevealPolicy(%q) = %q, want on-demand", in, got)
		}
	}
}

func TestParseTestMode(t *testing.T) {
	if got := ParseTestMode("local"); got != TestModeLocal {
		t.Errorf("ParseTestMode(local) = %q", got)
	}
	for _, in := range []string{"", "playground", "remote"} {
		if got := ParseTestMode(in); got != TestModePlayground {
			t.Errorf("ParseTestMode(%q) = %q, want playground", in, got)
		}
	}
}

func TestParseUseCaseDomain(t *testing.T) {
	got, ok := ParseUseCaseDomain("Healthcare")
	if !ok || got != DomainHealthcare {
		t.Errorf("ParseUseCaseDomain(Healthcare) = %q, %v", got, ok)
	}
	if _, ok := ParseUseCaseDomain("retail"); ok {
		t.Error("ParseUseCaseDomain(retail) should fail")
	}
}

func TestParsedExerciseAccessors(t *testing.T) {
	code := &ParsedExercise{Code: &Exercise{
		Metadata: ExerciseMetadata{ID: "c1"},
		Title:    "Code Title",
	}}
	if code.Kind() != KindCode || code.ID() != "c1" || code.Title() != "Code Title" {
		t.Errorf("code accessors = %q/%q/%q", code.Kind(), code.ID(), code.Title())
	}

	uc := &ParsedExercise{UseCase: &UseCaseExercise{
		Metadata: UseCaseMetadata{ID: "u1"},
		Title:    "UC Title",
	}}
	if uc.Kind() != KindUseCase || uc.ID() != "u1" || uc.Title() != "UC Title" {
		t.Errorf("usecase accessors = %q/%q/%q", uc.Kind(), uc.ID(), uc.Title())
	}
}

func TestExerciseJSONRoundTrip(t *testing.T) {
	ex := &Exercise{
		Metadata: ExerciseMetadata{
			ID:            "round-trip",
			Difficulty:    DifficultyIntermediate,
			TimeMinutes:   45,
			Prerequisites: []string{"basics"},
		},
		Title:       "Round Trip",
		Description: "desc",
		Hints:       []Hint{{Level: 1, Content: "hint"}},
		Solution:    &Solution{Code: "fn main() {}", Language: "rust", Reveal: RevealOnDemand},
		Tests:       &TestBlock{Code: "t", Language: "rust", Mode: TestModeLocal},
	}

	data, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Exercise
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Metadata.ID != ex.Metadata.ID ||
		decoded.Metadata.TimeMinutes != ex.Metadata.TimeMinutes ||
		decoded.Solution == nil || decoded.Solution.Reveal != RevealOnDemand ||
		decoded.Tests == nil || decoded.Tests.Mode != TestModeLocal ||
		len(decoded.Hints) != 1 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
