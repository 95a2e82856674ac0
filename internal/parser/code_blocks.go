package parser

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

// codeSink maps directive blocks onto a coding exercise record.
type codeSink struct {
	parser   *Parser
	exercise *domain.Exercise
	seenMeta bool
}

func (s *codeSink) rootName() string           { return "exercise" }
func (s *codeSink) hasTitle() bool             { return s.exercise.Title != "" }
func (s *codeSink) setTitle(title string)      { s.exercise.Title = title }
func (s *codeSink) setDescription(desc string) { s.exercise.Description = desc }

func (s *codeSink) consume(d *directive, content string) error {
	switch d.name {
	case "exercise":
		if s.seenMeta {
			return &DuplicateBlockError{BlockType: "exercise"}
		}
		s.seenMeta = true
		return parseExerciseMetadata(&s.exercise.Metadata, content)
	case "objectives":
		obj, err := parseObjectivesBlock(content)
		if err != nil {
			return err
		}
		s.exercise.Objectives = obj
		return nil
	case "discussion":
		s.exercise.Discussion = parseMarkdownList(content)
		return nil
	case "starter":
		s.exercise.Starter = s.parser.parseStarterBlock(d.attributes, content)
		return nil
	case "hint":
		hint, err := parseHintBlock(d.attributes, content)
		if err != nil {
			return err
		}
		s.exercise.Hints = append(s.exercise.Hints, *hint)
		sort.SliceStable(s.exercise.Hints, func(i, j int) bool {
			return s.exercise.Hints[i].Level < s.exercise.Hints[j].Level
		})
		return nil
	case "solution":
		s.exercise.Solution = s.parser.parseSolutionBlock(d.attributes, content)
		return nil
	case "tests":
		s.exercise.Tests = s.parser.parseTestsBlock(d.attributes, content)
		return nil
	case "reflection":
		s.exercise.Reflection = parseMarkdownList(content)
		return nil
	default:
		// Unknown directives are skipped for forward compatibility.
		return nil
	}
}

// exerciseMetaDoc is the YAML shape of the "::: exercise" block. Time is
// untyped because authors write both `time: 30` and `time: "2 hours"`.
type exerciseMetaDoc struct {
	ID            string   `yaml:"id"`
	Difficulty    string   `yaml:"difficulty"`
	Time          any      `yaml:"time"`
	Prerequisites []string `yaml:"prerequisites"`
}

func parseExerciseMetadata(meta *domain.ExerciseMetadata, content string) error {
	var doc exerciseMetaDoc
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return &YAMLError{Block: "exercise", Err: err}
	}
	if doc.ID == "" {
		return &MissingFieldError{Block: "exercise", Field: "id"}
	}
	meta.ID = doc.ID
	if doc.Difficulty != "" {
		difficulty, ok := domain.ParseDifficulty(doc.Difficulty)
		if !ok {
			return &InvalidAttributeError{Attribute: "difficulty", Value: doc.Difficulty}
		}
		meta.Difficulty = difficulty
	}
	meta.TimeMinutes = timeMinutes(doc.Time)
	meta.Prerequisites = doc.Prerequisites
	return nil
}

// timeMinutes normalizes the metadata time field, which may be a bare minute
// count or a human string like "2 hours".
func timeMinutes(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case uint64:
		return int(t)
	case string:
		return parseTimeString(t)
	}
	return 0
}

func parseObjectivesBlock(content string) (*domain.Objectives, error) {
	var doc struct {
		Thinking []string `yaml:"thinking"`
		Doing    []string `yaml:"doing"`
	}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &YAMLError{Block: "objectives", Err: err}
	}
	return &domain.Objectives{Thinking: doc.Thinking, Doing: doc.Doing}, nil
}

// parseStarterBlock extracts the starter code. An empty code body drops the
// whole block rather than producing an empty record.
func (p *Parser) parseStarterBlock(attrs map[string]string, content string) *domain.StarterCode {
	info, code := extractCodeBlock(content)
	if strings.TrimSpace(code) == "" {
		return nil
	}

	fenceLang, fenceAttrs := parseFenceInfo(info)
	return &domain.StarterCode{
		Filename: p.resolveFilename(attrs, fenceAttrs),
		Language: p.resolveLanguage(attrs, fenceLang),
		Code:     code,
	}
}

// maxHintLevel bounds the hint level attribute; levels are small ordinals,
// not arbitrary integers.
const maxHintLevel = 255

func parseHintBlock(attrs map[string]string, content string) (*domain.Hint, error) {
	levelStr, ok := attrs["level"]
	if !ok {
		return nil, &MissingFieldError{Block: "hint", Field: "level"}
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 || level > maxHintLevel {
		return nil, &InvalidHintLevelError{Value: levelStr}
	}
	return &domain.Hint{
		Level:   level,
		Title:   attrs["title"],
		Content: strings.TrimSpace(content),
	}, nil
}

func (p *Parser) parseSolutionBlock(attrs map[string]string, content string) *domain.Solution {
	info, code := extractCodeBlock(content)
	if strings.TrimSpace(code) == "" {
		return nil
	}

	fenceLang, _ := parseFenceInfo(info)
	return &domain.Solution{
		Code:        code,
		Language:    p.resolveLanguage(attrs, fenceLang),
		Explanation: extractExplanation(content),
		Reveal:      domain.ParseRevealPolicy(attrs["reveal"]),
	}
}

func (p *Parser) parseTestsBlock(attrs map[string]string, content string) *domain.TestBlock {
	info, code := extractCodeBlock(content)
	if strings.TrimSpace(code) == "" {
		return nil
	}

	fenceLang, _ := parseFenceInfo(info)
	return &domain.TestBlock{
		Language: p.resolveLanguage(attrs, fenceLang),
		Code:     code,
		Mode:     domain.ParseTestMode(attrs["mode"]),
	}
}

// resolveLanguage applies the precedence chain: directive attribute, fence
// info string, configured default.
func (p *Parser) resolveLanguage(attrs map[string]string, fenceLang string) string {
	if lang := attrs["language"]; lang != "" {
		return lang
	}
	if fenceLang != "" {
		return fenceLang
	}
	return p.DefaultLanguage
}

// resolveFilename prefers the directive's file/filename attribute over the
// fence info attributes.
func (p *Parser) resolveFilename(attrs, fenceAttrs map[string]string) string {
	for _, key := range []string{"file", "filename"} {
		if v := attrs[key]; v != "" {
			return v
		}
	}
	for _, key := range []string{"filename", "file"} {
		if v := fenceAttrs[key]; v != "" {
			return v
		}
	}
	return ""
}
