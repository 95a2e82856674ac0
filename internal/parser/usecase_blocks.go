package parser

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

// useCaseSink maps directive blocks onto a use case exercise record.
type useCaseSink struct {
	parser   *Parser
	exercise *domain.UseCaseExercise
	seenMeta bool
}

func (s *useCaseSink) rootName() string           { return "usecase" }
func (s *useCaseSink) hasTitle() bool             { return s.exercise.Title != "" }
func (s *useCaseSink) setTitle(title string)      { s.exercise.Title = title }
func (s *useCaseSink) setDescription(desc string) { s.exercise.Description = desc }

func (s *useCaseSink) consume(d *directive, content string) error {
	switch d.name {
	case "usecase":
		if s.seenMeta {
			return &DuplicateBlockError{BlockType: "usecase"}
		}
		s.seenMeta = true
		return parseUseCaseMetadata(&s.exercise.Metadata, content)
	case "scenario":
		s.exercise.Scenario = parseScenarioBlock(content)
		return nil
	case "prompt":
		s.exercise.Prompt = parsePromptBlock(content)
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
	case "evaluation":
		eval, err := parseEvaluationBlock(content)
		if err != nil {
			return err
		}
		s.exercise.Evaluation = *eval
		return nil
	case "sample-answer":
		s.exercise.SampleAnswer = parseSampleAnswerBlock(d.attributes, content)
		return nil
	case "context":
		s.exercise.Context = strings.TrimSpace(content)
		return nil
	case "objectives":
		obj, err := parseObjectivesBlock(content)
		if err != nil {
			return err
		}
		s.exercise.Objectives = obj
		return nil
	default:
		return nil
	}
}

type useCaseMetaDoc struct {
	ID            string   `yaml:"id"`
	Difficulty    string   `yaml:"difficulty"`
	Domain        string   `yaml:"domain"`
	Time          any      `yaml:"time"`
	Prerequisites []string `yaml:"prerequisites"`
}

func parseUseCaseMetadata(meta *domain.UseCaseMetadata, content string) error {
	var doc useCaseMetaDoc
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return &YAMLError{Block: "usecase", Err: err}
	}
	if doc.ID == "" {
		return &MissingFieldError{Block: "usecase", Field: "id"}
	}
	meta.ID = doc.ID
	if doc.Difficulty != "" {
		difficulty, ok := domain.ParseDifficulty(doc.Difficulty)
		if !ok {
			return &InvalidAttributeError{Attribute: "difficulty", Value: doc.Difficulty}
		}
		meta.Difficulty = difficulty
	}
	if doc.Domain != "" {
		dom, ok := domain.ParseUseCaseDomain(doc.Domain)
		if !ok {
			return &InvalidAttributeError{Attribute: "domain", Value: doc.Domain}
		}
		meta.Domain = dom
	}
	meta.TimeMinutes = timeMinutes(doc.Time)
	meta.Prerequisites = doc.Prerequisites
	return nil
}

// parseScenarioBlock splits the body into a YAML-shaped header (organization,
// constraints) and the markdown scenario narrative. Header parse failures are
// tolerated: the header heuristics are best effort and a malformed header
// simply yields an empty organization.
func parseScenarioBlock(content string) domain.Scenario {
	header, body := splitYAMLHeader(content)
	scenario := domain.Scenario{Content: strings.TrimSpace(body)}
	if header != "" {
		var doc struct {
			Organization string   `yaml:"organization"`
			Constraints  []string `yaml:"constraints"`
		}
		if err := yaml.Unmarshal([]byte(header), &doc); err == nil {
			scenario.Organization = doc.Organization
			scenario.Constraints = doc.Constraints
		}
	}
	return scenario
}

func parsePromptBlock(content string) domain.UseCasePrompt {
	header, body := splitYAMLHeader(content)
	prompt := domain.UseCasePrompt{Prompt: strings.TrimSpace(body)}
	if header != "" {
		var doc struct {
			Aspects []string `yaml:"aspects"`
		}
		if err := yaml.Unmarshal([]byte(header), &doc); err == nil {
			prompt.Aspects = doc.Aspects
		}
	}
	return prompt
}

type evaluationDoc struct {
	Criteria []struct {
		Name        string `yaml:"name"`
		Weight      int    `yaml:"weight"`
		Description string `yaml:"description"`
	} `yaml:"criteria"`
	KeyPoints     []string `yaml:"key_points"`
	MinWords      int      `yaml:"min_words"`
	MaxWords      int      `yaml:"max_words"`
	PassThreshold float64  `yaml:"pass_threshold"`
}

func parseEvaluationBlock(content string) (*domain.EvaluationCriteria, error) {
	var doc evaluationDoc
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &YAMLError{Block: "evaluation", Err: err}
	}

	eval := &domain.EvaluationCriteria{
		KeyPoints:     doc.KeyPoints,
		MinWords:      doc.MinWords,
		MaxWords:      doc.MaxWords,
		PassThreshold: doc.PassThreshold,
	}
	for _, c := range doc.Criteria {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		eval.Criteria = append(eval.Criteria, domain.Criterion{
			Name:        name,
			Weight:      c.Weight,
			Description: c.Description,
		})
	}
	return eval, nil
}

// parseSampleAnswerBlock strips a leading "expected_score:" line from the
// body; the remainder is the sample answer markdown.
func parseSampleAnswerBlock(attrs map[string]string, content string) *domain.SampleAnswer {
	answer := &domain.SampleAnswer{Reveal: domain.ParseRevealPolicy(attrs["reveal"])}

	lines := strings.Split(content, "\n")
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "expected_score:"); ok {
			if score, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil {
				answer.ExpectedScore = score
			}
			start = i + 1
		} else if trimmed == "" && start == i {
			start++
		} else {
			break
		}
	}

	answer.Content = strings.TrimSpace(strings.Join(lines[start:], "\n"))
	return answer
}
