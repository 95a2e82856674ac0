// Package parser implements the directive-block parsing engine. It scans
// annotated markdown for ::: directives, assembles their YAML, markdown and
// fenced-code payloads, and produces a typed exercise record. Directive-like
// text inside code samples is ignored via a structural pre-pass.
package parser

import (
	"strings"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

// DefaultLanguage is the fallback language tag for code blocks that carry no
// language information of their own.
const DefaultLanguage = "rust"

// Parser parses exercise markdown documents. The zero value is not usable;
// construct with New.
type Parser struct {
	// DefaultLanguage is applied to starter/solution/tests blocks whose
	// fences and attributes specify no language.
	DefaultLanguage string
}

// New creates a parser with default configuration.
func New() *Parser {
	return &Parser{DefaultLanguage: DefaultLanguage}
}

// ParseExercise parses a markdown document with default configuration.
func ParseExercise(markdown string) (*domain.ParsedExercise, error) {
	return New().Parse(markdown)
}

// Parse parses a markdown document containing exercise directives. The
// exercise type is selected by pre-scanning for "::: usecase" and then
// "::: exercise" outside code samples; both the pre-scan and the main
// assembly pass consult the same exclusion ranges, computed once.
func (p *Parser) Parse(markdown string) (*domain.ParsedExercise, error) {
	excluded := findExcludedRanges([]byte(markdown))

	if containsDirective(markdown, "usecase", excluded) {
		exercise := &domain.UseCaseExercise{
			Metadata: domain.UseCaseMetadata{
				Difficulty: domain.DifficultyBeginner,
				Domain:     domain.DomainGeneral,
			},
		}
		sink := &useCaseSink{parser: p, exercise: exercise}
		if err := p.assemble(markdown, excluded, sink); err != nil {
			return nil, err
		}
		return &domain.ParsedExercise{UseCase: exercise}, nil
	}

	if containsDirective(markdown, "exercise", excluded) {
		exercise := &domain.Exercise{
			Metadata: domain.ExerciseMetadata{Difficulty: domain.DifficultyBeginner},
		}
		sink := &codeSink{parser: p, exercise: exercise}
		if err := p.assemble(markdown, excluded, sink); err != nil {
			return nil, err
		}
		return &domain.ParsedExercise{Code: exercise}, nil
	}

	return nil, ErrUnknownExerciseType
}

// containsDirective reports whether a "::: <name>" line occurs outside the
// excluded ranges.
func containsDirective(markdown, name string, excluded []byteRange) bool {
	pattern := "::: " + name
	for offset := 0; offset < len(markdown); {
		raw := nextLine(markdown, offset)
		line := strings.TrimRight(raw, "\r\n")
		lineRange := byteRange{start: offset, end: offset + len(line)}
		offset += len(raw)

		if strings.HasPrefix(strings.TrimSpace(line), pattern) && !isRangeExcluded(lineRange, excluded) {
			return true
		}
	}
	return false
}

// blockSink receives finalized directive blocks during assembly. One
// implementation exists per exercise kind; each maps directive names to its
// record's fields, ignoring unknown names for forward compatibility.
type blockSink interface {
	// rootName is the top-level metadata directive name for this kind.
	rootName() string
	// consume interprets one closed block. Errors abort the whole parse.
	consume(d *directive, content string) error
	hasTitle() bool
	setTitle(title string)
	setDescription(description string)
}

// assemble runs the line-by-line state machine over the document. Directive
// control lines are only recognized outside excluded ranges; excluded lines
// still contribute verbatim to an open block's content. Directive blocks do
// not nest: opening a new directive finalizes the previous one. Prose before
// the first content directive becomes the description, except that the first
// markdown heading is captured once as the title.
func (p *Parser) assemble(markdown string, excluded []byteRange, sink blockSink) error {
	var current *directive
	var blockContent strings.Builder
	var descriptionBuffer strings.Builder
	inDescription := true

	lineNumber := 0
	for offset := 0; offset < len(markdown); {
		raw := nextLine(markdown, offset)
		lineNumber++
		lineRange := byteRange{start: offset, end: offset + len(raw)}
		line := strings.TrimRight(raw, "\r\n")
		isExcluded := isRangeExcluded(lineRange, excluded)
		offset += len(raw)

		if !isExcluded {
			if d := parseDirectiveStart(line, lineNumber); d != nil {
				if current != nil {
					if err := sink.consume(current, blockContent.String()); err != nil {
						return err
					}
				} else if inDescription && d.name != sink.rootName() {
					sink.setDescription(strings.TrimSpace(descriptionBuffer.String()))
					inDescription = false
				}
				current = d
				blockContent.Reset()
				continue
			}

			if strings.TrimSpace(line) == ":::" {
				if current != nil {
					if err := sink.consume(current, blockContent.String()); err != nil {
						return err
					}
					current = nil
					blockContent.Reset()
				}
				continue
			}
		}

		if current != nil {
			blockContent.WriteString(raw)
		} else if inDescription {
			if !sink.hasTitle() && strings.HasPrefix(line, "#") && !isExcluded {
				title := strings.TrimSpace(strings.TrimLeft(line, "#"))
				if title != "" {
					sink.setTitle(title)
					continue
				}
			}
			descriptionBuffer.WriteString(raw)
		}
	}

	if current != nil {
		return &UnclosedBlockError{Block: current.name, Line: current.line}
	}

	if inDescription && descriptionBuffer.Len() > 0 {
		sink.setDescription(strings.TrimSpace(descriptionBuffer.String()))
	}

	return nil
}

// nextLine returns the line starting at offset, including its newline when
// present. Offsets stay exact so exclusion tests line up with the source.
func nextLine(s string, offset int) string {
	rest := s[offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i+1]
	}
	return rest
}
