package parser

import (
	"errors"
	"fmt"
)

// ErrUnknownExerciseType is returned when a document contains neither a
// top-level "::: exercise" nor "::: usecase" directive outside code samples.
var ErrUnknownExerciseType = errors.New("unknown exercise type: must contain either '::: exercise' or '::: usecase'")

// MissingFieldError indicates a required key was absent from a block's
// structured payload (e.g. "id" in the metadata block, "level" on a hint).
type MissingFieldError struct {
	Block string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s block", e.Field, e.Block)
}

// InvalidAttributeError indicates a recognized attribute held a value outside
// its enumerated domain.
type InvalidAttributeError struct {
	Attribute string
	Value     string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid attribute value %q for %q", e.Value, e.Attribute)
}

// UnclosedBlockError indicates end of input was reached with a directive
// still open. Line is the 1-indexed line of the opening directive.
type UnclosedBlockError struct {
	Block string
	Line  int
}

func (e *UnclosedBlockError) Error() string {
	return fmt.Sprintf("unclosed directive block %q starting at line %d", e.Block, e.Line)
}

// DuplicateBlockError indicates a once-only directive appeared twice. The
// only once-only directives are the top-level metadata blocks ("exercise",
// "usecase"); all other blocks are last-wins.
type DuplicateBlockError struct {
	BlockType string
}

func (e *DuplicateBlockError) Error() string {
	return fmt.Sprintf("duplicate block type %q (only one allowed)", e.BlockType)
}

// YAMLError wraps a YAML parse failure with the block it occurred in. The
// underlying yaml.v3 diagnostic is preserved via Unwrap.
type YAMLError struct {
	Block string
	Err   error
}

func (e *YAMLError) Error() string {
	return fmt.Sprintf("yaml parse error in %s block: %v", e.Block, e.Err)
}

func (e *YAMLError) Unwrap() error { return e.Err }

// InvalidHintLevelError indicates a hint's level attribute failed integer
// parsing.
type InvalidHintLevelError struct {
	Value string
}

func (e *InvalidHintLevelError) Error() string {
	return fmt.Sprintf("invalid hint level: %s", e.Value)
}
