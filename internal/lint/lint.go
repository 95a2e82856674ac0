// Package lint checks exercise markdown for authoring mistakes that parse
// cleanly but produce broken exercises, such as tests blocks with no code.
package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Violation is one finding in a linted file. Line is 1-indexed and points at
// the offending directive.
type Violation struct {
	File    string
	Line    int
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: %s", v.File, v.Line, v.Message)
}

// Paths lints every markdown file reachable from the given paths. Files are
// linted directly; directories are walked recursively for .md files.
func Paths(paths []string) ([]Violation, error) {
	var violations []Violation
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("lint: %w", err)
		}

		if !info.IsDir() {
			if isMarkdown(path) {
				vs, err := File(path)
				if err != nil {
					return nil, err
				}
				violations = append(violations, vs...)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isMarkdown(p) {
				return nil
			}
			vs, err := File(p)
			if err != nil {
				return err
			}
			violations = append(violations, vs...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("lint: walk %s: %w", path, err)
		}
	}
	return violations, nil
}

// File lints a single markdown file.
func File(path string) ([]Violation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lint: read %s: %w", path, err)
	}
	return Content(path, string(data)), nil
}

// Content lints markdown text. The name is used for reporting only.
func Content(name, content string) []Violation {
	var violations []Violation

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), "::: tests") {
			continue
		}
		directiveLine := i + 1

		sawFence := false
		codeEmpty := true
		for i++; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == ":::" {
				break
			}
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			sawFence = true
			for i++; i < len(lines); i++ {
				inner := strings.TrimSpace(lines[i])
				if strings.HasPrefix(inner, "```") {
					break
				}
				if inner != "" {
					codeEmpty = false
				}
			}
		}

		if !sawFence || codeEmpty {
			violations = append(violations, Violation{
				File:    name,
				Line:    directiveLine,
				Message: "tests block has no test code",
			})
		}
	}

	return violations
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}
