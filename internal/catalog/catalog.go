// Package catalog builds an inventory of every exercise in a book's source
// tree, for export as JSON. Course tooling uses the export to track
// prerequisites and completion without parsing markdown itself.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
	"github.com/felixgeelhaar/mdexercises/internal/parser"
)

// Entry is one exercise in the catalog.
type Entry struct {
	ID            string               `json:"id"`
	Kind          domain.ExerciseKind  `json:"kind"`
	Title         string               `json:"title,omitempty"`
	Difficulty    domain.Difficulty    `json:"difficulty"`
	Domain        domain.UseCaseDomain `json:"domain,omitempty"`
	TimeMinutes   int                  `json:"time_minutes,omitempty"`
	Prerequisites []string             `json:"prerequisites,omitempty"`
	Hints         int                  `json:"hints"`
	HasSolution   bool                 `json:"has_solution"`
	HasTests      bool                 `json:"has_tests"`
	Path          string               `json:"path"`
}

// ScanError records a file that contained directives but failed to parse.
type ScanError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Catalog is the scan result. Entries are sorted by id.
type Catalog struct {
	Exercises []Entry     `json:"exercises"`
	Errors    []ScanError `json:"errors,omitempty"`
}

// Scan walks a book source tree and parses every markdown file containing
// exercise directives. Files that fail to parse are reported in Errors
// rather than aborting the scan.
func Scan(srcRoot string, p *parser.Parser) (*Catalog, error) {
	c := &Catalog{}

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		content := string(data)
		if !strings.Contains(content, "::: exercise") && !strings.Contains(content, "::: usecase") {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			rel = path
		}

		parsed, err := p.Parse(content)
		if err != nil {
			c.Errors = append(c.Errors, ScanError{Path: rel, Message: err.Error()})
			return nil
		}

		c.Exercises = append(c.Exercises, newEntry(parsed, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", srcRoot, err)
	}

	sort.Slice(c.Exercises, func(i, j int) bool {
		return c.Exercises[i].ID < c.Exercises[j].ID
	})
	return c, nil
}

func newEntry(parsed *domain.ParsedExercise, path string) Entry {
	entry := Entry{
		ID:    parsed.ID(),
		Kind:  parsed.Kind(),
		Title: parsed.Title(),
		Path:  filepath.ToSlash(path),
	}

	switch {
	case parsed.UseCase != nil:
		uc := parsed.UseCase
		entry.Difficulty = uc.Metadata.Difficulty
		entry.Domain = uc.Metadata.Domain
		entry.TimeMinutes = uc.Metadata.TimeMinutes
		entry.Prerequisites = uc.Metadata.Prerequisites
		entry.Hints = len(uc.Hints)
		entry.HasSolution = uc.SampleAnswer != nil
	case parsed.Code != nil:
		ex := parsed.Code
		entry.Difficulty = ex.Metadata.Difficulty
		entry.TimeMinutes = ex.Metadata.TimeMinutes
		entry.Prerequisites = ex.Metadata.Prerequisites
		entry.Hints = len(ex.Hints)
		entry.HasSolution = ex.Solution != nil
		entry.HasTests = ex.Tests != nil
	}
	return entry
}

// WriteJSON writes the catalog as indented JSON.
func (c *Catalog) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	return nil
}
