// Package preprocessor wires the exercise parser and renderer into mdBook.
// It consumes the [context, book] pair on stdin, replaces directive regions
// and {{#exercise}} includes with rendered HTML, and writes the book back.
package preprocessor

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/felixgeelhaar/mdexercises/internal/book"
	"github.com/felixgeelhaar/mdexercises/internal/parser"
	"github.com/felixgeelhaar/mdexercises/internal/render"
)

// Name is the preprocessor name mdBook uses in book.toml:
// [preprocessor.exercises].
const Name = "exercises"

//go:embed assets/exercises.css
var exercisesCSS []byte

//go:embed assets/exercises.js
var exercisesJS []byte

var (
	includeRe     = regexp.MustCompile(`\{\{#exercise\s+([^}]+)\}\}`)
	regionStartRe = regexp.MustCompile(`(?m)^[ \t]*:::\s+(exercise|usecase)\b`)
	directiveRe   = regexp.MustCompile(`^\s*:::\s+[a-zA-Z]`)
	closerRe      = regexp.MustCompile(`^\s*:::\s*$`)
)

// Preprocessor is the mdBook preprocessor for exercise directives.
type Preprocessor struct {
	logger *slog.Logger
}

// New creates a preprocessor logging through the given logger.
func New(logger *slog.Logger) *Preprocessor {
	return &Preprocessor{logger: logger}
}

// SupportsRenderer reports whether a renderer's output is supported. Only
// HTML output carries the interactive markup.
func (p *Preprocessor) SupportsRenderer(renderer string) bool {
	return renderer == "html"
}

// Run processes every chapter of the book: first {{#exercise path}} includes
// are expanded, then inline directive regions are rendered in place. Chapter
// failures degrade to an HTML comment plus the original content so a broken
// exercise never breaks the book build.
func (p *Preprocessor) Run(ctx *book.Context, b *book.Book) *book.Book {
	cfg := ConfigFromTable(ctx.Config.PreprocessorTable(Name))

	if !cfg.Enabled {
		p.logger.Info("disabled by configuration, skipping")
		return b
	}

	if cfg.ManageAssets {
		if err := p.installAssets(ctx); err != nil {
			p.logger.Warn("failed to install assets", "error", err)
		} else {
			p.logger.Info("assets installed to book theme directory")
		}
	} else if hint := p.assetSetupHint(ctx); hint != "" {
		p.logger.Info(hint)
	}

	srcRoot := filepath.Join(ctx.Root, ctx.Config.Book.SrcDir())

	b.ForEachChapter(func(ch *book.Chapter) {
		content := p.ProcessIncludes(ch.Content, srcRoot, cfg)
		ch.Content = p.ProcessChapter(content, cfg)
	})

	return b
}

// ProcessChapter renders the inline exercise region of one chapter, leaving
// chapters without directives untouched.
func (p *Preprocessor) ProcessChapter(content string, cfg render.Config) string {
	if !strings.Contains(content, "::: exercise") && !strings.Contains(content, "::: usecase") {
		return content
	}

	ps := &parser.Parser{DefaultLanguage: cfg.DefaultLanguage}
	parsed, err := ps.Parse(content)
	if err != nil {
		return fmt.Sprintf("<!-- Exercise parse error: %v -->\n\n%s", err, content)
	}

	html, err := render.ExerciseWithConfig(parsed, cfg)
	if err != nil {
		return fmt.Sprintf("<!-- Exercise render error: %v -->\n\n%s", err, content)
	}

	return replaceExerciseRegion(content, html)
}

// ProcessIncludes expands {{#exercise path}} markers by parsing and
// rendering the referenced file. Failures become inline error boxes.
func (p *Preprocessor) ProcessIncludes(content, srcRoot string, cfg render.Config) string {
	result := content
	for _, match := range includeRe.FindAllStringSubmatch(content, -1) {
		marker, path := match[0], strings.TrimSpace(match[1])

		data, err := os.ReadFile(filepath.Join(srcRoot, path))
		if err != nil {
			result = strings.ReplaceAll(result, marker, includeError("Error loading exercise file", err, path))
			continue
		}

		ps := &parser.Parser{DefaultLanguage: cfg.DefaultLanguage}
		parsed, err := ps.Parse(string(data))
		if err != nil {
			result = strings.ReplaceAll(result, marker, includeError("Error parsing exercise", err, path))
			continue
		}

		html, err := render.ExerciseWithConfig(parsed, cfg)
		if err != nil {
			result = strings.ReplaceAll(result, marker, includeError("Error rendering exercise", err, path))
			continue
		}

		wrapped := fmt.Sprintf("<div class=\"exercise-container\">\n%s\n</div>", html)
		result = strings.ReplaceAll(result, marker, wrapped)
	}
	return result
}

func includeError(msg string, err error, path string) string {
	return fmt.Sprintf(
		"<div class=\"exercise-error\">\n  <p><strong>%s:</strong> %v</p>\n  <p>File: %s</p>\n</div>",
		msg, err, path)
}

// replaceExerciseRegion swaps the contiguous directive region of a chapter
// for the rendered HTML, preserving surrounding prose. The region runs from
// the first top-level directive through the closer of the last directive
// block; prose between blocks belongs to the region because the parser
// already captured it (as the description). Directive blocks do not nest,
// so an opener while a block is open is an implicit close plus a new open.
func replaceExerciseRegion(content, renderedHTML string) string {
	loc := regionStartRe.FindStringIndex(content)
	if loc == nil {
		return content
	}

	blockOpen := false
	endIdx := len(content)

	offset := 0
	for offset < len(content) {
		rest := content[offset:]
		lineEnd := strings.IndexByte(rest, '\n')
		var raw string
		if lineEnd < 0 {
			raw = rest
		} else {
			raw = rest[:lineEnd+1]
		}
		lineStart := offset
		offset += len(raw)

		if lineStart < loc[0] {
			continue
		}
		line := strings.TrimRight(raw, "\r\n")
		switch {
		case directiveRe.MatchString(line):
			blockOpen = true
		case blockOpen && closerRe.MatchString(line):
			blockOpen = false
			endIdx = offset
		}
	}

	var b strings.Builder
	b.WriteString(content[:loc[0]])
	fmt.Fprintf(&b, "<div class=\"exercise-container\">\n%s\n</div>\n", renderedHTML)
	b.WriteString(content[endIdx:])
	return b.String()
}

// installAssets writes the embedded stylesheet and script into the book's
// theme directory so [output.html] can reference them.
func (p *Preprocessor) installAssets(ctx *book.Context) error {
	themeDir := filepath.Join(ctx.Root, ctx.Config.Book.SrcDir(), "theme")
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		return fmt.Errorf("create theme dir %s: %w", themeDir, err)
	}
	for _, asset := range []struct {
		name string
		data []byte
	}{
		{"exercises.css", exercisesCSS},
		{"exercises.js", exercisesJS},
	} {
		path := filepath.Join(themeDir, asset.name)
		if err := os.WriteFile(path, asset.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// assetSetupHint returns a setup hint when the theme assets are missing and
// not managed automatically, or "" when everything is in place.
func (p *Preprocessor) assetSetupHint(ctx *book.Context) string {
	themeDir := filepath.Join(ctx.Root, ctx.Config.Book.SrcDir(), "theme")
	cssOK := fileExists(filepath.Join(themeDir, "exercises.css"))
	jsOK := fileExists(filepath.Join(themeDir, "exercises.js"))
	if cssOK && jsOK {
		return ""
	}
	return fmt.Sprintf(
		"assets not found under %q; enable manage_assets = true or copy them manually and reference them in [output.html]: additional-css=['theme/exercises.css'], additional-js=['theme/exercises.js']",
		themeDir)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
