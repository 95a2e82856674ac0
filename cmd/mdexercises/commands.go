package main

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/mdexercises/internal/book"
	"github.com/felixgeelhaar/mdexercises/internal/catalog"
	"github.com/felixgeelhaar/mdexercises/internal/lint"
	"github.com/felixgeelhaar/mdexercises/internal/parser"
	"github.com/felixgeelhaar/mdexercises/internal/preprocessor"
	"github.com/felixgeelhaar/mdexercises/internal/render"
)

// mdbookCompatibleVersion is the mdBook minor release this preprocessor is
// written against.
const mdbookCompatibleVersion = "0.4"

// mdbookVersionSupported reports whether a reported mdBook version belongs
// to the release line this tool targets.
func mdbookVersionSupported(version string) bool {
	return version == mdbookCompatibleVersion ||
		strings.HasPrefix(version, mdbookCompatibleVersion+".")
}

// runPreprocessor handles mdBook's stdin/stdout preprocess invocation.
func runPreprocessor(logger *slog.Logger) error {
	ctx, b, err := book.ParseInput(os.Stdin)
	if err != nil {
		return err
	}

	logger.Info("running preprocessor",
		"version", Version, "mdbook_version", ctx.MdbookVersion, "renderer", ctx.Renderer)

	if !mdbookVersionSupported(ctx.MdbookVersion) {
		logger.Warn("mdbook version differs from the release line this preprocessor targets",
			"mdbook_version", ctx.MdbookVersion, "targets", mdbookCompatibleVersion)
	}

	processed := preprocessor.New(logger).Run(ctx, b)
	return book.WriteBook(os.Stdout, processed)
}

// cmdSupports exits 0 when the renderer is supported, 1 otherwise. mdBook
// reads the exit code only.
func cmdSupports(renderer string) {
	p := preprocessor.New(slog.Default())
	if p.SupportsRenderer(renderer) {
		os.Exit(0)
	}
	os.Exit(1)
}

func cmdParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mdexercises parse <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	p := parser.New()
	if lang := os.Getenv(preprocessor.EnvDefaultLanguage); lang != "" {
		p.DefaultLanguage = lang
	}
	parsed, err := p.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}

func cmdRender(args []string) error {
	var file, out, root string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-o":
			if i++; i >= len(args) {
				return fmt.Errorf("usage: mdexercises render <file> [-o output] [book-root]")
			}
			out = args[i]
		case file == "":
			file = args[i]
		case root == "":
			root = args[i]
		default:
			return fmt.Errorf("usage: mdexercises render <file> [-o output] [book-root]")
		}
	}
	if file == "" {
		return fmt.Errorf("usage: mdexercises render <file> [-o output] [book-root]")
	}

	cfg := preprocessor.ConfigFromTable(nil)
	if root != "" {
		bookCfg, err := book.LoadConfig(root)
		if err != nil {
			return err
		}
		cfg = preprocessor.ConfigFromTable(bookCfg.PreprocessorTable(preprocessor.Name))
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	p := &parser.Parser{DefaultLanguage: cfg.DefaultLanguage}
	parsed, err := p.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	fragment, err := render.ExerciseWithConfig(parsed, cfg)
	if err != nil {
		return fmt.Errorf("render %s: %w", file, err)
	}
	page := standalonePage(parsed.Title(), fragment)

	if out != "" {
		return os.WriteFile(out, []byte(page), 0o644)
	}
	_, err = fmt.Print(page)
	return err
}

// standalonePage wraps a rendered exercise in a complete HTML document so
// the render command's output can be opened directly in a browser, outside
// any book build.
func standalonePage(title, exerciseHTML string) string {
	if title == "" {
		title = "Exercise"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <link rel="stylesheet" href="theme/exercises.css">
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
      max-width: 900px;
      margin: 0 auto;
      padding: 2rem;
      background: var(--bg, #fafafa);
      color: var(--fg, #333);
    }
  </style>
</head>
<body>
%s  <script src="theme/exercises.js"></script>
</body>
</html>
`, html.EscapeString(title), exerciseHTML)
}

func cmdLint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mdexercises lint <path>...")
	}

	violations, err := lint.Paths(args)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		fmt.Println("No empty tests blocks found.")
		return nil
	}

	fmt.Fprintln(os.Stderr, "Found empty tests blocks in:")
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "- %s\n", v)
	}
	os.Exit(1)
	return nil
}

func cmdCatalog(args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	bookCfg, err := book.LoadConfig(root)
	if err != nil {
		return err
	}

	cfg := preprocessor.ConfigFromTable(bookCfg.PreprocessorTable(preprocessor.Name))
	p := &parser.Parser{DefaultLanguage: cfg.DefaultLanguage}

	c, err := catalog.Scan(filepath.Join(root, bookCfg.Book.SrcDir()), p)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return c.WriteJSON(f)
	}
	return c.WriteJSON(os.Stdout)
}
