// mdexercises is an mdBook preprocessor that turns directive-annotated
// markdown into interactive exercise blocks. Invoked by mdBook with no
// arguments (preprocess mode) or with "supports <renderer>"; the remaining
// subcommands are standalone authoring tools.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

const envLogLevel = "MDEXERCISES_LOG_LEVEL"

func main() {
	logger := newLogger()

	if len(os.Args) < 2 {
		if err := runPreprocessor(logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch os.Args[1] {
	case "supports":
		renderer := ""
		if len(os.Args) > 2 {
			renderer = os.Args[2]
		}
		cmdSupports(renderer)
	case "parse":
		err = cmdParse(os.Args[2:])
	case "render":
		err = cmdRender(os.Args[2:])
	case "lint":
		err = cmdLint(os.Args[2:])
	case "catalog":
		err = cmdCatalog(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("mdexercises %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv(envLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	// Logs go to stderr; stdout is reserved for the processed book.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printUsage() {
	fmt.Println(`mdexercises - interactive exercises for mdBook

Usage:
  mdexercises                       Run as mdBook preprocessor (stdin/stdout)
  mdexercises supports <renderer>   Report renderer support (exit code)
  mdexercises parse <file>          Parse an exercise file, print JSON
  mdexercises render <file> [-o output] [book-root]
                                    Render an exercise file to HTML
  mdexercises lint <path>...        Report tests blocks with no test code
  mdexercises catalog [root] [out]  Export a JSON catalog of all exercises
  mdexercises version               Print version

book.toml:
  [preprocessor.exercises]
  reveal_hints = false              Expand all hints by default
  reveal_solution = false           Expand on-demand solutions
  playground = true                 Enable "Run Tests" buttons
  playground_url = "https://play.rust-lang.org"
  progress_tracking = true          localStorage completion tracking
  manage_assets = false             Install theme assets on every build
  default_language = "rust"         Language for unannotated code blocks
  syntax_highlight = false          Server-side syntax highlighting

Environment:
  MDEXERCISES_DEFAULT_LANGUAGE      Default code language
  MDEXERCISES_PLAYGROUND_URL        Playground endpoint
  MDEXERCISES_LOG_LEVEL             debug, info, warn or error`)
}
