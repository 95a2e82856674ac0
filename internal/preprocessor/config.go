package preprocessor

import (
	"os"

	"github.com/felixgeelhaar/mdexercises/internal/render"
)

// Environment variables overriding built-in defaults. book.toml settings
// still win over both.
const (
	EnvDefaultLanguage = "MDEXERCISES_DEFAULT_LANGUAGE"
	EnvPlaygroundURL   = "MDEXERCISES_PLAYGROUND_URL"
)

// ConfigFromTable builds the render configuration from a
// [preprocessor.exercises] table. A nil table yields the defaults. Values of
// the wrong type fall back to their defaults rather than failing the build.
func ConfigFromTable(table map[string]any) render.Config {
	cfg := render.DefaultConfig()
	if lang := os.Getenv(EnvDefaultLanguage); lang != "" {
		cfg.DefaultLanguage = lang
	}
	if url := os.Getenv(EnvPlaygroundURL); url != "" {
		cfg.PlaygroundURL = url
	}
	if table == nil {
		return cfg
	}

	cfg.Enabled = boolOption(table, "enabled", cfg.Enabled)
	cfg.RevealHints = boolOption(table, "reveal_hints", cfg.RevealHints)
	cfg.RevealSolution = boolOption(table, "reveal_solution", cfg.RevealSolution)
	cfg.EnablePlayground = boolOption(table, "playground", cfg.EnablePlayground)
	cfg.PlaygroundURL = stringOption(table, "playground_url", cfg.PlaygroundURL)
	cfg.EnableProgress = boolOption(table, "progress_tracking", cfg.EnableProgress)
	cfg.ManageAssets = boolOption(table, "manage_assets", cfg.ManageAssets)
	cfg.DefaultLanguage = stringOption(table, "default_language", cfg.DefaultLanguage)
	cfg.SyntaxHighlight = boolOption(table, "syntax_highlight", cfg.SyntaxHighlight)
	return cfg
}

func boolOption(table map[string]any, key string, fallback bool) bool {
	if v, ok := table[key].(bool); ok {
		return v
	}
	return fallback
}

func stringOption(table map[string]any, key string, fallback string) string {
	if v, ok := table[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
