package render

// DefaultPlaygroundURL is the playground endpoint used when book.toml does
// not override it.
const DefaultPlaygroundURL = "https://play.rust-lang.org"

// Config controls how exercises are rendered and how the preprocessor
// behaves. Values map 1:1 to the [preprocessor.exercises] table in book.toml.
type Config struct {
	// Enabled turns the whole preprocessor on or off.
	Enabled bool

	// RevealHints expands all hints by default.
	RevealHints bool

	// RevealSolution expands solutions whose reveal policy is on-demand.
	// Solutions marked always/never override this.
	RevealSolution bool

	// EnablePlayground wires "Run Tests" buttons to the playground service.
	EnablePlayground bool

	// PlaygroundURL is the playground endpoint.
	PlaygroundURL string

	// EnableProgress adds the localStorage-backed "Mark Complete" footer.
	EnableProgress bool

	// ManageAssets writes exercises.css/exercises.js into the book's theme
	// directory on every run.
	ManageAssets bool

	// DefaultLanguage is the language assumed for unannotated code blocks.
	DefaultLanguage string

	// SyntaxHighlight pre-highlights solution and test code server-side
	// instead of leaving it to highlight.js.
	SyntaxHighlight bool
}

// DefaultConfig returns the configuration used when book.toml has no
// [preprocessor.exercises] table.
func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		RevealHints:      false,
		RevealSolution:   false,
		EnablePlayground: true,
		PlaygroundURL:    DefaultPlaygroundURL,
		EnableProgress:   true,
		ManageAssets:     false,
		DefaultLanguage:  "rust",
		SyntaxHighlight:  false,
	}
}
