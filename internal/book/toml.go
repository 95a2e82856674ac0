package book

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads book.toml from a book root directory. Standalone commands
// use this to honor the same [preprocessor.exercises] settings as the mdBook
// pipeline. A missing book.toml yields an empty config, not an error.
func LoadConfig(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, "book.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("book: read book.toml: %w", err)
	}

	var doc struct {
		Book         BookConfig                `toml:"book"`
		Preprocessor map[string]map[string]any `toml:"preprocessor"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("book: parse book.toml: %w", err)
	}

	return &Config{Book: doc.Book, Preprocessor: doc.Preprocessor}, nil
}
