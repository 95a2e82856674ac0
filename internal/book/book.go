// Package book implements the mdBook preprocessor wire protocol: the
// [context, book] JSON pair read from stdin and the processed book written
// back to stdout, plus book.toml loading for standalone commands.
package book

import (
	"encoding/json"
	"fmt"
	"io"
)

// Context is the preprocessor context mdBook sends alongside the book.
type Context struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// Config is the book.toml configuration as mdBook serializes it.
type Config struct {
	Book         BookConfig                `json:"book"`
	Preprocessor map[string]map[string]any `json:"preprocessor,omitempty"`
}

// BookConfig is the [book] table.
type BookConfig struct {
	Title    string   `json:"title,omitempty" toml:"title"`
	Authors  []string `json:"authors,omitempty" toml:"authors"`
	Language string   `json:"language,omitempty" toml:"language"`
	Src      string   `json:"src,omitempty" toml:"src"`
}

// SrcDir returns the configured source directory, defaulting to mdBook's
// "src".
func (c *BookConfig) SrcDir() string {
	if c.Src == "" {
		return "src"
	}
	return c.Src
}

// PreprocessorTable returns the [preprocessor.<name>] table, or nil.
func (c *Config) PreprocessorTable(name string) map[string]any {
	return c.Preprocessor[name]
}

// Book is the full book tree.
type Book struct {
	Sections []Item `json:"sections"`

	// mdBook serializes its #[non_exhaustive] marker as a null field; it
	// must be echoed back verbatim.
	NonExhaustive any `json:"__non_exhaustive"`
}

// Item is one entry in the book tree. Exactly one of Chapter, PartTitle or
// Separator is set, matching the externally-tagged Rust enum encoding:
// {"Chapter": {...}}, {"PartTitle": "..."} or the bare string "Separator".
type Item struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// Chapter is a single book chapter with its nested sub-items.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []uint32 `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Separator" {
			return fmt.Errorf("book: unknown item variant %q", tag)
		}
		*i = Item{Separator: true}
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("book: decode item: %w", err)
	}
	switch {
	case tagged.Chapter != nil:
		*i = Item{Chapter: tagged.Chapter}
	case tagged.PartTitle != nil:
		*i = Item{PartTitle: *tagged.PartTitle}
	default:
		return fmt.Errorf("book: item has no recognized variant")
	}
	return nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	switch {
	case i.Separator:
		return json.Marshal("Separator")
	case i.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": i.Chapter})
	default:
		return json.Marshal(map[string]string{"PartTitle": i.PartTitle})
	}
}

// ParseInput decodes the [context, book] pair mdBook writes to the
// preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var pair [2]json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("book: decode preprocessor input: %w", err)
	}

	var ctx Context
	if err := json.Unmarshal(pair[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("book: decode context: %w", err)
	}
	var b Book
	if err := json.Unmarshal(pair[1], &b); err != nil {
		return nil, nil, fmt.Errorf("book: decode book: %w", err)
	}
	return &ctx, &b, nil
}

// WriteBook encodes the processed book for mdBook to consume.
func WriteBook(w io.Writer, b *Book) error {
	if err := json.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("book: encode book: %w", err)
	}
	return nil
}

// ForEachChapter visits every chapter in the tree, depth-first.
func (b *Book) ForEachChapter(fn func(*Chapter)) {
	walkItems(b.Sections, fn)
}

func walkItems(items []Item, fn func(*Chapter)) {
	for idx := range items {
		ch := items[idx].Chapter
		if ch == nil {
			continue
		}
		fn(ch)
		walkItems(ch.SubItems, fn)
	}
}
