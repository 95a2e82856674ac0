package parser

import (
	"reflect"
	"testing"
)

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30 minutes", 30},
		{"30 min", 30},
		{"2 hours", 120},
		{"1 hour", 60},
		{"45", 45},
		{"", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		if got := parseTimeString(tt.in); got != tt.want {
			t.Errorf("parseTimeString(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFenceInfo(t *testing.T) {
	lang, attrs := parseFenceInfo("rust,filename=src/main.rs,editable")
	if lang != "rust" {
		t.Errorf("lang = %q, want %q", lang, "rust")
	}
	want := map[string]string{"filename": "src/main.rs", "editable": "true"}
	if !reflect.DeepEqual(attrs, want) {
		t.Errorf("attrs = %v, want %v", attrs, want)
	}

	// First token with "=" is an attribute, not a language.
	lang, attrs = parseFenceInfo("filename=lib.rs")
	if lang != "" {
		t.Errorf("lang = %q, want empty", lang)
	}
	if attrs["filename"] != "lib.rs" {
		t.Errorf("attrs[filename] = %q, want %q", attrs["filename"], "lib.rs")
	}
}

func TestExtractCodeBlock(t *testing.T) {
	content := "prose before\n```rust\nfn main() {}\n```\n```python\nignored\n```\n"
	info, code := extractCodeBlock(content)
	if info != "rust" {
		t.Errorf("info = %q, want %q", info, "rust")
	}
	if code != "fn main() {}" {
		t.Errorf("code = %q, want %q", code, "fn main() {}")
	}
}

func TestExtractExplanation(t *testing.T) {
	content := "```rust\ncode\n```\n\n### Explanation\n\nBecause moves.\n"
	if got, want := extractExplanation(content), "Because moves."; got != want {
		t.Errorf("extractExplanation() = %q, want %q", got, want)
	}
}

func TestParseMarkdownList(t *testing.T) {
	content := "- dash item\n* star item\n2. numbered item\nplain line\n- \n"
	got := parseMarkdownList(content)
	want := []string{"dash item", "star item", "numbered item"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseMarkdownList() = %v, want %v", got, want)
	}
}

func TestSplitYAMLHeader(t *testing.T) {
	content := "organization: Acme\nconstraints:\n- one\n- two\n\nBody starts here.\nkey: not yaml anymore\n"
	header, body := splitYAMLHeader(content)
	wantHeader := "organization: Acme\nconstraints:\n- one\n- two"
	if header != wantHeader {
		t.Errorf("header = %q, want %q", header, wantHeader)
	}
	// The blank line ends the header; everything after belongs to the body,
	// even lines that look like YAML again.
	wantBody := "\nBody starts here.\nkey: not yaml anymore\n"
	if body != wantBody {
		t.Errorf("body = %q, want %q", body, wantBody)
	}
}

func TestParseInlineAttributes(t *testing.T) {
	got := parseInlineAttributes(` level=2 title="A Big Hint" file=src/lib.rs editable level=3`)
	want := map[string]string{
		"level":    "3", // last occurrence wins
		"title":    "A Big Hint",
		"file":     "src/lib.rs",
		"editable": "true",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseInlineAttributes() = %v, want %v", got, want)
	}
}

func TestParseDirectiveStart(t *testing.T) {
	if d := parseDirectiveStart(":::", 1); d != nil {
		t.Errorf("bare closer parsed as directive: %+v", d)
	}
	if d := parseDirectiveStart("::::::", 1); d != nil {
		t.Errorf("stacked colons parsed as directive: %+v", d)
	}
	d := parseDirectiveStart("  ::: hint level=1", 7)
	if d == nil {
		t.Fatal("indented directive not recognized")
	}
	if d.name != "hint" || d.line != 7 || d.attributes["level"] != "1" {
		t.Errorf("directive = %+v, want hint at line 7 with level=1", d)
	}
}
