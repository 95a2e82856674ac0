package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightCode renders code with server-side syntax highlighting. Returns
// false when the language has no lexer or highlighting fails; callers fall
// back to a plain escaped <pre><code> block.
func highlightCode(code, language string) (string, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	formatter := html.New(
		html.WithClasses(false),
		html.PreventSurroundingPre(false),
	)

	var b strings.Builder
	if err := formatter.Format(&b, styles.Get("github"), iterator); err != nil {
		return "", false
	}
	return b.String(), true
}
