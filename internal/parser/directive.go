package parser

import "strings"

// directive is one parsed directive opening line.
type directive struct {
	// name is the directive name (e.g. "exercise", "hint", "solution").
	name string

	// attributes holds the inline attributes (e.g. level=1, file="src/main.rs").
	attributes map[string]string

	// line is the 1-indexed line number the directive opened on.
	line int
}

// parseDirectiveStart recognizes a directive opening line: ":::" followed by
// a non-empty name. A bare closer (":::" alone or ":::...") is not an opener.
func parseDirectiveStart(line string, lineNumber int) *directive {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":::") {
		return nil
	}
	rest := strings.TrimSpace(trimmed[3:])
	if rest == "" || strings.HasPrefix(rest, ":::") {
		return nil
	}

	name := rest
	attrsStr := ""
	if i := strings.IndexFunc(rest, isSpace); i >= 0 {
		name = rest[:i]
		attrsStr = rest[i:]
	}

	return &directive{
		name:       name,
		attributes: parseInlineAttributes(attrsStr),
		line:       lineNumber,
	}
}

// parseInlineAttributes parses the text after a directive name into a
// key/value map. Values may be double-quoted (no escape handling); a key with
// no "=" is stored as a presence flag with the literal value "true". Later
// occurrences of a key overwrite earlier ones.
func parseInlineAttributes(attrsStr string) map[string]string {
	attrs := make(map[string]string)
	remaining := strings.TrimSpace(attrsStr)

	for remaining != "" {
		remaining = strings.TrimLeftFunc(remaining, isSpace)
		if remaining == "" {
			break
		}

		keyEnd := strings.IndexFunc(remaining, func(r rune) bool {
			return r == '=' || isSpace(r)
		})
		if keyEnd < 0 {
			keyEnd = len(remaining)
		}
		key := remaining[:keyEnd]
		remaining = remaining[keyEnd:]

		if !strings.HasPrefix(remaining, "=") {
			attrs[key] = "true"
			continue
		}
		remaining = remaining[1:]

		var value string
		if strings.HasPrefix(remaining, `"`) {
			remaining = remaining[1:]
			end := strings.IndexByte(remaining, '"')
			if end < 0 {
				end = len(remaining)
			}
			value = remaining[:end]
			remaining = remaining[min(end+1, len(remaining)):]
		} else {
			end := strings.IndexFunc(remaining, isSpace)
			if end < 0 {
				end = len(remaining)
			}
			value = remaining[:end]
			remaining = remaining[end:]
		}
		attrs[key] = value
	}

	return attrs
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
