package parser

import (
	"strconv"
	"strings"
)

// parseFenceInfo splits a fence info string ("lang,attr=val,flag") into the
// language and an attribute map. The first comma token is the language only
// if it carries no "=".
func parseFenceInfo(info string) (string, map[string]string) {
	lang := ""
	attrs := make(map[string]string)
	for i, raw := range strings.Split(info, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if i == 0 && !strings.Contains(token, "=") {
			lang = token
			continue
		}
		if eq := strings.IndexByte(token, '='); eq >= 0 {
			attrs[strings.TrimSpace(token[:eq])] = strings.TrimSpace(token[eq+1:])
		} else {
			attrs[token] = "true"
		}
	}
	return lang, attrs
}

// extractCodeBlock pulls the first fenced code block out of a directive
// body. It returns the raw info string of the opening fence (or "") and the
// code between the fences. Only the first fenced block is honored; anything
// after its closing fence is left for other extractors.
func extractCodeBlock(content string) (string, string) {
	inCodeBlock := false
	info := ""
	var codeLines []string

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCodeBlock {
				break
			}
			inCodeBlock = true
			fenceInfo := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "`"))
			if fenceInfo != "" {
				info = fenceInfo
			}
		} else if inCodeBlock {
			codeLines = append(codeLines, line)
		}
	}

	return info, strings.Join(codeLines, "\n")
}

// extractExplanation collects the text after the first fenced code block in
// a solution body, stripping an optional "### Explanation" heading.
func extractExplanation(content string) string {
	inCodeBlock := false
	foundCodeBlock := false
	var lines []string

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCodeBlock {
				inCodeBlock = false
				foundCodeBlock = true
			} else {
				inCodeBlock = true
			}
		} else if foundCodeBlock && !inCodeBlock {
			lines = append(lines, line)
		}
	}

	explanation := strings.TrimSpace(strings.Join(lines, "\n"))
	explanation = strings.TrimSpace(strings.TrimPrefix(explanation, "### Explanation"))
	return explanation
}

// parseMarkdownList turns "-", "*" and "1."-style lines into a list of
// items with their markers stripped. Non-list lines are ignored.
func parseMarkdownList(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		var item string
		switch {
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"):
			item = strings.TrimSpace(trimmed[1:])
		case len(trimmed) > 0 && trimmed[0] >= '0' && trimmed[0] <= '9' && strings.Contains(trimmed, "."):
			dot := strings.IndexByte(trimmed, '.')
			item = strings.TrimSpace(trimmed[dot+1:])
		default:
			continue
		}
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseTimeString interprets time estimates like "10 minutes", "2 hours" or
// a bare "45". Hours are normalized to minutes. Returns 0 if unparseable.
func parseTimeString(s string) int {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return 0
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	if len(parts) > 1 && strings.HasPrefix(strings.ToLower(parts[1]), "hour") {
		return n * 60
	}
	return n
}

// splitYAMLHeader separates a block body into a leading YAML-shaped header
// and the remaining markdown body. A header line looks like "key: value" or
// "key:" followed by "- item" list lines. The first line failing that shape
// irreversibly starts the body.
func splitYAMLHeader(content string) (string, string) {
	var yamlLines, bodyLines []string
	inYAML := true
	inYAMLList := false

	for _, line := range strings.Split(content, "\n") {
		if !inYAML {
			bodyLines = append(bodyLines, line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, ":") && !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "#"):
			yamlLines = append(yamlLines, line)
			inYAMLList = strings.HasSuffix(trimmed, ":")
		case inYAMLList && strings.HasPrefix(trimmed, "-"):
			yamlLines = append(yamlLines, line)
		case trimmed == "" && len(yamlLines) == 0:
			// skip leading blank lines
		default:
			inYAML = false
			inYAMLList = false
			bodyLines = append(bodyLines, line)
		}
	}

	return strings.Join(yamlLines, "\n"), strings.Join(bodyLines, "\n")
}
