package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// byteRange is a half-open [start, end) span of the source document.
type byteRange struct {
	start int
	end   int
}

// findExcludedRanges walks the markdown structure once and records the byte
// ranges of fenced/indented code blocks, HTML blocks, inline code spans and
// inline raw HTML. Directive syntax inside any of these ranges is never
// recognized; the ranges are consulted via containment tests only and are
// never merged or sorted.
func findExcludedRanges(source []byte) []byteRange {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var ranges []byteRange
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.FencedCodeBlock:
			if r, ok := linesRange(v, source); ok {
				ranges = append(ranges, r)
			}
		case *ast.CodeBlock:
			if r, ok := linesRange(v, source); ok {
				ranges = append(ranges, r)
			}
		case *ast.HTMLBlock:
			r, ok := linesRange(v, source)
			if v.HasClosure() {
				cl := v.ClosureLine
				if !ok {
					r = byteRange{start: cl.Start, end: cl.Stop}
					ok = true
				} else if cl.Stop > r.end {
					r.end = cl.Stop
				}
			}
			if ok {
				ranges = append(ranges, r)
			}
		case *ast.CodeSpan:
			if r, ok := inlineTextRange(v); ok {
				ranges = append(ranges, r)
			}
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				ranges = append(ranges, byteRange{start: seg.Start, end: seg.Stop})
			}
		}
		return ast.WalkContinue, nil
	})

	return ranges
}

// linesRange returns the span covering all source lines of a block node.
// Segments of an indented code block begin after the indent, which would
// leave the line's first columns outside the range, so the start is walked
// back to the beginning of its source line.
func linesRange(n ast.Node, source []byte) (byteRange, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return byteRange{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return byteRange{start: lineStart(source, first.Start), end: last.Stop}, true
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(source []byte, pos int) int {
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// inlineTextRange returns the span covering the text children of an inline
// node such as a code span.
func inlineTextRange(n ast.Node) (byteRange, bool) {
	r := byteRange{start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		if r.start < 0 || t.Segment.Start < r.start {
			r.start = t.Segment.Start
		}
		if t.Segment.Stop > r.end {
			r.end = t.Segment.Stop
		}
	}
	if r.start < 0 {
		return byteRange{}, false
	}
	return r, true
}

// isRangeExcluded reports whether a line span is inside any excluded range:
// either the line starts within a range, or a range covers the line entirely.
func isRangeExcluded(line byteRange, excluded []byteRange) bool {
	for _, r := range excluded {
		if line.start >= r.start && line.start < r.end {
			return true
		}
		if r.start <= line.start && r.end >= line.end {
			return true
		}
	}
	return false
}
