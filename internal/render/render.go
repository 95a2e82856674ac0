// Package render turns parsed exercise records into HTML for mdBook pages.
// The markup carries stable class names and data attributes that the shipped
// exercises.css/exercises.js assets hook into.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

// Exercise renders a parsed exercise of either kind with the default
// configuration.
func Exercise(parsed *domain.ParsedExercise) (string, error) {
	return ExerciseWithConfig(parsed, DefaultConfig())
}

// ExerciseWithConfig renders a parsed exercise of either kind.
func ExerciseWithConfig(parsed *domain.ParsedExercise, cfg Config) (string, error) {
	if parsed.UseCase != nil {
		return renderUseCase(parsed.UseCase, cfg)
	}
	if parsed.Code != nil {
		return renderCode(parsed.Code, cfg)
	}
	return "", fmt.Errorf("render: empty parsed exercise")
}

func renderCode(ex *domain.Exercise, cfg Config) (string, error) {
	var b strings.Builder
	id := ex.Metadata.ID

	fmt.Fprintf(&b, "<article class=\"exercise\" data-exercise-id=%q data-difficulty=%q>\n",
		escapeHTML(id), ex.Metadata.Difficulty)

	renderHeader(&b, ex.Title, codeMeta(ex.Metadata))
	renderNavigation(&b, id, codeSections(ex))

	if ex.Description != "" {
		fmt.Fprintf(&b, "<section class=\"exercise-description\" id=\"%s-description\">\n", id)
		if err := markdownToHTML(&b, ex.Description); err != nil {
			return "", err
		}
		b.WriteString("</section>\n")
	}

	if ex.Objectives != nil {
		renderObjectives(&b, ex.Objectives, id)
	}

	if len(ex.Discussion) > 0 {
		renderItemList(&b, "exercise-discussion", "", "💬 Discussion", ex.Discussion)
	}

	if ex.Starter != nil {
		renderStarter(&b, ex.Starter, id)
	}

	if len(ex.Hints) > 0 {
		if err := renderHints(&b, ex.Hints, cfg.RevealHints, id); err != nil {
			return "", err
		}
	}

	if ex.Solution != nil {
		if err := renderSolution(&b, ex.Solution, cfg, id); err != nil {
			return "", err
		}
	}

	if ex.Tests != nil {
		renderTests(&b, ex.Tests, id, cfg)
	}

	if len(ex.Reflection) > 0 {
		renderItemList(&b, "exercise-reflection", id+"-reflection", "🤔 Reflection", ex.Reflection)
	}

	if cfg.EnableProgress {
		renderFooter(&b, id)
	}

	b.WriteString("</article>\n")
	return b.String(), nil
}

// metaBadge is one badge in the exercise header.
type metaBadge struct {
	class string
	text  string
}

func codeMeta(meta domain.ExerciseMetadata) []metaBadge {
	badges := []metaBadge{difficultyBadge(meta.Difficulty)}
	if meta.TimeMinutes > 0 {
		badges = append(badges, timeBadge(meta.TimeMinutes))
	}
	if len(meta.Prerequisites) > 0 {
		badges = append(badges, prerequisitesBadge(meta.Prerequisites))
	}
	return badges
}

func difficultyBadge(d domain.Difficulty) metaBadge {
	icon := "⭐"
	switch d {
	case domain.DifficultyIntermediate:
		icon = "⭐⭐"
	case domain.DifficultyAdvanced:
		icon = "⭐⭐⭐"
	}
	return metaBadge{
		class: "badge difficulty " + string(d),
		text:  icon + " " + string(d),
	}
}

func timeBadge(minutes int) metaBadge {
	text := fmt.Sprintf("%d min", minutes)
	if minutes >= 60 {
		text = fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return metaBadge{class: "badge time", text: "⏱️ " + text}
}

func prerequisitesBadge(prereqs []string) metaBadge {
	links := make([]string, len(prereqs))
	for i, p := range prereqs {
		links[i] = fmt.Sprintf("<a href=\"#%s\">%s</a>", escapeHTML(p), escapeHTML(p))
	}
	return metaBadge{class: "badge prerequisites", text: "📚 Requires: " + strings.Join(links, ", ")}
}

func renderHeader(b *strings.Builder, title string, badges []metaBadge) {
	b.WriteString("<header class=\"exercise-header\">\n")
	if title != "" {
		fmt.Fprintf(b, "  <h2 class=\"exercise-title\">%s</h2>\n", escapeHTML(title))
	}
	b.WriteString("  <div class=\"exercise-meta\">\n")
	for _, badge := range badges {
		// Badge text may embed prerequisite links; class names are ours.
		fmt.Fprintf(b, "    <span class=%q>%s</span>\n", badge.class, badge.text)
	}
	b.WriteString("  </div>\n")
	b.WriteString("</header>\n")
}

// navSection is one entry in the section outline at the top of an exercise.
type navSection struct {
	anchor string
	label  string
}

func codeSections(ex *domain.Exercise) []navSection {
	var sections []navSection
	if ex.Description != "" {
		sections = append(sections, navSection{"description", "📖 Overview"})
	}
	if ex.Objectives != nil {
		sections = append(sections, navSection{"objectives", "🎯 Objectives"})
	}
	if ex.Starter != nil {
		sections = append(sections, navSection{"starter", "💻 Code"})
	}
	if len(ex.Hints) > 0 {
		sections = append(sections, navSection{"hints", "💡 Hints"})
	}
	if ex.Solution != nil {
		sections = append(sections, navSection{"solution", "✅ Solution"})
	}
	if ex.Tests != nil {
		sections = append(sections, navSection{"tests", "🧪 Tests"})
	}
	if len(ex.Reflection) > 0 {
		sections = append(sections, navSection{"reflection", "🤔 Reflect"})
	}
	return sections
}

func renderNavigation(b *strings.Builder, id string, sections []navSection) {
	b.WriteString("<nav class=\"exercise-nav\" aria-label=\"Exercise sections\">\n")
	b.WriteString("  <ul>\n")
	for _, s := range sections {
		fmt.Fprintf(b, "    <li><a href=\"#%s-%s\" data-section=%q>%s</a></li>\n",
			id, s.anchor, s.anchor, s.label)
	}
	b.WriteString("  </ul>\n")
	b.WriteString("</nav>\n")
}

func renderObjectives(b *strings.Builder, objectives *domain.Objectives, id string) {
	fmt.Fprintf(b, "<section class=\"exercise-objectives\" id=\"%s-objectives\">\n", id)
	b.WriteString("  <h3>🎯 Learning Objectives</h3>\n")
	b.WriteString("  <div class=\"objectives-grid\">\n")
	renderObjectiveGroup(b, objectives.Thinking, id, "thinking", "Thinking")
	renderObjectiveGroup(b, objectives.Doing, id, "doing", "Doing")
	b.WriteString("  </div>\n")
	b.WriteString("</section>\n")
}

func renderObjectiveGroup(b *strings.Builder, items []string, exerciseID, kind, heading string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "    <div class=\"objectives-%s\">\n", kind)
	fmt.Fprintf(b, "      <h4>%s</h4>\n", heading)
	b.WriteString("      <ul>\n")
	for i, item := range items {
		id := fmt.Sprintf("%s-%s-%d", exerciseID, kind, i)
		fmt.Fprintf(b, "        <li><input type=\"checkbox\" id=%q class=\"objective-checkbox\"><label for=%q>%s</label></li>\n",
			id, id, escapeHTML(item))
	}
	b.WriteString("      </ul>\n")
	b.WriteString("    </div>\n")
}

// renderItemList emits a simple heading+bullet-list section, used for
// discussion and reflection blocks.
func renderItemList(b *strings.Builder, class, id, heading string, items []string) {
	if id != "" {
		fmt.Fprintf(b, "<section class=%q id=%q>\n", class, id)
	} else {
		fmt.Fprintf(b, "<section class=%q>\n", class)
	}
	fmt.Fprintf(b, "  <h3>%s</h3>\n", heading)
	b.WriteString("  <ul>\n")
	for _, item := range items {
		fmt.Fprintf(b, "    <li>%s</li>\n", escapeHTML(item))
	}
	b.WriteString("  </ul>\n")
	b.WriteString("</section>\n")
}

func renderStarter(b *strings.Builder, starter *domain.StarterCode, id string) {
	fmt.Fprintf(b, "<section class=\"exercise-starter\" id=\"%s-starter\">\n", id)
	b.WriteString("  <div class=\"code-header\">\n")
	if starter.Filename != "" {
		fmt.Fprintf(b, "    <span class=\"filename\">%s</span>\n", escapeHTML(starter.Filename))
	}
	b.WriteString("    <div class=\"code-actions\">\n")
	fmt.Fprintf(b, "      <button class=\"btn btn-copy\" data-target=\"code-%s\" title=\"Copy code\">📋 Copy</button>\n", id)
	fmt.Fprintf(b, "      <button class=\"btn btn-reset\" data-target=\"code-%s\" title=\"Reset to original\">↺ Reset</button>\n", id)
	b.WriteString("    </div>\n")
	b.WriteString("  </div>\n")

	// The textarea body stays empty; exercises.js fills it from
	// data-original so mdBook's markdown pass cannot mangle the code.
	fmt.Fprintf(b, "  <textarea class=\"code-editor\" id=\"code-%s\" data-language=%q data-original=%q spellcheck=\"false\"></textarea>\n",
		id, escapeHTML(starter.Language), escapeHTMLAttr(starter.Code))

	b.WriteString("</section>\n")
}

func renderHints(b *strings.Builder, hints []domain.Hint, reveal bool, id string) error {
	fmt.Fprintf(b, "<section class=\"exercise-hints\" id=\"%s-hints\">\n", id)
	b.WriteString("  <h3>💡 Hints</h3>\n")

	for _, hint := range hints {
		title := fmt.Sprintf("Hint %d", hint.Level)
		if hint.Title != "" {
			title = fmt.Sprintf("Hint %d: %s", hint.Level, hint.Title)
		}
		fmt.Fprintf(b, "  <details class=\"hint\" data-level=\"%d\"%s>\n", hint.Level, openAttr(reveal))
		fmt.Fprintf(b, "    <summary>%s</summary>\n", escapeHTML(title))
		b.WriteString("    <div class=\"hint-content\">\n")
		if err := markdownToHTML(b, hint.Content); err != nil {
			return err
		}
		b.WriteString("    </div>\n")
		b.WriteString("  </details>\n")
	}

	b.WriteString("</section>\n")
	return nil
}

func renderSolution(b *strings.Builder, solution *domain.Solution, cfg Config, id string) error {
	fmt.Fprintf(b, "<section class=\"exercise-solution\" id=\"%s-solution\">\n", id)

	fmt.Fprintf(b, "  <details class=\"solution\"%s>\n", openAttr(revealOpen(solution.Reveal, cfg.RevealSolution)))
	b.WriteString("    <summary>\n")
	b.WriteString("      <span class=\"solution-warning\">⚠️ Try the exercise first!</span>\n")
	b.WriteString("      <span class=\"solution-toggle\">Show Solution</span>\n")
	b.WriteString("    </summary>\n")
	b.WriteString("    <div class=\"solution-content\">\n")

	b.WriteString("      ")
	writeCodeBlock(b, solution.Language, solution.Code, cfg)
	b.WriteString("\n")

	if solution.Explanation != "" {
		b.WriteString("      <div class=\"solution-explanation\">\n")
		b.WriteString("        <h4>Explanation</h4>\n")
		if err := markdownToHTML(b, solution.Explanation); err != nil {
			return err
		}
		b.WriteString("      </div>\n")
	}

	b.WriteString("    </div>\n")
	b.WriteString("  </details>\n")
	b.WriteString("</section>\n")
	return nil
}

func renderTests(b *strings.Builder, tests *domain.TestBlock, id string, cfg Config) {
	fmt.Fprintf(b, "<section class=\"exercise-tests\" id=\"%s-tests\" data-mode=%q>\n", id, tests.Mode)
	b.WriteString("  <h3>🧪 Tests</h3>\n")

	b.WriteString("  <div class=\"test-actions\">\n")
	if tests.Mode == domain.TestModePlayground && cfg.EnablePlayground {
		fmt.Fprintf(b, "    <button class=\"btn btn-run-tests\" data-exercise-id=%q data-playground-url=%q>▶ Run Tests</button>\n",
			id, escapeHTML(cfg.PlaygroundURL))
	} else {
		b.WriteString("    <div class=\"local-test-info\">\n")
		b.WriteString("      <p>Run these tests locally with:</p>\n")
		b.WriteString("      <pre><code>cargo test</code></pre>\n")
		b.WriteString("    </div>\n")
	}
	b.WriteString("  </div>\n")

	fmt.Fprintf(b, "  <div class=\"test-results\" id=\"results-%s\" hidden></div>\n", id)

	b.WriteString("  <details class=\"tests-code\">\n")
	b.WriteString("    <summary>View Test Code</summary>\n")
	b.WriteString("    ")
	writeCodeBlock(b, tests.Language, tests.Code, cfg)
	b.WriteString("\n")
	b.WriteString("  </details>\n")

	b.WriteString("</section>\n")
}

func renderFooter(b *strings.Builder, id string) {
	b.WriteString("<footer class=\"exercise-footer\">\n")
	fmt.Fprintf(b, "  <button class=\"btn btn-complete\" data-exercise-id=%q>✓ Mark Complete</button>\n", id)
	b.WriteString("</footer>\n")
}

// revealOpen resolves the per-block reveal policy against the book-wide
// default. Always/never are authoritative; on-demand defers to the config.
func revealOpen(policy domain.RevealPolicy, configured bool) bool {
	switch policy {
	case domain.RevealAlways:
		return true
	case domain.RevealNever:
		return false
	}
	return configured
}

func openAttr(open bool) string {
	if open {
		return " open"
	}
	return ""
}

// writeCodeBlock emits a static <pre><code> block, server-side highlighted
// when configured.
func writeCodeBlock(b *strings.Builder, language, code string, cfg Config) {
	if cfg.SyntaxHighlight {
		if highlighted, ok := highlightCode(code, language); ok {
			b.WriteString(highlighted)
			return
		}
	}
	fmt.Fprintf(b, "<pre><code class=\"language-%s\">%s</code></pre>",
		escapeHTML(language), escapeHTML(code))
}

// markdownToHTML converts embedded markdown (descriptions, hints,
// explanations) to HTML.
func markdownToHTML(b *strings.Builder, markdown string) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	b.Write(buf.Bytes())
	return nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

var htmlAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"\n", "&#10;",
	"\r", "&#13;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

// escapeHTMLAttr additionally encodes newlines so multi-line code survives
// inside a data attribute.
func escapeHTMLAttr(s string) string { return htmlAttrEscaper.Replace(s) }
