package render

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mdexercises/internal/domain"
)

// renderUseCase renders a scenario analysis exercise. The markup shares the
// exercise chrome (header, nav, hints, footer) but swaps code sections for
// scenario, prompt, rubric and sample answer sections.
func renderUseCase(uc *domain.UseCaseExercise, cfg Config) (string, error) {
	var b strings.Builder
	id := uc.Metadata.ID

	fmt.Fprintf(&b, "<article class=\"exercise usecase-exercise\" data-exercise-id=%q data-difficulty=%q data-domain=%q>\n",
		escapeHTML(id), uc.Metadata.Difficulty, uc.Metadata.Domain)

	renderHeader(&b, uc.Title, useCaseMeta(uc.Metadata))
	renderNavigation(&b, id, useCaseSections(uc))

	if uc.Description != "" {
		fmt.Fprintf(&b, "<section class=\"exercise-description\" id=\"%s-description\">\n", id)
		if err := markdownToHTML(&b, uc.Description); err != nil {
			return "", err
		}
		b.WriteString("</section>\n")
	}

	if uc.Objectives != nil {
		renderObjectives(&b, uc.Objectives, id)
	}

	if uc.Context != "" {
		fmt.Fprintf(&b, "<section class=\"usecase-context\" id=\"%s-context\">\n", id)
		b.WriteString("  <h3>📎 Background</h3>\n")
		if err := markdownToHTML(&b, uc.Context); err != nil {
			return "", err
		}
		b.WriteString("</section>\n")
	}

	if err := renderScenario(&b, &uc.Scenario, id); err != nil {
		return "", err
	}

	if err := renderPrompt(&b, &uc.Prompt, id); err != nil {
		return "", err
	}

	if len(uc.Hints) > 0 {
		if err := renderHints(&b, uc.Hints, cfg.RevealHints, id); err != nil {
			return "", err
		}
	}

	renderEvaluation(&b, &uc.Evaluation, id)

	if uc.SampleAnswer != nil {
		if err := renderSampleAnswer(&b, uc.SampleAnswer, cfg, id); err != nil {
			return "", err
		}
	}

	if cfg.EnableProgress {
		renderFooter(&b, id)
	}

	b.WriteString("</article>\n")
	return b.String(), nil
}

func useCaseMeta(meta domain.UseCaseMetadata) []metaBadge {
	badges := []metaBadge{
		difficultyBadge(meta.Difficulty),
		{class: "badge domain " + string(meta.Domain), text: "🏷️ " + string(meta.Domain)},
	}
	if meta.TimeMinutes > 0 {
		badges = append(badges, timeBadge(meta.TimeMinutes))
	}
	if len(meta.Prerequisites) > 0 {
		badges = append(badges, prerequisitesBadge(meta.Prerequisites))
	}
	return badges
}

func useCaseSections(uc *domain.UseCaseExercise) []navSection {
	var sections []navSection
	if uc.Description != "" {
		sections = append(sections, navSection{"description", "📖 Overview"})
	}
	if uc.Objectives != nil {
		sections = append(sections, navSection{"objectives", "🎯 Objectives"})
	}
	if uc.Context != "" {
		sections = append(sections, navSection{"context", "📎 Background"})
	}
	sections = append(sections,
		navSection{"scenario", "🏢 Scenario"},
		navSection{"prompt", "✍️ Your Task"},
	)
	if len(uc.Hints) > 0 {
		sections = append(sections, navSection{"hints", "💡 Hints"})
	}
	sections = append(sections, navSection{"evaluation", "📊 Evaluation"})
	if uc.SampleAnswer != nil {
		sections = append(sections, navSection{"sample-answer", "✅ Sample Answer"})
	}
	return sections
}

func renderScenario(b *strings.Builder, scenario *domain.Scenario, id string) error {
	fmt.Fprintf(b, "<section class=\"usecase-scenario\" id=\"%s-scenario\">\n", id)
	b.WriteString("  <h3>🏢 Scenario</h3>\n")
	if scenario.Organization != "" {
		fmt.Fprintf(b, "  <p class=\"scenario-organization\"><strong>%s</strong></p>\n",
			escapeHTML(scenario.Organization))
	}
	if err := markdownToHTML(b, scenario.Content); err != nil {
		return err
	}
	if len(scenario.Constraints) > 0 {
		b.WriteString("  <div class=\"scenario-constraints\">\n")
		b.WriteString("    <h4>Constraints</h4>\n")
		b.WriteString("    <ul>\n")
		for _, c := range scenario.Constraints {
			fmt.Fprintf(b, "      <li>%s</li>\n", escapeHTML(c))
		}
		b.WriteString("    </ul>\n")
		b.WriteString("  </div>\n")
	}
	b.WriteString("</section>\n")
	return nil
}

func renderPrompt(b *strings.Builder, prompt *domain.UseCasePrompt, id string) error {
	fmt.Fprintf(b, "<section class=\"usecase-prompt\" id=\"%s-prompt\">\n", id)
	b.WriteString("  <h3>✍️ Your Task</h3>\n")
	if err := markdownToHTML(b, prompt.Prompt); err != nil {
		return err
	}
	if len(prompt.Aspects) > 0 {
		b.WriteString("  <div class=\"prompt-aspects\">\n")
		b.WriteString("    <h4>Your answer should address</h4>\n")
		b.WriteString("    <ul>\n")
		for _, a := range prompt.Aspects {
			fmt.Fprintf(b, "      <li>%s</li>\n", escapeHTML(a))
		}
		b.WriteString("    </ul>\n")
		b.WriteString("  </div>\n")
	}
	fmt.Fprintf(b, "  <textarea class=\"answer-editor\" id=\"answer-%s\" data-exercise-id=%q spellcheck=\"true\"></textarea>\n", id, id)
	fmt.Fprintf(b, "  <div class=\"answer-meta\"><span class=\"word-count\" data-target=\"answer-%s\">0 words</span></div>\n", id)
	b.WriteString("</section>\n")
	return nil
}

func renderEvaluation(b *strings.Builder, eval *domain.EvaluationCriteria, id string) {
	fmt.Fprintf(b, "<section class=\"usecase-evaluation\" id=\"%s-evaluation\">\n", id)
	b.WriteString("  <h3>📊 Evaluation</h3>\n")

	if len(eval.Criteria) > 0 {
		b.WriteString("  <table class=\"evaluation-criteria\">\n")
		b.WriteString("    <thead><tr><th>Criterion</th><th>Weight</th><th>Description</th></tr></thead>\n")
		b.WriteString("    <tbody>\n")
		for _, c := range eval.Criteria {
			fmt.Fprintf(b, "      <tr><td>%s</td><td>%d%%</td><td>%s</td></tr>\n",
				escapeHTML(c.Name), c.Weight, escapeHTML(c.Description))
		}
		b.WriteString("    </tbody>\n")
		b.WriteString("  </table>\n")
	}

	if len(eval.KeyPoints) > 0 {
		b.WriteString("  <div class=\"evaluation-keypoints\">\n")
		b.WriteString("    <h4>Key points to cover</h4>\n")
		b.WriteString("    <ul>\n")
		for _, k := range eval.KeyPoints {
			fmt.Fprintf(b, "      <li>%s</li>\n", escapeHTML(k))
		}
		b.WriteString("    </ul>\n")
		b.WriteString("  </div>\n")
	}

	var limits []string
	if eval.MinWords > 0 {
		limits = append(limits, fmt.Sprintf("at least %d words", eval.MinWords))
	}
	if eval.MaxWords > 0 {
		limits = append(limits, fmt.Sprintf("at most %d words", eval.MaxWords))
	}
	if len(limits) > 0 {
		fmt.Fprintf(b, "  <p class=\"evaluation-limits\">Length: %s.</p>\n", strings.Join(limits, ", "))
	}
	if eval.PassThreshold > 0 {
		fmt.Fprintf(b, "  <p class=\"evaluation-threshold\">Pass threshold: %.0f%%.</p>\n", eval.PassThreshold*100)
	}

	b.WriteString("</section>\n")
}

func renderSampleAnswer(b *strings.Builder, answer *domain.SampleAnswer, cfg Config, id string) error {
	fmt.Fprintf(b, "<section class=\"usecase-sample-answer\" id=\"%s-sample-answer\">\n", id)

	fmt.Fprintf(b, "  <details class=\"sample-answer\"%s>\n", openAttr(revealOpen(answer.Reveal, cfg.RevealSolution)))
	b.WriteString("    <summary>\n")
	b.WriteString("      <span class=\"solution-warning\">⚠️ Write your own answer first!</span>\n")
	b.WriteString("      <span class=\"solution-toggle\">Show Sample Answer</span>\n")
	b.WriteString("    </summary>\n")
	b.WriteString("    <div class=\"sample-answer-content\">\n")
	if answer.ExpectedScore > 0 {
		fmt.Fprintf(b, "      <p class=\"expected-score\">Expected score: %.0f%%</p>\n", answer.ExpectedScore*100)
	}
	if err := markdownToHTML(b, answer.Content); err != nil {
		return err
	}
	b.WriteString("    </div>\n")
	b.WriteString("  </details>\n")
	b.WriteString("</section>\n")
	return nil
}
