// Package markdown renders analysis results as Markdown and HTML.
package markdown

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/valpere/palabra/internal"
	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/prompt"
)

func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	}
	renderer := html.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.Attributes
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// Analysis renders the source text, explanation, translation and, when
// present, the dictionary matches as a Markdown document. Explanation lines
// starting with the bullet become list items.
func Analysis(text string, result internal.AnalysisResult, matches lexicon.MatchReport) string {
	var sb strings.Builder

	sb.WriteString("## Text\n\n")
	sb.WriteString(quote(text))
	sb.WriteString("\n\n## Explanation\n\n")
	sb.WriteString(explanationList(result.Explanation))
	sb.WriteString("\n\n## Translation\n\n")
	sb.WriteString(Escape(result.Translation))
	sb.WriteString("\n")

	if !matches.IsEmpty() {
		sb.WriteString("\n## Dictionary\n\n")
		for _, m := range matches {
			senses := strings.Split(m.RenderedMeaning, "\n")
			fmt.Fprintf(&sb, "- **%s**: %s\n", Escape(m.Word), Escape(strings.Join(senses, "; ")))
		}
	}

	return sb.String()
}

// AnalysisHTML renders Analysis as HTML.
func AnalysisHTML(text string, result internal.AnalysisResult, matches lexicon.MatchReport) string {
	return ToHTML([]byte(Analysis(text, result, matches)))
}

func explanationList(explanation string) string {
	var out []string
	inList := false
	for _, line := range strings.Split(explanation, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		item := strings.HasPrefix(trimmed, prompt.Bullet)
		// Lists and paragraphs need a blank line between them.
		if len(out) > 0 && (!item || !inList) {
			out = append(out, "")
		}
		if item {
			out = append(out, "- "+Escape(strings.TrimSpace(strings.TrimPrefix(trimmed, prompt.Bullet))))
		} else {
			out = append(out, Escape(trimmed))
		}
		inList = item
	}
	return strings.Join(out, "\n")
}

func quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "> " + Escape(line)
	}
	return strings.Join(lines, "\n")
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"[", `\[`,
	"]", `\]`,
)

// Escape keeps generated text from being read as Markdown markup.
func Escape(s string) string {
	return escaper.Replace(s)
}
