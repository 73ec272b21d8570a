// Package postprocess repairs the formatting of generated annotation text and
// splits it into the explanation and translation sections.
//
// Repair is an ordered list of independent rules applied in sequence:
//  1. Newline normalization and reasoning-block removal
//  2. Emphasis marker removal
//  3. Bullet unification
//  4. Vertical layout (one bullet per line)
//
// No rule inspects the meaning of the text.
package postprocess

import (
	"regexp"
	"strings"

	"github.com/valpere/palabra/internal/prompt"
)

// Rule is a single named text transformation.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Format names the markers the generated text is asked to use. The composer
// and the splitter must agree on it.
type Format struct {
	Bullet    string
	Delimiter string
}

// DefaultFormat uses the prompt package's default bullet and delimiter.
var DefaultFormat = Format{Bullet: prompt.Bullet, Delimiter: prompt.Delimiter}

// FormatFor returns the format a composer with opts asks for.
func FormatFor(opts prompt.Options) Format {
	f := Format{Bullet: opts.Bullet, Delimiter: opts.Delimiter}
	if f.Bullet == "" {
		f.Bullet = DefaultFormat.Bullet
	}
	if f.Delimiter == "" {
		f.Delimiter = DefaultFormat.Delimiter
	}
	return f
}

// Rules returns the repair rules for f. The strict variant separates bullets
// with a blank line and collapses the blank-line runs that the unconditional
// insertion produces.
func (f Format) Rules(strict bool) []Rule {
	rules := []Rule{
		{Name: "normalize-newlines", Apply: normalizeNewlines},
		{Name: "strip-reasoning", Apply: stripReasoning},
		{Name: "strip-emphasis", Apply: stripEmphasis},
		{Name: "unify-bullets", Apply: func(s string) string { return unifyBullets(s, f.Bullet) }},
	}
	if strict {
		return append(rules,
			Rule{Name: "blank-line-before-bullets", Apply: func(s string) string { return blankLineBeforeBullets(s, f.Bullet) }},
			Rule{Name: "collapse-blank-lines", Apply: collapseBlankLines},
		)
	}
	return append(rules,
		Rule{Name: "break-before-bullets", Apply: func(s string) string { return breakBeforeBullets(s, f.Bullet) }},
	)
}

// DefaultRules puts each bullet on its own line.
var DefaultRules = DefaultFormat.Rules(false)

// StrictRules separates bullets with a blank line.
var StrictRules = DefaultFormat.Rules(true)

// Normalize applies rules to text in order.
func Normalize(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

// RulesFor returns StrictRules when strict is set and DefaultRules otherwise.
func RulesFor(strict bool) []Rule {
	if strict {
		return StrictRules
	}
	return DefaultRules
}

// --- newlines ---

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(text string) string {
	return newlineReplacer.Replace(text)
}

// --- reasoning blocks ---

// reasoningBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var reasoningBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedReasoningRe matches an opened tag whose closing tag is missing
// (the model was cut off mid-thought).
var truncatedReasoningRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func stripReasoning(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	text = reasoningBlockRe.ReplaceAllString(text, "")
	return truncatedReasoningRe.ReplaceAllString(text, "")
}

// --- emphasis ---

func stripEmphasis(text string) string {
	return strings.ReplaceAll(text, "**", "")
}

// --- bullets ---

// unifyBullets turns "* " and "- " list markers into bullet wherever they
// occur, so items the model ran together on one line still get separated.
func unifyBullets(text, bullet string) string {
	return strings.NewReplacer("* ", bullet, "- ", bullet).Replace(text)
}

// breakBeforeBullets inserts a line break before every bullet that does not
// already start a line.
func breakBeforeBullets(text, bullet string) string {
	if !strings.Contains(text, bullet) {
		return text
	}
	parts := strings.Split(text, bullet)
	var sb strings.Builder
	sb.Grow(len(text) + len(parts))
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(bullet)
		sb.WriteString(p)
	}
	return sb.String()
}

// blankLineBeforeBullets inserts a blank line before every bullet except one
// at the very start of the text.
func blankLineBeforeBullets(text, bullet string) string {
	parts := strings.Split(text, bullet)
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(bullet)
		sb.WriteString(p)
	}
	return sb.String()
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(text string) string {
	return blankRunRe.ReplaceAllString(text, "\n\n")
}
