// Package prompt builds the instruction payload sent to the generation
// service. The rules embedded in the payload are a contract: the response
// splitter in package postprocess relies on the bullet and delimiter
// conventions stated here.
package prompt

import (
	"fmt"
	"strings"

	"github.com/valpere/palabra/internal/lexicon"
)

const (
	// Delimiter separates the explanation section from the translation.
	Delimiter = "|||"
	// Bullet starts every explanation line.
	Bullet = "・"

	// NoMatchesMarker replaces the dictionary section when nothing matched.
	NoMatchesMarker = "(no local dictionary matches)"

	meaningIndent = "    "
)

// Options configures the languages and output conventions of the prompt.
type Options struct {
	SourceLanguage  string
	LearnerLanguage string
	Articles        []string
	Bullet          string
	Delimiter       string
}

// DefaultOptions targets Spanish input explained in English.
var DefaultOptions = Options{
	SourceLanguage:  "Spanish",
	LearnerLanguage: "English",
	Articles:        []string{"el", "la", "los", "las"},
	Bullet:          Bullet,
	Delimiter:       Delimiter,
}

// Composer renders prompts for a fixed set of options.
type Composer struct {
	opts Options
}

// NewComposer fills unset options from DefaultOptions.
func NewComposer(opts Options) *Composer {
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = DefaultOptions.SourceLanguage
	}
	if opts.LearnerLanguage == "" {
		opts.LearnerLanguage = DefaultOptions.LearnerLanguage
	}
	if len(opts.Articles) == 0 {
		opts.Articles = DefaultOptions.Articles
	}
	if opts.Bullet == "" {
		opts.Bullet = Bullet
	}
	if opts.Delimiter == "" {
		opts.Delimiter = Delimiter
	}
	return &Composer{opts: opts}
}

var defaultComposer = NewComposer(DefaultOptions)

// Compose builds the prompt with DefaultOptions.
func Compose(text string, report lexicon.MatchReport) string {
	return defaultComposer.Compose(text, report)
}

// Compose embeds the user text, the dictionary matches and the output rules
// into a single instruction string.
func (c *Composer) Compose(text string, report lexicon.MatchReport) string {
	o := c.opts
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a professional teacher of %s for %s-speaking learners.\n", o.SourceLanguage, o.LearnerLanguage))
	sb.WriteString("Using the reference dictionary data and the learner's text below, explain the words and translate the text.\n\n")

	sb.WriteString("### Learner's text:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")

	sb.WriteString("### Reference dictionary data:\n")
	sb.WriteString(RenderMatches(report))
	sb.WriteString("\n\n")

	sb.WriteString("### Instructions\n")
	sb.WriteString(fmt.Sprintf("1. Word explanations (in %s):\n", o.LearnerLanguage))
	sb.WriteString("   - Explain the important words in order, from the start of the text to the end.\n")
	sb.WriteString("   - Put every word on its own line; never run two words together on one line.\n")
	sb.WriteString("   - Explain multi-word idiomatic expressions as a single unit; do not break them into their words.\n")
	sb.WriteString(fmt.Sprintf("   - Leave the definite articles (%s) out of the list entirely.\n", strings.Join(o.Articles, ", ")))
	sb.WriteString("   - The dictionary data is a reference only. When a word is grammatically a function word\n")
	sb.WriteString("     (a preposition, conjunction, pronoun…) but the dictionary defines it as an unrelated literal\n")
	sb.WriteString("     symbol such as a letter or a musical note, ignore that definition and explain its grammatical\n")
	sb.WriteString("     role in this context.\n")
	sb.WriteString(fmt.Sprintf("2. Translation (in %s):\n", o.LearnerLanguage))
	sb.WriteString("   - Translate the whole text naturally, following its context and idioms.\n")
	sb.WriteString("   - Never substitute dictionary glosses word by word; the contextual sense of function words\n")
	sb.WriteString("     overrides literal dictionary definitions here as well.\n\n")

	sb.WriteString("### Output format (mandatory)\n")
	sb.WriteString(fmt.Sprintf("Write exactly two sections: the word explanations first, then the translation, separated by the delimiter %q on its own line.\n", o.Delimiter))
	sb.WriteString(fmt.Sprintf("Start every explanation line with %q. Do not use the delimiter anywhere else.\n\n", o.Bullet))
	sb.WriteString("Example:\n")
	for i := 0; i < 3; i++ {
		sb.WriteString(fmt.Sprintf("%sword : meaning\n", o.Bullet))
	}
	sb.WriteString(o.Delimiter)
	sb.WriteString("\nA natural translation of the whole text.\n")

	return sb.String()
}

// RenderMatches formats a match report as "word: meaning" lines, indenting
// additional senses. An empty report renders as NoMatchesMarker.
func RenderMatches(report lexicon.MatchReport) string {
	if report.IsEmpty() {
		return NoMatchesMarker
	}
	lines := make([]string, 0, len(report))
	for _, m := range report {
		meaning := strings.ReplaceAll(m.RenderedMeaning, "\n", "\n"+meaningIndent)
		lines = append(lines, fmt.Sprintf("- %s: %s", m.Word, meaning))
	}
	return strings.Join(lines, "\n")
}
