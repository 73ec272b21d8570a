package lexicon

import (
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Matcher looks up the tokens of a text in a dictionary.
type Matcher struct {
	alphabet  Alphabet
	minLength int
}

// NewMatcher creates a Matcher for the given alphabet. A zero Alphabet falls
// back to Spanish.
func NewMatcher(alphabet Alphabet) *Matcher {
	if alphabet.Tag == language.Und && alphabet.Extra == "" {
		alphabet = Spanish
	}
	return &Matcher{alphabet: alphabet, minLength: DefaultMinTokenLength}
}

var spanishMatcher = NewMatcher(Spanish)

// Match runs the Spanish matcher over text.
func Match(text string, dict Dictionary) MatchReport {
	return spanishMatcher.Match(text, dict)
}

// Match tokenizes text and returns one report entry per distinct token found
// in dict, in the order the tokens first occur. Tokens shorter than the
// minimum length are skipped.
func (m *Matcher) Match(text string, dict Dictionary) MatchReport {
	var report MatchReport
	seen := make(map[string]struct{})

	for _, token := range m.alphabet.Tokenize(text) {
		if utf8.RuneCountInString(token) < m.minLength {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}

		entry, ok := dict.Lookup(token)
		if !ok {
			continue
		}
		report = append(report, Hit{
			Word:            token,
			RenderedMeaning: RenderMeaning(entry.Meaning, ""),
		})
	}

	return report
}
