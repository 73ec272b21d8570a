package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Alphabet describes the letters of a language written in Latin script: the
// base letters a–z plus the language's accented vowels and consonant
// diacritics. Any other rune separates tokens.
type Alphabet struct {
	Tag   language.Tag
	Extra string
}

var (
	Spanish    = Alphabet{Tag: language.Spanish, Extra: "áéíóúüñ"}
	Portuguese = Alphabet{Tag: language.Portuguese, Extra: "áâãàçéêíóôõú"}
	French     = Alphabet{Tag: language.French, Extra: "àâæçéèêëîïôœùûüÿ"}
	Italian    = Alphabet{Tag: language.Italian, Extra: "àèéìíîòóùú"}
)

var alphabets = map[string]Alphabet{
	"es": Spanish,
	"pt": Portuguese,
	"fr": French,
	"it": Italian,
}

// AlphabetFor returns the alphabet for an ISO 639-1 language code.
func AlphabetFor(code string) (Alphabet, bool) {
	a, ok := alphabets[strings.ToLower(strings.TrimSpace(code))]
	return a, ok
}

// Contains reports whether r is a letter of the alphabet. Only lower-case
// letters are members; callers lower-case text first.
func (a Alphabet) Contains(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return strings.ContainsRune(a.Extra, r)
}

// Tokenize lower-cases text and splits it on every run of runes outside the
// alphabet. Empty tokens are dropped; order is preserved.
func (a Alphabet) Tokenize(text string) []string {
	// Casers carry state and are not safe for concurrent use; build one per call.
	lower := cases.Lower(a.Tag).String(norm.NFC.String(text))
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !a.Contains(r)
	})
}
