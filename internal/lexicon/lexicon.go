// Package lexicon matches tokens of a learner's sentence against a local
// dictionary. Matching is a pure function of the text and the dictionary: the
// dictionary is loaded once, shared read-only, and never mutated here.
package lexicon

import "strings"

const (
	// SenseSeparator divides the senses of a multi-sense meaning.
	SenseSeparator = "∥"
	// LongDash is replaced with a plain hyphen when rendering meanings.
	LongDash = "—"

	// DefaultMinTokenLength is the shortest token (in runes) that is looked up.
	DefaultMinTokenLength = 2
)

// Entry is a single dictionary record. Word is the lookup key and is compared
// case-insensitively.
type Entry struct {
	Word    string `json:"word" yaml:"word"`
	Meaning string `json:"meaning" yaml:"meaning"`
}

// Dictionary is an ordered, read-only collection of entries. Uniqueness of
// Word is not enforced: the first matching entry wins.
type Dictionary []Entry

// Lookup scans the dictionary in order and returns the first entry whose word
// equals word under case-insensitive comparison. Diacritics are significant.
func (d Dictionary) Lookup(word string) (Entry, bool) {
	for _, e := range d {
		if strings.EqualFold(e.Word, word) {
			return e, true
		}
	}
	return Entry{}, false
}

// Hit is one dictionary match for a token of the input text.
type Hit struct {
	Word            string `json:"word"`
	RenderedMeaning string `json:"rendered_meaning"`
}

// MatchReport lists dictionary hits in first-occurrence order of the input,
// with at most one entry per normalized token.
type MatchReport []Hit

// IsEmpty reports whether no token of the input matched the dictionary.
func (r MatchReport) IsEmpty() bool {
	return len(r) == 0
}

// RenderMeaning turns a stored meaning into display text: every sense
// separator becomes a line break followed by indent, and long dashes become
// plain hyphens.
func RenderMeaning(meaning, indent string) string {
	r := strings.NewReplacer(SenseSeparator, "\n"+indent, LongDash, "-")
	return r.Replace(meaning)
}
