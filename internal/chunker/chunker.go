// Package chunker splits long learner texts into pieces small enough to be
// analyzed one at a time, keeping paragraphs and sentences whole where
// possible.
package chunker

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces each no longer than maxChars unicode
// code points. Splits are attempted (in order of preference) at:
//  1. Paragraph boundaries (a blank line)
//  2. Sentence ends (. ! ? … or ; followed by whitespace, closing quotes
//     and brackets stay with their sentence)
//  3. Whitespace (word boundary)
//  4. Hard cut at maxChars if no suitable boundary is found
//
// Pieces are trimmed and empty pieces dropped. If maxChars ≤ 0 the whole
// text is returned as a single piece.
func Chunk(text string, maxChars int) []string {
	runes := []rune(strings.ReplaceAll(text, "\r\n", "\n"))
	if maxChars <= 0 || len(runes) <= maxChars {
		return []string{text}
	}

	var chunks []string
	for len(runes) > maxChars {
		cut := findSplit(runes, maxChars)
		chunks = appendTrimmed(chunks, runes[:cut])
		runes = runes[cut:]
	}
	return appendTrimmed(chunks, runes)
}

func appendTrimmed(chunks []string, runes []rune) []string {
	if s := strings.TrimSpace(string(runes)); s != "" {
		return append(chunks, s)
	}
	return chunks
}

// findSplit returns the rune index at which to cut, never above maxChars and
// always above zero so that Chunk makes progress.
func findSplit(runes []rune, maxChars int) int {
	candidate := runes[:maxChars]

	for i := len(candidate) - 1; i > 0; i-- {
		if candidate[i] == '\n' && candidate[i-1] == '\n' {
			return i + 1
		}
	}

	for i := len(candidate) - 2; i > 0; i-- {
		if !isSentenceEnd(candidate[i]) {
			continue
		}
		j := i + 1
		for j < len(candidate) && isCloser(candidate[j]) {
			j++
		}
		if j < len(candidate) && unicode.IsSpace(candidate[j]) {
			return j
		}
	}

	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return i
		}
	}

	return maxChars
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…', ';':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '»', '”', '’', ')', ']':
		return true
	}
	return false
}
