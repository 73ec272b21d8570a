package postprocess

import (
	"strings"

	"github.com/valpere/palabra/internal"
	"github.com/valpere/palabra/internal/prompt"
)

// SplitFailedSentinel is returned as the translation when the delimiter is
// missing from the generated text.
const SplitFailedSentinel = "(the translation could not be separated from the explanation)"

// Split divides cleaned text at the first default delimiter.
func Split(cleaned string) (explanation, translation string, ok bool) {
	return DefaultFormat.Split(cleaned)
}

// Split divides cleaned text at the first delimiter. With at least two
// segments it returns the trimmed first and second segments; any further
// segments are ignored. Without a delimiter ok is false.
func (f Format) Split(cleaned string) (explanation, translation string, ok bool) {
	segments := strings.Split(cleaned, f.Delimiter)
	if len(segments) < 2 {
		return cleaned, "", false
	}
	return strings.TrimSpace(segments[0]), strings.TrimSpace(segments[1]), true
}

// NormalizeAndSplit repairs raw generated text and splits it into an
// AnalysisResult. A missing delimiter degrades to the whole cleaned text as
// the explanation and SplitFailedSentinel as the translation.
func NormalizeAndSplit(raw string, strict bool) internal.AnalysisResult {
	result, _ := Parse(raw, strict)
	return result
}

// Parse is NormalizeAndSplit that also reports whether the delimiter was
// found, so callers can record degraded results.
func Parse(raw string, strict bool) (internal.AnalysisResult, bool) {
	return DefaultFormat.Parse(raw, strict)
}

// Parse repairs and splits raw using the markers of f.
func (f Format) Parse(raw string, strict bool) (internal.AnalysisResult, bool) {
	cleaned := Normalize(raw, f.Rules(strict))

	explanation, translation, ok := f.Split(cleaned)
	if !ok {
		return internal.AnalysisResult{
			Explanation: cleaned,
			Translation: SplitFailedSentinel,
		}, false
	}
	return internal.AnalysisResult{
		Explanation: explanation,
		Translation: translation,
	}, true
}
