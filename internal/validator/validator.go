// Package validator checks that a piece of text is written in the expected language.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valpere/palabra/internal"
	"github.com/valpere/palabra/internal/detector"
	"github.com/valpere/palabra/internal/postprocess"
)

// minValidationLength is the minimum rune count required to attempt language detection.
// Shorter texts produce unreliable results and are accepted without validation.
const minValidationLength = 20

// ErrLanguageMismatch is wrapped by every MismatchError.
var ErrLanguageMismatch = errors.New("language mismatch")

// MismatchError names the expected and the detected ISO 639-1 codes.
type MismatchError struct {
	Expected string
	Detected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s but detected %s", strings.ToLower(e.Expected), strings.ToLower(e.Detected))
}

func (e *MismatchError) Unwrap() error { return ErrLanguageMismatch }

// Validator checks text against an expected language.
// The underlying language detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// NewWithDetector creates a Validator around an existing detector.
func NewWithDetector(det *detector.Detector) *Validator {
	return &Validator{det: det}
}

// Check returns nil when text appears to be written in lang.
//
// Short texts (fewer than minValidationLength runes) and texts whose language
// cannot be determined pass. When the detected language differs from lang the
// returned error is a *MismatchError.
func (v *Validator) Check(text, lang string) error {
	if lang == "" {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text is empty")
	}

	if len([]rune(text)) < minValidationLength {
		return nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return nil
	}

	if !strings.EqualFold(detected, lang) {
		return &MismatchError{Expected: lang, Detected: detected}
	}

	return nil
}

// CheckTranslation checks the translation of an analysis. Results whose
// translation is missing or could not be separated are not checked.
func (v *Validator) CheckTranslation(result internal.AnalysisResult, lang string) error {
	tr := strings.TrimSpace(result.Translation)
	if tr == "" || tr == postprocess.SplitFailedSentinel {
		return nil
	}
	return v.Check(tr, lang)
}
