// Package reference fetches a machine translation to show next to an
// analysis, so the learner can compare it with the generated translation.
package reference

import (
	"context"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// Translator produces a reference translation of text.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// GoogleTranslator uses Google Cloud Translation. Credentials are read from
// the given file, or from the default application credentials when empty.
type GoogleTranslator struct {
	credentials string
}

func NewGoogleTranslator(credentials string) *GoogleTranslator {
	return &GoogleTranslator{credentials: credentials}
}

func (g *GoogleTranslator) Name() string {
	return "google"
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to translate")
	}

	targetTag, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("invalid target language: %w", err)
	}

	var opts *translate.Options
	if sourceLang != "" && sourceLang != "auto" {
		sourceTag, err := language.Parse(sourceLang)
		if err != nil {
			return "", fmt.Errorf("invalid source language: %w", err)
		}
		opts = &translate.Options{Source: sourceTag, Format: translate.Text}
	}

	var clientOpts []option.ClientOption
	if g.credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(g.credentials))
	}

	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{text}, targetTag, opts)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return translations[0].Text, nil
}
