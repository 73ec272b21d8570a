// Package orchestrator runs the annotation pipeline: dictionary matching,
// prompt composition, generation and response normalization, in that order.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/palabra/internal"
	"github.com/valpere/palabra/internal/generator"
	"github.com/valpere/palabra/internal/lexicon"
	"github.com/valpere/palabra/internal/postprocess"
	"github.com/valpere/palabra/internal/prompt"
	"github.com/valpere/palabra/internal/validator"
)

// ErrEmptyInput is returned for blank input; the generator is not called.
var ErrEmptyInput = errors.New("input text is empty")

// FailurePrefix starts the explanation of a result whose generation failed.
const FailurePrefix = "communication error: "

type Config struct {
	// Timeout bounds each generation attempt. Zero means no per-attempt limit.
	Timeout time.Duration
	// MaxAttempts is the total number of generation attempts; values below 1 mean 1.
	MaxAttempts int
	RetryDelay  time.Duration
	Strict      bool
	Alphabet    lexicon.Alphabet
	Prompt      prompt.Options
	// TranslationLang enables a language check on the translation when set.
	TranslationLang string
	Logger          *zap.Logger
}

// Report is the full outcome of one analysis.
type Report struct {
	Result   internal.AnalysisResult `json:"result"`
	Matches  lexicon.MatchReport     `json:"matches"`
	Split    bool                    `json:"split"`
	Attempts int                     `json:"attempts"`
	// Err is the generation error folded into Result, if any.
	Err error `json:"-"`
}

type Orchestrator struct {
	gen       generator.Generator
	config    Config
	matcher   *lexicon.Matcher
	composer  *prompt.Composer
	format    postprocess.Format
	validator *validator.Validator
	logger    *zap.Logger
}

func New(gen generator.Generator, config Config) *Orchestrator {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	o := &Orchestrator{
		gen:      gen,
		config:   config,
		matcher:  lexicon.NewMatcher(config.Alphabet),
		composer: prompt.NewComposer(config.Prompt),
		format:   postprocess.FormatFor(config.Prompt),
		logger:   logger,
	}
	if config.TranslationLang != "" {
		o.validator = validator.New()
	}
	return o
}

// Run analyzes text against dict and returns the explanation and translation.
// A failed generation is reported inside the result, not as an error.
func (o *Orchestrator) Run(ctx context.Context, text string, dict lexicon.Dictionary) (internal.AnalysisResult, error) {
	report, err := o.Analyze(ctx, text, dict)
	if err != nil {
		return internal.AnalysisResult{}, err
	}
	return report.Result, nil
}

// Analyze is Run that also returns the matches and generation details.
func (o *Orchestrator) Analyze(ctx context.Context, text string, dict lexicon.Dictionary) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	matches := o.matcher.Match(text, dict)
	o.logger.Debug("dictionary matched",
		zap.Int("entries", len(dict)),
		zap.Int("matches", len(matches)))

	payload := o.composer.Compose(text, matches)

	raw, attempts, err := o.generate(ctx, payload)
	report := &Report{Matches: matches, Attempts: attempts}
	if err != nil {
		o.logger.Warn("generation failed",
			zap.String("generator", o.gen.Name()),
			zap.Int("attempts", attempts),
			zap.Error(err))
		report.Err = err
		report.Result = internal.AnalysisResult{Explanation: FailurePrefix + err.Error()}
		return report, nil
	}

	result, split := o.format.Parse(raw, o.config.Strict)
	report.Result = result
	report.Split = split
	if !split {
		o.logger.Warn("response has no delimiter",
			zap.String("generator", o.gen.Name()),
			zap.Int("length", len(raw)))
	}

	if o.validator != nil {
		if err := o.validator.CheckTranslation(result, o.config.TranslationLang); err != nil {
			o.logger.Warn("translation language check failed", zap.Error(err))
		}
	}

	return report, nil
}

func (o *Orchestrator) generate(ctx context.Context, payload string) (string, int, error) {
	var lastErr error
	for attempt := 1; attempt <= o.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", attempt - 1, lastErr
			case <-time.After(o.config.RetryDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return "", attempt - 1, err
		}

		text, err := o.attempt(ctx, payload)
		if err == nil {
			return text, attempt, nil
		}
		lastErr = err
		o.logger.Debug("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return "", o.config.MaxAttempts, lastErr
}

func (o *Orchestrator) attempt(ctx context.Context, payload string) (string, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}
	return o.gen.Generate(ctx, payload)
}
