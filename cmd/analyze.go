/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/palabra/internal/chunker"
	"github.com/valpere/palabra/internal/detector"
	"github.com/valpere/palabra/internal/orchestrator"
	"github.com/valpere/palabra/internal/reference"
	"github.com/valpere/palabra/internal/validator"
)

var (
	analyzeText        string
	analyzeInput       string
	analyzeOutput      string
	analyzeMaxChars    int
	analyzeCheckSrc    bool
	analyzeReference   bool
	analyzeShowMatches bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Explain and translate a sentence",
	Long: `Explain the important words of a text one per line and translate it,
using the local dictionary as reference data for the generator.

The dictionary is read from --dict (JSON or YAML) when given, otherwise from
the database (--db) for the source language. A missing dictionary is not an
error; the analysis runs without local matches.

Long texts can be split with --max-chars; each piece is analyzed in turn.

Example:
  palabra analyze -t "El abogado come una manzana."
  palabra analyze -i lesson.txt -f html -o lesson.html --max-chars 400`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAnalyzeInput()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if analyzeCheckSrc {
			checkSourceLanguage(text)
		}

		dict := cfg.LoadDictionary(ctx, logger)

		orch, err := buildOrchestrator(ctx)
		if err != nil {
			return err
		}

		var ref reference.Translator
		if analyzeReference {
			ref = reference.NewGoogleTranslator(cfg.Reference.Credentials)
		}

		var analyses []analysis
		for _, chunk := range chunker.Chunk(text, analyzeMaxChars) {
			report, err := orch.Analyze(ctx, chunk, dict)
			if err != nil {
				if errors.Is(err, orchestrator.ErrEmptyInput) {
					return fmt.Errorf("nothing to analyze: %w", err)
				}
				return err
			}
			if report.Err != nil {
				fmt.Fprintf(os.Stderr, "Generation failed after %d attempt(s): %v\n", report.Attempts, report.Err)
			}

			a := analysis{
				Text:        chunk,
				Explanation: report.Result.Explanation,
				Translation: report.Result.Translation,
				Matches:     report.Matches,
			}
			if ref != nil {
				a.Reference, err = ref.Translate(ctx, chunk, cfg.Language.Source, cfg.Language.Learner)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Reference translation failed: %v\n", err)
				}
			}
			analyses = append(analyses, a)
		}

		out, err := render(cfg.Output.Format, analyses, analyzeShowMatches)
		if err != nil {
			return err
		}
		return writeOutput(analyzeOutput, out)
	},
}

func readAnalyzeInput() (string, error) {
	switch {
	case analyzeText != "" && analyzeInput != "":
		return "", fmt.Errorf("use either --text or --input, not both")
	case analyzeText != "":
		return analyzeText, nil
	case analyzeInput != "":
		if analyzeInput == analyzeOutput {
			return "", fmt.Errorf("input file and output file cannot be the same")
		}
		data, err := os.ReadFile(analyzeInput)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("--text or --input is required")
	}
}

// checkSourceLanguage warns when the text does not look like the configured
// source language. It never stops the analysis.
func checkSourceLanguage(text string) {
	det := detector.NewFor("es", "pt", "fr", "it", "en", cfg.Language.Learner)
	err := validator.NewWithDetector(det).Check(text, cfg.Language.Source)

	var mismatch *validator.MismatchError
	if errors.As(err, &mismatch) {
		fmt.Fprintf(os.Stderr, "Warning: input looks like %s, not %s\n",
			strings.ToLower(mismatch.Detected), cfg.Language.Source)
		return
	}
	if err != nil {
		logger.Debug("source language check skipped", zap.Error(err))
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Text to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Input file to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output file (default stdout)")
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json, html")
	analyzeCmd.Flags().IntVar(&analyzeMaxChars, "max-chars", 0, "Split input into pieces of at most this many characters (0 = no split)")
	analyzeCmd.Flags().BoolVar(&analyzeCheckSrc, "check-source", false, "Warn when the input does not look like the source language")
	analyzeCmd.Flags().BoolVar(&analyzeReference, "reference", false, "Add a Google Translate reference translation")
	analyzeCmd.Flags().String("credentials", "", "Path to Google Cloud credentials for --reference")
	analyzeCmd.Flags().BoolVarP(&analyzeShowMatches, "show-matches", "m", false, "Include dictionary matches in text output")

	analyzeCmd.PersistentFlags().StringP("dict", "d", "", "Dictionary file (JSON or YAML); overrides --db")
	analyzeCmd.PersistentFlags().Bool("strict", false, "Blank line before every explanation bullet")
	analyzeCmd.PersistentFlags().Bool("check-translation", false, "Warn when the translation is not in the learner language")

	_ = v.BindPFlag("output.format", analyzeCmd.Flags().Lookup("format"))
	_ = v.BindPFlag("reference.credentials", analyzeCmd.Flags().Lookup("credentials"))
	_ = v.BindPFlag("dictionary.path", analyzeCmd.PersistentFlags().Lookup("dict"))
	_ = v.BindPFlag("output.strict", analyzeCmd.PersistentFlags().Lookup("strict"))
	_ = v.BindPFlag("language.check_translation", analyzeCmd.PersistentFlags().Lookup("check-translation"))
}
