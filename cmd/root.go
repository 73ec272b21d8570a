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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/palabra/internal/config"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool

	v      = config.New()
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "palabra",
	Short: "Annotate foreign-language sentences for learners",
	Long: `A CLI application that explains a foreign-language sentence word by word
and translates it, combining a local dictionary with a text-generation service.

Supported generators: Gemini, Anthropic, Ollama (self-hosted), OpenRouter, AWS Lambda

Settings come from --config (YAML), PALABRA_* environment variables and flags.

Use "palabra analyze --help" for analysis options.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded

		zapCfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentFlags().String("provider", "gemini", "Generator: gemini, anthropic, ollama, openrouter, lambda")
	rootCmd.PersistentFlags().String("model", "", "Generator model (provider default if empty)")
	rootCmd.PersistentFlags().StringSlice("models", nil, "Models to rotate for ollama/openrouter (default list used if empty)")
	rootCmd.PersistentFlags().String("base-url", "", "Generator base URL (ollama, openrouter, proxies)")
	rootCmd.PersistentFlags().String("function", "", "Lambda function name for the lambda generator")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-attempt generation timeout (default 60s)")
	rootCmd.PersistentFlags().Int("max-retries", 1, "Total generation attempts including the first (1 = no retries)")
	rootCmd.PersistentFlags().StringP("source", "s", "es", "Source language code (es, pt, fr, it)")
	rootCmd.PersistentFlags().StringP("learner", "l", "en", "Learner language code for explanations")
	rootCmd.PersistentFlags().String("db", "./data/palabra.db", "Dictionary database path")

	bind := map[string]string{
		"generator.provider":     "provider",
		"generator.model":        "model",
		"generator.models":       "models",
		"generator.base_url":     "base-url",
		"generator.function":     "function",
		"generator.timeout":      "timeout",
		"generator.max_attempts": "max-retries",
		"language.source":        "source",
		"language.learner":       "learner",
		"dictionary.db":          "db",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}
}
